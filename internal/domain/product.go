package domain

type Product struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Price         string  `json:"price"`
	OriginalPrice string  `json:"originalPrice,omitempty"`
	Rating        float64 `json:"rating"`
	Reviews       int     `json:"reviews"`
	URL           string  `json:"url"`
	Domain        string  `json:"domain"`
	Image         string  `json:"image"`
	Store         string  `json:"store,omitempty"`
	FreeShipping  bool    `json:"freeShipping"`
	InStock       bool    `json:"inStock"`
	Prime         bool    `json:"prime"`
}

// PriceNotAvailable is shown when no price could be extracted.
const PriceNotAvailable = "See price"
