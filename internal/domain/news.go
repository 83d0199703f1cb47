package domain

type NewsArticle struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"publishedAt"`
	Image       string `json:"image,omitempty"`
	Category    string `json:"category"`
}

const DefaultNewsCategory = "general"
