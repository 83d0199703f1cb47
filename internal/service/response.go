package service

import "github.com/kitbuilder587/searchportal/internal/domain"

// Envelopes are the public JSON shapes. Counts are always taken from the
// final list.

type WebSearchResponse struct {
	AIResponse         string                  `json:"aiResponse"`
	Sources            []domain.Source         `json:"sources"`
	WebResults         []domain.SearchResult   `json:"webResults"`
	RelatedSearches    []string                `json:"relatedSearches"`
	TotalResults       int                     `json:"totalResults"`
	SearchTime         int64                   `json:"searchTime,omitempty"`
	DetectedCategories []string                `json:"detectedCategories,omitempty"`
	KnowledgePanel     *domain.KnowledgePanel  `json:"knowledgePanel,omitempty"`
	WikidataEntities   []domain.WikidataEntity `json:"wikidataEntities,omitempty"`
}

type AcademicSearchResponse struct {
	Papers        []domain.AcademicPaper `json:"papers"`
	TotalResults  int                    `json:"totalResults"`
	AISummary     string                 `json:"aiSummary"`
	RelatedTopics []string               `json:"relatedTopics"`
}

type VideoSearchResponse struct {
	Success bool                 `json:"success"`
	Videos  []domain.VideoResult `json:"videos"`
	Total   int                  `json:"total"`
	Query   string               `json:"query"`
}

type NewsSearchResponse struct {
	Success      bool                 `json:"success"`
	Articles     []domain.NewsArticle `json:"articles"`
	AISummary    string               `json:"aiSummary"`
	Trending     []string             `json:"trending"`
	TotalResults int                  `json:"totalResults"`
	Query        string               `json:"query"`
}

type ImageSearchResponse struct {
	Success      bool                 `json:"success"`
	Images       []domain.ImageResult `json:"images"`
	TotalResults int                  `json:"totalResults"`
	Query        string               `json:"query"`
}

type ShoppingSearchResponse struct {
	Success      bool             `json:"success"`
	Products     []domain.Product `json:"products"`
	TotalResults int              `json:"totalResults"`
	Query        string           `json:"query"`
}

// Suggestion types.
const (
	SuggestTrending     = "trending"
	SuggestAutocomplete = "autocomplete"
)

type AutocompleteResponse struct {
	Success     bool     `json:"success"`
	Suggestions []string `json:"suggestions"`
	Type        string   `json:"type"`
	Query       string   `json:"query,omitempty"`
}
