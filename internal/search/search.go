package search

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrUnauthorized   = errors.New("invalid API key")
	ErrRateLimit      = errors.New("rate limit exceeded")
	ErrInvalidRequest = errors.New("invalid request parameters")
	ErrSearchFailed   = errors.New("search request failed")
	ErrNotConfigured  = errors.New("search provider not configured")

	// ErrNotFound is a 404 from an upstream. It still matches ErrSearchFailed.
	ErrNotFound = fmt.Errorf("%w: not found", ErrSearchFailed)
)

// SearchClient is a full-web search provider that can also scrape the pages
// it returns.
type SearchClient interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

type SearchRequest struct {
	Query   string
	Limit   int
	Lang    string
	Country string
	// TimeRange is a Google-style tbs filter such as "qdr:d".
	TimeRange string
	Formats   []string
}

type SearchResponse struct {
	Query   string
	Results []Document
}

type Document struct {
	Title       string
	URL         string
	Description string
	Markdown    string
	Screenshot  string
	Metadata    Metadata
}

type Metadata struct {
	Title       string
	Description string
	OGImage     string
}

// DisplayTitle prefers the search title and falls back to page metadata.
func (d Document) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Metadata.Title
}

func (d Document) DisplayDescription() string {
	if d.Description != "" {
		return d.Description
	}
	return d.Metadata.Description
}
