package openlibrary

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/domain"
	"github.com/kitbuilder587/searchportal/internal/search"
)

const site = "https://openlibrary.org"

type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
	logger    *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = site
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: cfg.Timeout},
		logger:    logger,
	}
}

type searchResponse struct {
	Docs []struct {
		Key              string   `json:"key"`
		Title            string   `json:"title"`
		AuthorName       []string `json:"author_name"`
		FirstPublishYear int      `json:"first_publish_year"`
		CoverID          int64    `json:"cover_i"`
	} `json:"docs"`
}

func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	if limit <= 0 {
		limit = 8
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	var resp searchResponse
	if err := search.GetJSON(ctx, c.client, c.baseURL+"/search.json?"+params.Encode(), c.userAgent, &resp); err != nil {
		return nil, fmt.Errorf("openlibrary search: %w", err)
	}

	results := make([]domain.SearchResult, 0, limit)
	for _, doc := range resp.Docs {
		if len(results) == limit {
			break
		}
		if doc.Title == "" || doc.Key == "" {
			continue
		}

		authors := "Unknown author"
		if len(doc.AuthorName) > 0 {
			authors = strings.Join(doc.AuthorName, ", ")
		}
		desc := authors
		if doc.FirstPublishYear > 0 {
			desc = fmt.Sprintf("%s (%d)", authors, doc.FirstPublishYear)
		}

		r := domain.NewResult(doc.Title, site+doc.Key, desc, domain.TypeBook)
		if doc.CoverID > 0 {
			r.Thumbnail = fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-M.jpg", doc.CoverID)
		}
		results = append(results, r)
	}

	return results, nil
}
