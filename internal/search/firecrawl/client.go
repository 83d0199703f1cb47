package firecrawl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/search"
)

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.firecrawl.dev/v1"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

type firecrawlRequest struct {
	Query         string         `json:"query"`
	Limit         int            `json:"limit,omitempty"`
	Lang          string         `json:"lang,omitempty"`
	Country       string         `json:"country,omitempty"`
	TBS           string         `json:"tbs,omitempty"`
	ScrapeOptions *scrapeOptions `json:"scrapeOptions,omitempty"`
}

type scrapeOptions struct {
	Formats []string `json:"formats"`
}

type firecrawlResponse struct {
	Success bool              `json:"success"`
	Data    []firecrawlResult `json:"data"`
	Error   string            `json:"error"`
}

type firecrawlResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Markdown    string `json:"markdown"`
	Screenshot  string `json:"screenshot"`
	Metadata    struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		OGImage     string `json:"ogImage"`
	} `json:"metadata"`
}

// Search runs a web search and scrapes the hits in the requested formats.
// A client without an API key fails with search.ErrNotConfigured before any
// network call.
func (c *Client) Search(ctx context.Context, req search.SearchRequest) (*search.SearchResponse, error) {
	if c.apiKey == "" {
		return nil, search.ErrNotConfigured
	}
	if req.Lang == "" {
		req.Lang = "en"
	}

	fcReq := firecrawlRequest{
		Query:   req.Query,
		Limit:   req.Limit,
		Lang:    req.Lang,
		Country: req.Country,
		TBS:     req.TimeRange,
	}
	if len(req.Formats) > 0 {
		fcReq.ScrapeOptions = &scrapeOptions{Formats: req.Formats}
	}

	body, err := json.Marshal(fcReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", search.ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var fcResp firecrawlResponse
	decodeErr := json.Unmarshal(respBody, &fcResp)

	if err := search.CheckStatus(resp.StatusCode); err != nil {
		c.logger.Error("firecrawl request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
		)
		if fcResp.Error != "" {
			return nil, fmt.Errorf("%w: %s", err, fcResp.Error)
		}
		return nil, err
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("unmarshal response: %w", decodeErr)
	}

	return toSearchResponse(req.Query, &fcResp), nil
}

func toSearchResponse(query string, resp *firecrawlResponse) *search.SearchResponse {
	results := make([]search.Document, 0, len(resp.Data))
	for _, r := range resp.Data {
		if r.URL == "" {
			continue
		}
		results = append(results, search.Document{
			Title:       r.Title,
			URL:         r.URL,
			Description: r.Description,
			Markdown:    r.Markdown,
			Screenshot:  r.Screenshot,
			Metadata: search.Metadata{
				Title:       r.Metadata.Title,
				Description: r.Metadata.Description,
				OGImage:     r.Metadata.OGImage,
			},
		})
	}

	return &search.SearchResponse{
		Query:   query,
		Results: results,
	}
}
