package duckduckgo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/domain"
	"github.com/kitbuilder587/searchportal/internal/search"
)

type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// Client talks to the DuckDuckGo Instant Answer API.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
	logger    *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.duckduckgo.com"
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

type instantAnswerResponse struct {
	AbstractText  string  `json:"AbstractText"`
	Results       []topic `json:"Results"`
	RelatedTopics []topic `json:"RelatedTopics"`
}

// topic is either a link or a named group of links under Topics.
type topic struct {
	FirstURL string  `json:"FirstURL"`
	Text     string  `json:"Text"`
	Topics   []topic `json:"Topics"`
}

func (c *Client) InstantAnswer(ctx context.Context, query string) (*domain.InstantAnswer, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	var resp instantAnswerResponse
	if err := search.GetJSON(ctx, c.client, c.baseURL+"/?"+params.Encode(), c.userAgent, &resp); err != nil {
		return nil, fmt.Errorf("duckduckgo instant answer: %w", err)
	}

	return toInstantAnswer(&resp), nil
}

func toInstantAnswer(resp *instantAnswerResponse) *domain.InstantAnswer {
	answer := &domain.InstantAnswer{Abstract: resp.AbstractText}

	// official links go first, newest-listed on top
	for _, r := range resp.Results {
		if r.FirstURL == "" || r.Text == "" || domain.Hostname(r.FirstURL) == "" {
			continue
		}
		official := domain.NewResult(r.Text, r.FirstURL, r.Text, domain.TypeOfficial)
		answer.Results = append([]domain.SearchResult{official}, answer.Results...)
	}

	for _, t := range resp.RelatedTopics {
		if related, ok := relatedResult(t); ok {
			answer.Results = append(answer.Results, related)
		}
		for _, nested := range t.Topics {
			if related, ok := relatedResult(nested); ok {
				answer.Results = append(answer.Results, related)
			}
		}
	}

	return answer
}

func relatedResult(t topic) (domain.SearchResult, bool) {
	if t.FirstURL == "" || t.Text == "" || domain.Hostname(t.FirstURL) == "" {
		return domain.SearchResult{}, false
	}
	title, _, _ := strings.Cut(t.Text, " - ")
	if title == "" {
		title = domain.Truncate(t.Text, 60)
	}
	return domain.NewResult(title, t.FirstURL, t.Text, domain.TypeRelated), true
}
