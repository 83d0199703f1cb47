package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/aggregate"
	"github.com/kitbuilder587/searchportal/internal/domain"
	"github.com/kitbuilder587/searchportal/internal/llm"
	"github.com/kitbuilder587/searchportal/internal/metrics"
	"github.com/kitbuilder587/searchportal/internal/search"
)

const (
	defaultNewsQuery = "latest news today"
	defaultNewsTBS   = "qdr:d"
	trendingCount    = 6
)

type NewsServiceDeps struct {
	Search      search.SearchClient
	Synthesizer *Synthesizer
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	Clock       Clock
}

// NewsService has a single upstream; its failure fails the request.
type NewsService struct {
	search      search.SearchClient
	synthesizer *Synthesizer
	metrics     *metrics.Metrics
	logger      *zap.Logger
	now         Clock
}

func NewNewsService(deps NewsServiceDeps) *NewsService {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	return &NewsService{
		search:      deps.Search,
		synthesizer: deps.Synthesizer,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
		now:         deps.Clock,
	}
}

// NewsQuery prefixes the category and substitutes a generic query when
// none is given.
func NewsQuery(query, category string) string {
	if category != "" && category != "all" {
		return strings.TrimSpace(category + " news " + query)
	}
	if strings.TrimSpace(query) == "" {
		return defaultNewsQuery
	}
	return query
}

func (s *NewsService) Search(ctx context.Context, req domain.NewsSearchRequest) (*NewsSearchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.search == nil {
		return nil, fmt.Errorf("%w: news", ErrNotConfigured)
	}

	query := NewsQuery(req.Query, req.Category)
	tbs := req.Options.TBS
	if tbs == "" {
		tbs = defaultNewsTBS
	}

	start := time.Now()
	resp, err := s.search.Search(ctx, search.SearchRequest{
		Query:     query,
		Limit:     domain.ClampLimit(req.Options.Limit, domain.DefaultNewsLimit, domain.MaxVerticalLimit),
		Lang:      req.Options.Lang,
		TimeRange: tbs,
		Formats:   []string{"markdown"},
	})
	s.recordSource(resp, err, time.Since(start))
	if err != nil {
		if errors.Is(err, search.ErrNotConfigured) {
			return nil, fmt.Errorf("%w: news", ErrNotConfigured)
		}
		return nil, fmt.Errorf("news search failed: %w", err)
	}

	category := req.Category
	if category == "" {
		category = domain.DefaultNewsCategory
	}
	published := s.now().UTC().Format(time.RFC3339)

	articles := make([]domain.NewsArticle, 0, len(resp.Results))
	titles := make([]string, 0, len(resp.Results))
	for i, doc := range resp.Results {
		a := toArticle(i, doc, category, published)
		articles = append(articles, a)
		titles = append(titles, a.Title)
	}

	var summary string
	if len(articles) > 0 {
		if text, err := s.synthesizer.Complete(ctx, llm.Request{System: newsSystemPrompt, Prompt: newsPrompt(articles)}); err == nil {
			summary = text
		}
	}

	s.logger.Info("news search completed", zap.String("query", query), zap.Int("articles", len(articles)))

	return &NewsSearchResponse{
		Success:      true,
		Articles:     articles,
		AISummary:    summary,
		Trending:     aggregate.TrendingWords(titles, trendingCount),
		TotalResults: len(articles),
		Query:        query,
	}, nil
}

func (s *NewsService) recordSource(resp *search.SearchResponse, err error, d time.Duration) {
	if s.metrics == nil {
		return
	}
	outcome := metrics.OutcomeOK
	switch {
	case err != nil:
		outcome = metrics.OutcomeError
	case len(resp.Results) == 0:
		outcome = metrics.OutcomeEmpty
	}
	s.metrics.RecordSourceRequest("firecrawl", outcome, d)
}

// toArticle maps one scraped page; publication time is unknown upstream so
// the request time is used.
func toArticle(i int, doc search.Document, category, published string) domain.NewsArticle {
	title := doc.Title
	if title == "" {
		title = "Untitled Article"
	}
	description := doc.Description
	if description == "" {
		description = domain.Truncate(doc.Markdown, 200)
	}

	return domain.NewsArticle{
		ID:          fmt.Sprintf("news-%d", i),
		Title:       title,
		Description: description,
		Content:     doc.Markdown,
		URL:         doc.URL,
		Source:      domain.Hostname(doc.URL),
		PublishedAt: published,
		Image:       doc.Screenshot,
		Category:    category,
	}
}
