package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/aggregate"
	"github.com/kitbuilder587/searchportal/internal/domain"
	"github.com/kitbuilder587/searchportal/internal/fanout"
	"github.com/kitbuilder587/searchportal/internal/intent"
	"github.com/kitbuilder587/searchportal/internal/llm"
	"github.com/kitbuilder587/searchportal/internal/metrics"
	"github.com/kitbuilder587/searchportal/internal/search"
)

// Per-source caps for a web search.
const (
	webWikipediaLimit   = 8
	webWikidataLimit    = 5
	webBooksLimit       = 8
	webPapersLimit      = 5
	webCommonsLimit     = 5
	webArchiveLimit     = 5
	academicWebLimit    = 15
	webSourceCount      = 8
	academicSourceCount = 5
	academicMaxTokens   = 800
)

// WebSources are the adapters behind the web endpoint. Nil entries are
// skipped.
type WebSources struct {
	DuckDuckGo  InstantAnswerer
	Wikipedia   Encyclopedia
	Wikidata    EntityFinder
	OpenLibrary ResultSource
	Arxiv       ResultSource
	PubMed      ResultSource
	Commons     ResultSource
	Archive     ResultSource
}

type WebServiceDeps struct {
	Sources     WebSources
	Synthesizer *Synthesizer
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	Clock       Clock
}

type WebService struct {
	sources     WebSources
	synthesizer *Synthesizer
	observer    observer
	logger      *zap.Logger
	now         Clock
}

func NewWebService(deps WebServiceDeps) *WebService {
	obs := newObserver(deps.Logger, deps.Metrics)
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	return &WebService{
		sources:     deps.Sources,
		synthesizer: deps.Synthesizer,
		observer:    obs,
		logger:      obs.logger,
		now:         deps.Clock,
	}
}

func (s *WebService) Search(ctx context.Context, req domain.WebSearchRequest) (*WebSearchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Mode == "" {
		req.Mode = domain.ModeWeb
	}

	if req.Academic() {
		return s.academic(ctx, req.Query)
	}

	detection := intent.Detect(req.Query)
	s.logger.Debug("detected intent",
		zap.String("query", req.Query),
		zap.Strings("categories", detection.Categories),
		zap.Int("platforms", len(detection.Platforms)),
	)

	var (
		answer   domain.InstantAnswer
		panel    *domain.KnowledgePanel
		entities []domain.WikidataEntity
	)

	q := req.Query
	var tasks []fanout.Task[domain.SearchResult]

	if src := s.sources.DuckDuckGo; src != nil {
		tasks = append(tasks, fanout.Task[domain.SearchResult]{Name: "duckduckgo", Run: func(ctx context.Context) ([]domain.SearchResult, error) {
			ia, err := src.InstantAnswer(ctx, q)
			if err != nil {
				return nil, err
			}
			answer = *ia
			return ia.Results, nil
		}})
	}

	if src := s.sources.Wikipedia; src != nil {
		tasks = append(tasks,
			fanout.Task[domain.SearchResult]{Name: "wikipedia", Run: func(ctx context.Context) ([]domain.SearchResult, error) {
				return src.Search(ctx, q, webWikipediaLimit)
			}},
			summaryTask(src, q, &panel),
		)
	}

	if src := s.sources.Wikidata; src != nil {
		tasks = append(tasks, fanout.Task[domain.SearchResult]{Name: "wikidata", Run: func(ctx context.Context) ([]domain.SearchResult, error) {
			found, err := src.Entities(ctx, q, webWikidataLimit)
			if err != nil {
				return nil, err
			}
			entities = found
			results := make([]domain.SearchResult, 0, len(found))
			for _, e := range found {
				results = append(results, e.Result())
			}
			return results, nil
		}})
	}

	if detection.Has(intent.CategoryBooks) || detection.Has(intent.CategoryAcademic) {
		tasks = appendSource(tasks, "openlibrary", s.sources.OpenLibrary, q, webBooksLimit)
		tasks = appendSource(tasks, "arxiv", s.sources.Arxiv, q, webPapersLimit)
		tasks = appendSource(tasks, "pubmed", s.sources.PubMed, q, webPapersLimit)
	}
	tasks = appendSource(tasks, "commons", s.sources.Commons, q, webCommonsLimit)
	tasks = appendSource(tasks, "archive", s.sources.Archive, q, webArchiveLimit)

	outcomes := fanout.Settle(ctx, tasks)
	record(s.observer, q, outcomes)

	// Platform deep links lead as a block; the upstream lists interleave after them.
	merged := intent.PlatformResults(q, detection)
	merged = append(merged, aggregate.Interleave(lists(outcomes)...)...)
	merged = append(merged, aggregate.WebSearchLinks(q)...)
	results := aggregate.Truncate(aggregate.DedupeResults(merged), domain.WebResultBudget)

	in := AnswerInput{
		Query:    q,
		Abstract: answer.Abstract,
		Entities: entities,
		Results:  results,
	}
	if panel != nil {
		in.Extract = panel.Extract
	}

	aiResponse := Fallback(in)
	if req.Mode == domain.ModeAI {
		aiResponse = s.synthesizer.Answer(ctx, in)
	}

	s.logger.Info("web search completed",
		zap.String("query", q),
		zap.String("mode", string(req.Mode)),
		zap.Int("results", len(results)),
	)

	return &WebSearchResponse{
		AIResponse:         aiResponse,
		Sources:            aggregate.Sources(results, webSourceCount),
		WebResults:         results,
		RelatedSearches:    aggregate.RelatedSearches(q, s.now().Year()),
		TotalResults:       len(results),
		SearchTime:         s.now().UnixMilli(),
		DetectedCategories: detection.Categories,
		KnowledgePanel:     panel,
		WikidataEntities:   entities,
	}, nil
}

// academic serves options.filter == "academic": arXiv and PubMed only,
// with scholarly deep links.
func (s *WebService) academic(ctx context.Context, q string) (*WebSearchResponse, error) {
	var panel *domain.KnowledgePanel

	var tasks []fanout.Task[domain.SearchResult]
	tasks = appendSource(tasks, "arxiv", s.sources.Arxiv, q, academicWebLimit)
	tasks = appendSource(tasks, "pubmed", s.sources.PubMed, q, academicWebLimit)
	if src := s.sources.Wikipedia; src != nil {
		tasks = append(tasks, summaryTask(src, q, &panel))
	}

	outcomes := fanout.Settle(ctx, tasks)
	record(s.observer, q, outcomes)

	merged := aggregate.Interleave(lists(outcomes)...)
	merged = append(merged, aggregate.AcademicSearchLinks(q)...)
	results := aggregate.Truncate(aggregate.DedupeResults(merged), domain.WebResultBudget)

	in := AnswerInput{Query: q, Results: results}
	if panel != nil {
		in.Extract = panel.Extract
	}

	aiResponse, err := s.synthesizer.Complete(ctx, llm.Request{
		Prompt:    academicWebPrompt(q, results),
		MaxTokens: academicMaxTokens,
	})
	if err != nil || aiResponse == "" {
		aiResponse = Fallback(in)
	}

	s.logger.Info("academic web search completed", zap.String("query", q), zap.Int("results", len(results)))

	return &WebSearchResponse{
		AIResponse:         aiResponse,
		Sources:            aggregate.Sources(results, academicSourceCount),
		WebResults:         results,
		RelatedSearches:    aggregate.AcademicRelatedSearches(q),
		TotalResults:       len(results),
		SearchTime:         s.now().UnixMilli(),
		DetectedCategories: []string{intent.CategoryAcademic},
		KnowledgePanel:     panel,
	}, nil
}

func appendSource(tasks []fanout.Task[domain.SearchResult], name string, src ResultSource, q string, limit int) []fanout.Task[domain.SearchResult] {
	if src == nil {
		return tasks
	}
	return append(tasks, fanout.Task[domain.SearchResult]{Name: name, Run: func(ctx context.Context) ([]domain.SearchResult, error) {
		return src.Search(ctx, q, limit)
	}})
}

// summaryTask fills panel from the Wikipedia summary. A missing article is
// an empty outcome, not a source failure.
func summaryTask(src Encyclopedia, q string, panel **domain.KnowledgePanel) fanout.Task[domain.SearchResult] {
	return fanout.Task[domain.SearchResult]{Name: "wikipedia-summary", Run: func(ctx context.Context) ([]domain.SearchResult, error) {
		p, err := src.Summary(ctx, q)
		if errors.Is(err, search.ErrNotFound) {
			return nil, nil
		}
		*panel = p
		return nil, err
	}}
}
