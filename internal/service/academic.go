package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/aggregate"
	"github.com/kitbuilder587/searchportal/internal/domain"
	"github.com/kitbuilder587/searchportal/internal/fanout"
	"github.com/kitbuilder587/searchportal/internal/llm"
	"github.com/kitbuilder587/searchportal/internal/metrics"
)

const (
	academicPerSource     = 15
	paperSummaryMaxTokens = 300
)

type AcademicServiceDeps struct {
	Arxiv       PaperSource
	PubMed      PaperSource
	Synthesizer *Synthesizer
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
}

type AcademicService struct {
	arxiv       PaperSource
	pubmed      PaperSource
	synthesizer *Synthesizer
	observer    observer
	logger      *zap.Logger
}

func NewAcademicService(deps AcademicServiceDeps) *AcademicService {
	obs := newObserver(deps.Logger, deps.Metrics)
	return &AcademicService{
		arxiv:       deps.Arxiv,
		pubmed:      deps.PubMed,
		synthesizer: deps.Synthesizer,
		observer:    obs,
		logger:      obs.logger,
	}
}

func (s *AcademicService) Search(ctx context.Context, req domain.AcademicSearchRequest) (*AcademicSearchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var tasks []fanout.Task[domain.AcademicPaper]
	for _, src := range []struct {
		name   string
		source PaperSource
	}{
		{"arxiv", s.arxiv},
		{"pubmed", s.pubmed},
	} {
		if src.source == nil {
			continue
		}
		source := src.source
		tasks = append(tasks, fanout.Task[domain.AcademicPaper]{Name: src.name, Run: func(ctx context.Context) ([]domain.AcademicPaper, error) {
			return source.Papers(ctx, req.Query, req.Category, academicPerSource)
		}})
	}

	outcomes := fanout.Settle(ctx, tasks)
	record(s.observer, req.Query, outcomes)

	papers := aggregate.Interleave(lists(outcomes)...)
	papers = aggregate.Dedupe(papers, func(p domain.AcademicPaper) string { return p.URL })
	papers = aggregate.Truncate(papers, domain.AcademicResultBudget)
	domain.SortPapers(papers, req.SortBy)

	var summary string
	if len(papers) > 0 {
		text, err := s.synthesizer.Complete(ctx, llm.Request{
			Prompt:    paperSummaryPrompt(req.Query, papers),
			MaxTokens: paperSummaryMaxTokens,
		})
		if err == nil {
			summary = text
		}
	}

	s.logger.Info("academic search completed",
		zap.String("query", req.Query),
		zap.String("category", req.Category),
		zap.Int("papers", len(papers)),
	)

	return &AcademicSearchResponse{
		Papers:        papers,
		TotalResults:  len(papers),
		AISummary:     summary,
		RelatedTopics: aggregate.RelatedTopics(req.Query),
	}, nil
}
