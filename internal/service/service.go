package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/domain"
	"github.com/kitbuilder587/searchportal/internal/fanout"
	"github.com/kitbuilder587/searchportal/internal/metrics"
)

var ErrNotConfigured = errors.New("search provider not configured")

type InstantAnswerer interface {
	InstantAnswer(ctx context.Context, query string) (*domain.InstantAnswer, error)
}

type Encyclopedia interface {
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
	Summary(ctx context.Context, query string) (*domain.KnowledgePanel, error)
}

type EntityFinder interface {
	Entities(ctx context.Context, query string, limit int) ([]domain.WikidataEntity, error)
}

// ResultSource is any adapter that maps a query onto web results.
type ResultSource interface {
	Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error)
}

type PaperSource interface {
	Papers(ctx context.Context, query, category string, limit int) ([]domain.AcademicPaper, error)
}

type VideoSource interface {
	Videos(ctx context.Context, query string, limit int) ([]domain.VideoResult, error)
}

type ImageSource interface {
	Images(ctx context.Context, query string, limit int) ([]domain.ImageResult, error)
}

// Clock returns the current time; tests pin it.
type Clock func() time.Time

// observer logs and counts adapter outcomes after a fan-out settles.
type observer struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func newObserver(logger *zap.Logger, m *metrics.Metrics) observer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return observer{logger: logger, metrics: m}
}

func record[T any](o observer, query string, outcomes []fanout.Outcome[T]) {
	for _, out := range outcomes {
		outcome := metrics.OutcomeOK
		switch {
		case out.Err != nil:
			outcome = metrics.OutcomeError
			o.logger.Warn("source failed",
				zap.String("source", out.Name),
				zap.String("query", query),
				zap.Duration("duration", out.Duration),
				zap.Error(out.Err),
			)
		case len(out.Items) == 0:
			outcome = metrics.OutcomeEmpty
		}

		if o.metrics != nil {
			o.metrics.RecordSourceRequest(out.Name, outcome, out.Duration)
		}
	}
}

// lists returns each outcome's items in task order.
func lists[T any](outcomes []fanout.Outcome[T]) [][]T {
	out := make([][]T, len(outcomes))
	for i, o := range outcomes {
		out[i] = o.Items
	}
	return out
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}
