package video

import (
	"context"

	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/domain"
	"github.com/kitbuilder587/searchportal/internal/fanout"
)

type mirror interface {
	Videos(ctx context.Context, query string, limit int) ([]domain.VideoResult, error)
}

// YouTube queries the Invidious and Piped mirrors concurrently. Invidious
// results win when present; Piped answers only when Invidious came back empty.
type YouTube struct {
	primary  mirror
	fallback mirror
	logger   *zap.Logger
}

func NewYouTube(invidious *Invidious, piped *Piped, logger *zap.Logger) *YouTube {
	return &YouTube{primary: invidious, fallback: piped, logger: logger}
}

func (y *YouTube) Videos(ctx context.Context, query string, limit int) ([]domain.VideoResult, error) {
	outcomes := fanout.Settle(ctx, []fanout.Task[domain.VideoResult]{
		{Name: "invidious", Run: func(ctx context.Context) ([]domain.VideoResult, error) {
			return y.primary.Videos(ctx, query, limit)
		}},
		{Name: "piped", Run: func(ctx context.Context) ([]domain.VideoResult, error) {
			return y.fallback.Videos(ctx, query, limit)
		}},
	})
	invidious, piped := outcomes[0], outcomes[1]

	if len(invidious.Items) > 0 {
		return invidious.Items, nil
	}
	if invidious.Err != nil {
		y.logger.Info("invidious mirrors exhausted", zap.Error(invidious.Err))
	}
	if len(piped.Items) > 0 {
		return piped.Items, nil
	}
	if invidious.Err != nil {
		return nil, invidious.Err
	}
	return nil, piped.Err
}
