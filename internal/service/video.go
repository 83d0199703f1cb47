package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/aggregate"
	"github.com/kitbuilder587/searchportal/internal/domain"
	"github.com/kitbuilder587/searchportal/internal/fanout"
	"github.com/kitbuilder587/searchportal/internal/metrics"
)

// VideoSources in interleave order. YouTube gets half the limit, the
// others a quarter each.
type VideoSources struct {
	YouTube     VideoSource
	Dailymotion VideoSource
	Archive     VideoSource
	PeerTube    VideoSource
}

type VideoServiceDeps struct {
	Sources VideoSources
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

type VideoService struct {
	sources  VideoSources
	observer observer
	logger   *zap.Logger
}

func NewVideoService(deps VideoServiceDeps) *VideoService {
	obs := newObserver(deps.Logger, deps.Metrics)
	return &VideoService{sources: deps.Sources, observer: obs, logger: obs.logger}
}

func (s *VideoService) Search(ctx context.Context, req domain.VideoSearchRequest) (*VideoSearchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	limit := domain.ClampLimit(req.Options.Limit, domain.DefaultVideoLimit, domain.MaxVerticalLimit)

	var tasks []fanout.Task[domain.VideoResult]
	add := func(name string, src VideoSource, n int) {
		if src == nil {
			return
		}
		tasks = append(tasks, fanout.Task[domain.VideoResult]{Name: name, Run: func(ctx context.Context) ([]domain.VideoResult, error) {
			return src.Videos(ctx, req.Query, n)
		}})
	}
	add("youtube", s.sources.YouTube, ceilDiv(limit, 2))
	add("dailymotion", s.sources.Dailymotion, ceilDiv(limit, 4))
	add("archive", s.sources.Archive, ceilDiv(limit, 4))
	add("peertube", s.sources.PeerTube, ceilDiv(limit, 4))

	outcomes := fanout.Settle(ctx, tasks)
	record(s.observer, req.Query, outcomes)

	videos := aggregate.Interleave(lists(outcomes)...)
	videos = aggregate.Dedupe(videos, func(v domain.VideoResult) string { return v.URL })
	videos = aggregate.Truncate(videos, limit)

	s.logger.Info("video search completed", zap.String("query", req.Query), zap.Int("videos", len(videos)))

	return &VideoSearchResponse{
		Success: true,
		Videos:  videos,
		Total:   len(videos),
		Query:   req.Query,
	}, nil
}
