package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/aggregate"
	"github.com/kitbuilder587/searchportal/internal/domain"
	"github.com/kitbuilder587/searchportal/internal/fanout"
	"github.com/kitbuilder587/searchportal/internal/metrics"
)

type ImageServiceDeps struct {
	Commons   ImageSource
	Wikipedia ImageSource
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
}

type ImageService struct {
	commons   ImageSource
	wikipedia ImageSource
	observer  observer
	logger    *zap.Logger
}

func NewImageService(deps ImageServiceDeps) *ImageService {
	obs := newObserver(deps.Logger, deps.Metrics)
	return &ImageService{
		commons:   deps.Commons,
		wikipedia: deps.Wikipedia,
		observer:  obs,
		logger:    obs.logger,
	}
}

func (s *ImageService) Search(ctx context.Context, req domain.ImageSearchRequest) (*ImageSearchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	limit := domain.ClampLimit(req.Options.Limit, domain.DefaultImageLimit, domain.MaxVerticalLimit)
	perSource := ceilDiv(limit, 2)

	var tasks []fanout.Task[domain.ImageResult]
	for _, src := range []struct {
		name   string
		source ImageSource
	}{
		{"commons", s.commons},
		{"wikipedia", s.wikipedia},
	} {
		if src.source == nil {
			continue
		}
		source := src.source
		tasks = append(tasks, fanout.Task[domain.ImageResult]{Name: src.name, Run: func(ctx context.Context) ([]domain.ImageResult, error) {
			return source.Images(ctx, req.Query, perSource)
		}})
	}

	outcomes := fanout.Settle(ctx, tasks)
	record(s.observer, req.Query, outcomes)

	images := aggregate.Interleave(lists(outcomes)...)
	images = aggregate.Dedupe(images, func(img domain.ImageResult) string { return img.URL })
	images = aggregate.Truncate(images, limit)
	for i := range images {
		images[i].ID = fmt.Sprintf("img-%d", i)
	}

	s.logger.Info("image search completed", zap.String("query", req.Query), zap.Int("images", len(images)))

	return &ImageSearchResponse{
		Success:      true,
		Images:       images,
		TotalResults: len(images),
		Query:        req.Query,
	}, nil
}
