package video

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/domain"
	"github.com/kitbuilder587/searchportal/internal/fanout"
	"github.com/kitbuilder587/searchportal/internal/search"
)

type PeerTube struct {
	cfg    MirrorConfig
	client *http.Client
	logger *zap.Logger
}

func NewPeerTube(cfg MirrorConfig, logger *zap.Logger) *PeerTube {
	return &PeerTube{
		cfg:    cfg.withDefaults(DefaultPeerTubeInstances, defaultPeerTubeTimeout),
		client: mirrorClient(),
		logger: logger,
	}
}

type peerTubeResponse struct {
	Data []struct {
		Name          string `json:"name"`
		URL           string `json:"url"`
		UUID          string `json:"uuid"`
		ThumbnailPath string `json:"thumbnailPath"`
		Duration      int    `json:"duration"`
		PublishedAt   string `json:"publishedAt"`
		Views         int64  `json:"views"`
		Description   string `json:"description"`
	} `json:"data"`
}

func (p *PeerTube) Videos(ctx context.Context, query string, limit int) ([]domain.VideoResult, error) {
	return fanout.TryInOrder(ctx, p.cfg.Instances, p.cfg.Timeout, func(ctx context.Context, instance string) ([]domain.VideoResult, error) {
		videos, err := p.search(ctx, instance, query, limit)
		if err != nil {
			p.logger.Debug("peertube instance failed", zap.String("instance", instance), zap.Error(err))
			return nil, err
		}
		return videos, nil
	})
}

func (p *PeerTube) search(ctx context.Context, instance, query string, limit int) ([]domain.VideoResult, error) {
	params := url.Values{}
	params.Set("search", query)
	params.Set("count", strconv.Itoa(limit))

	var resp peerTubeResponse
	if err := search.GetJSON(ctx, p.client, instance+"/api/v1/search/videos?"+params.Encode(), p.cfg.UserAgent, &resp); err != nil {
		return nil, fmt.Errorf("peertube search: %w", err)
	}

	videos := make([]domain.VideoResult, 0, len(resp.Data))
	for _, item := range resp.Data {
		videoURL := item.URL
		if videoURL == "" {
			if item.UUID == "" {
				continue
			}
			videoURL = instance + "/w/" + item.UUID
		}

		thumb := ""
		if item.ThumbnailPath != "" {
			thumb = instance + item.ThumbnailPath
		}

		published := domain.UnknownDate
		if t, err := time.Parse(time.RFC3339, item.PublishedAt); err == nil {
			published = t.UTC().Format("2006-01-02")
		}

		videos = append(videos, domain.VideoResult{
			Title:       item.Name,
			URL:         videoURL,
			Thumbnail:   thumb,
			Duration:    domain.FormatDuration(item.Duration),
			Source:      domain.VideoSourcePeerTube,
			PublishedAt: published,
			Views:       domain.FormatViews(item.Views),
			Description: domain.Truncate(item.Description, descriptionLength),
		})
	}

	return videos, nil
}
