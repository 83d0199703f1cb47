package video

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/domain"
	"github.com/kitbuilder587/searchportal/internal/fanout"
	"github.com/kitbuilder587/searchportal/internal/search"
)

type Invidious struct {
	cfg    MirrorConfig
	client *http.Client
	logger *zap.Logger
}

func NewInvidious(cfg MirrorConfig, logger *zap.Logger) *Invidious {
	return &Invidious{
		cfg:    cfg.withDefaults(DefaultInvidiousInstances, defaultMirrorTimeout),
		client: mirrorClient(),
		logger: logger,
	}
}

type invidiousItem struct {
	Type            string `json:"type"`
	Title           string `json:"title"`
	VideoID         string `json:"videoId"`
	VideoThumbnails []struct {
		URL string `json:"url"`
	} `json:"videoThumbnails"`
	LengthSeconds int    `json:"lengthSeconds"`
	PublishedText string `json:"publishedText"`
	ViewCount     int64  `json:"viewCount"`
	Description   string `json:"description"`
}

func (c *Invidious) Videos(ctx context.Context, query string, limit int) ([]domain.VideoResult, error) {
	return fanout.TryInOrder(ctx, c.cfg.Instances, c.cfg.Timeout, func(ctx context.Context, instance string) ([]domain.VideoResult, error) {
		videos, err := c.search(ctx, instance, query, limit)
		if err != nil {
			c.logger.Debug("invidious instance failed", zap.String("instance", instance), zap.Error(err))
			return nil, err
		}
		return videos, nil
	})
}

func (c *Invidious) search(ctx context.Context, instance, query string, limit int) ([]domain.VideoResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("sort_by", "relevance")

	var items []invidiousItem
	if err := search.GetJSON(ctx, c.client, instance+"/api/v1/search?"+params.Encode(), c.cfg.UserAgent, &items); err != nil {
		return nil, fmt.Errorf("invidious search: %w", err)
	}

	videos := make([]domain.VideoResult, 0, limit)
	for _, item := range items {
		if len(videos) == limit {
			break
		}
		if item.Type != "video" || item.VideoID == "" {
			continue
		}

		thumb := youTubeThumbnail(item.VideoID)
		if len(item.VideoThumbnails) > 0 && item.VideoThumbnails[0].URL != "" {
			thumb = item.VideoThumbnails[0].URL
		}
		title := item.Title
		if title == "" {
			title = "Untitled"
		}

		videos = append(videos, domain.VideoResult{
			Title:       title,
			URL:         youTubeURL(item.VideoID),
			Thumbnail:   thumb,
			Duration:    domain.FormatDuration(item.LengthSeconds),
			Source:      domain.VideoSourceYouTube,
			PublishedAt: orUnknown(item.PublishedText),
			Views:       domain.FormatViews(item.ViewCount),
			Description: domain.Truncate(item.Description, descriptionLength),
		})
	}

	return videos, nil
}
