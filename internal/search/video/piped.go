package video

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/domain"
	"github.com/kitbuilder587/searchportal/internal/fanout"
	"github.com/kitbuilder587/searchportal/internal/search"
)

type Piped struct {
	cfg    MirrorConfig
	client *http.Client
	logger *zap.Logger
}

func NewPiped(cfg MirrorConfig, logger *zap.Logger) *Piped {
	return &Piped{
		cfg:    cfg.withDefaults(DefaultPipedInstances, defaultMirrorTimeout),
		client: mirrorClient(),
		logger: logger,
	}
}

type pipedResponse struct {
	Items []struct {
		Type             string `json:"type"`
		URL              string `json:"url"`
		Title            string `json:"title"`
		Thumbnail        string `json:"thumbnail"`
		Duration         int    `json:"duration"`
		UploadedDate     string `json:"uploadedDate"`
		Views            int64  `json:"views"`
		ShortDescription string `json:"shortDescription"`
	} `json:"items"`
}

func (c *Piped) Videos(ctx context.Context, query string, limit int) ([]domain.VideoResult, error) {
	return fanout.TryInOrder(ctx, c.cfg.Instances, c.cfg.Timeout, func(ctx context.Context, instance string) ([]domain.VideoResult, error) {
		videos, err := c.search(ctx, instance, query, limit)
		if err != nil {
			c.logger.Debug("piped instance failed", zap.String("instance", instance), zap.Error(err))
			return nil, err
		}
		return videos, nil
	})
}

func (c *Piped) search(ctx context.Context, instance, query string, limit int) ([]domain.VideoResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("filter", "videos")

	var resp pipedResponse
	if err := search.GetJSON(ctx, c.client, instance+"/search?"+params.Encode(), c.cfg.UserAgent, &resp); err != nil {
		return nil, fmt.Errorf("piped search: %w", err)
	}

	videos := make([]domain.VideoResult, 0, limit)
	for _, item := range resp.Items {
		if len(videos) == limit {
			break
		}
		if item.Type != "stream" {
			continue
		}
		videoID := strings.TrimPrefix(item.URL, "/watch?v=")
		if videoID == "" {
			continue
		}

		thumb := item.Thumbnail
		if thumb == "" {
			thumb = youTubeThumbnail(videoID)
		}
		title := item.Title
		if title == "" {
			title = "Untitled"
		}

		videos = append(videos, domain.VideoResult{
			Title:       title,
			URL:         youTubeURL(videoID),
			Thumbnail:   thumb,
			Duration:    domain.FormatDuration(item.Duration),
			Source:      domain.VideoSourceYouTube,
			PublishedAt: orUnknown(item.UploadedDate),
			Views:       domain.FormatViews(item.Views),
			Description: domain.Truncate(item.ShortDescription, descriptionLength),
		})
	}

	return videos, nil
}
