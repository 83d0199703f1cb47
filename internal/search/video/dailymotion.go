package video

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/domain"
	"github.com/kitbuilder587/searchportal/internal/search"
)

type DailymotionConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

type Dailymotion struct {
	baseURL   string
	userAgent string
	client    *http.Client
	logger    *zap.Logger
}

func NewDailymotion(cfg DailymotionConfig, logger *zap.Logger) *Dailymotion {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.dailymotion.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Dailymotion{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: cfg.Timeout},
		logger:    logger,
	}
}

type dailymotionResponse struct {
	List []struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Thumbnail   string `json:"thumbnail_480_url"`
		Duration    int    `json:"duration"`
		CreatedTime int64  `json:"created_time"`
		ViewsTotal  int64  `json:"views_total"`
	} `json:"list"`
}

func (d *Dailymotion) Videos(ctx context.Context, query string, limit int) ([]domain.VideoResult, error) {
	params := url.Values{}
	params.Set("search", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("fields", "id,title,description,thumbnail_480_url,duration,created_time,views_total")

	var resp dailymotionResponse
	if err := search.GetJSON(ctx, d.client, d.baseURL+"/videos?"+params.Encode(), d.userAgent, &resp); err != nil {
		return nil, fmt.Errorf("dailymotion search: %w", err)
	}

	videos := make([]domain.VideoResult, 0, len(resp.List))
	for _, item := range resp.List {
		if item.ID == "" {
			continue
		}
		published := domain.UnknownDate
		if item.CreatedTime > 0 {
			published = time.Unix(item.CreatedTime, 0).UTC().Format("2006-01-02")
		}
		videos = append(videos, domain.VideoResult{
			Title:       item.Title,
			URL:         "https://www.dailymotion.com/video/" + item.ID,
			Thumbnail:   item.Thumbnail,
			Duration:    domain.FormatDuration(item.Duration),
			Source:      domain.VideoSourceDailymotion,
			PublishedAt: published,
			Views:       domain.FormatViews(item.ViewsTotal),
			Description: search.Snippet(item.Description, descriptionLength),
		})
	}

	return videos, nil
}
