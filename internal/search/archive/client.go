// Package archive searches the Internet Archive advanced search API for
// general items and for movies.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
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

const site = "https://archive.org"

type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
	logger    *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = site
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: cfg.Timeout},
		logger:    logger,
	}
}

// text decodes metadata fields that the archive returns either as a string
// or as a list of strings.
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if data[0] == '[' {
		var parts []string
		if err := json.Unmarshal(data, &parts); err != nil {
			return err
		}
		*t = text(strings.Join(parts, " "))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = text(s)
	return nil
}

type doc struct {
	Identifier  string `json:"identifier"`
	Title       text   `json:"title"`
	Description text   `json:"description"`
	MediaType   string `json:"mediatype"`
	Date        string `json:"date"`
	Downloads   int64  `json:"downloads"`
}

type advancedSearchResponse struct {
	Response struct {
		Docs []doc `json:"docs"`
	} `json:"response"`
}

func (c *Client) advancedSearch(ctx context.Context, params url.Values) ([]doc, error) {
	params.Set("output", "json")

	var resp advancedSearchResponse
	if err := search.GetJSON(ctx, c.client, c.baseURL+"/advancedsearch.php?"+params.Encode(), c.userAgent, &resp); err != nil {
		return nil, err
	}

	docs := resp.Response.Docs[:0]
	for _, d := range resp.Response.Docs {
		if d.Identifier != "" {
			docs = append(docs, d)
		}
	}
	return docs, nil
}

// Search returns archive items of any media type as web results.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("q", query)
	params.Add("fl[]", "identifier")
	params.Add("fl[]", "title")
	params.Add("fl[]", "description")
	params.Add("fl[]", "mediatype")
	params.Set("rows", strconv.Itoa(limit))

	docs, err := c.advancedSearch(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("archive search: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(docs))
	for _, d := range docs {
		title := string(d.Title)
		if title == "" {
			title = d.Identifier
		}
		desc := search.Snippet(string(d.Description), 150)
		if desc == "" {
			desc = d.MediaType + " on Internet Archive"
		}
		results = append(results, domain.NewResult(title, site+"/details/"+d.Identifier, desc, domain.TypeArchive))
	}

	return results, nil
}

// Videos searches the movies collection, most downloaded first.
func (c *Client) Videos(ctx context.Context, query string, limit int) ([]domain.VideoResult, error) {
	params := url.Values{}
	params.Set("q", query+" mediatype:movies")
	params.Add("fl[]", "identifier")
	params.Add("fl[]", "title")
	params.Add("fl[]", "description")
	params.Add("fl[]", "date")
	params.Add("fl[]", "downloads")
	params.Add("sort[]", "downloads desc")
	params.Set("rows", strconv.Itoa(limit))

	docs, err := c.advancedSearch(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("archive videos: %w", err)
	}

	videos := make([]domain.VideoResult, 0, len(docs))
	for _, d := range docs {
		title := string(d.Title)
		if title == "" {
			title = d.Identifier
		}
		published := d.Date
		if published == "" {
			published = domain.UnknownDate
		}
		v := domain.VideoResult{
			Title:       title,
			URL:         site + "/details/" + d.Identifier,
			Thumbnail:   site + "/services/img/" + d.Identifier,
			Duration:    domain.UnknownDuration,
			Source:      domain.VideoSourceArchive,
			PublishedAt: published,
			Description: search.Snippet(string(d.Description), 200),
		}
		if d.Downloads > 0 {
			v.Views = domain.FormatDownloads(d.Downloads)
		}
		videos = append(videos, v)
	}

	return videos, nil
}
