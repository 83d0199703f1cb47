// Package wikimedia contains adapters for Wikipedia, Wikidata and
// Wikimedia Commons. All three speak the MediaWiki action API.
package wikimedia

import (
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	wikipediaSite = "https://en.wikipedia.org"
	wikidataSite  = "https://www.wikidata.org"
	commonsSite   = "https://commons.wikimedia.org"
)

type Config struct {
	// BaseURL overrides the site root, mainly for tests.
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

type base struct {
	baseURL   string
	userAgent string
	client    *http.Client
	logger    *zap.Logger
}

func newBase(cfg Config, site string, logger *zap.Logger) base {
	if cfg.BaseURL == "" {
		cfg.BaseURL = site
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return base{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: cfg.Timeout},
		logger:    logger,
	}
}

func (b base) apiURL(params url.Values) string {
	params.Set("format", "json")
	params.Set("origin", "*")
	return b.baseURL + "/w/api.php?" + params.Encode()
}

// wikiPath turns a page title into the /wiki/ path segment.
func wikiPath(title string) string {
	return url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}

type searchHit struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

type listSearchResponse struct {
	Query struct {
		Search []searchHit `json:"search"`
	} `json:"query"`
}

type imageInfo struct {
	URL         string `json:"url"`
	ThumbURL    string `json:"thumburl"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ExtMetadata struct {
		ObjectName       metaValue `json:"ObjectName"`
		Artist           metaValue `json:"Artist"`
		LicenseShortName metaValue `json:"LicenseShortName"`
	} `json:"extmetadata"`
}

type metaValue struct {
	Value string `json:"value"`
}

type imagePage struct {
	PageID    int64       `json:"pageid"`
	Title     string      `json:"title"`
	Index     int         `json:"index"`
	ImageInfo []imageInfo `json:"imageinfo"`
}

type pagesResponse struct {
	Query struct {
		Pages map[string]imagePage `json:"pages"`
	} `json:"query"`
}

// orderedPages returns generator pages in search rank order. The API keys
// pages by id, so map order carries no meaning.
func orderedPages(pages map[string]imagePage) []imagePage {
	out := make([]imagePage, 0, len(pages))
	for _, p := range pages {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Index != out[j].Index {
			return out[i].Index < out[j].Index
		}
		return out[i].Title < out[j].Title
	})
	return out
}

func fileName(title string) string {
	return strings.TrimPrefix(title, "File:")
}
