package wikimedia

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/domain"
	"github.com/kitbuilder587/searchportal/internal/search"
)

type Wikipedia struct {
	base
}

func NewWikipedia(cfg Config, logger *zap.Logger) *Wikipedia {
	return &Wikipedia{base: newBase(cfg, wikipediaSite, logger)}
}

func (w *Wikipedia) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	if limit <= 0 {
		limit = 8
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", strconv.Itoa(limit))

	var resp listSearchResponse
	if err := search.GetJSON(ctx, w.client, w.apiURL(params), w.userAgent, &resp); err != nil {
		return nil, fmt.Errorf("wikipedia search: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(resp.Query.Search))
	for _, hit := range resp.Query.Search {
		r := domain.NewResult(hit.Title, wikipediaSite+"/wiki/"+wikiPath(hit.Title), search.StripTags(hit.Snippet), domain.TypeWikipedia)
		r.Favicon = domain.FaviconURL("wikipedia.org")
		results = append(results, r)
	}

	return results, nil
}

type summaryResponse struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	Thumbnail struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Summary returns the knowledge panel for an exact title match. Pages other
// than standard articles and disambiguations yield nil without error.
func (w *Wikipedia) Summary(ctx context.Context, query string) (*domain.KnowledgePanel, error) {
	var resp summaryResponse
	rawURL := w.baseURL + "/api/rest_v1/page/summary/" + wikiPath(query)
	if err := search.GetJSON(ctx, w.client, rawURL, w.userAgent, &resp); err != nil {
		return nil, fmt.Errorf("wikipedia summary: %w", err)
	}

	if resp.Type != "standard" && resp.Type != "disambiguation" {
		return nil, nil
	}

	return &domain.KnowledgePanel{
		Title:     resp.Title,
		Extract:   resp.Extract,
		Thumbnail: resp.Thumbnail.Source,
		URL:       resp.ContentURLs.Desktop.Page,
	}, nil
}

// Images lists the images embedded in the article titled query.
func (w *Wikipedia) Images(ctx context.Context, query string, limit int) ([]domain.ImageResult, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("generator", "images")
	params.Set("titles", query)
	params.Set("gimlimit", strconv.Itoa(limit))
	params.Set("prop", "imageinfo")
	params.Set("iiprop", "url|size")
	params.Set("iiurlwidth", "800")

	var resp pagesResponse
	if err := search.GetJSON(ctx, w.client, w.apiURL(params), w.userAgent, &resp); err != nil {
		return nil, fmt.Errorf("wikipedia page images: %w", err)
	}

	images := make([]domain.ImageResult, 0, len(resp.Query.Pages))
	for _, page := range orderedPages(resp.Query.Pages) {
		if len(page.ImageInfo) == 0 {
			continue
		}
		info := page.ImageInfo[0]
		name := fileName(page.Title)
		if name == "" {
			name = query
		}
		img := domain.ImageResult{
			ID:        "wiki-" + strconv.FormatInt(page.PageID, 10),
			URL:       info.URL,
			Thumbnail: firstNonEmpty(info.ThumbURL, info.URL),
			Title:     name,
			Source:    wikipediaSite + "/wiki/File:" + url.PathEscape(fileName(page.Title)),
			Domain:    "en.wikipedia.org",
			Width:     info.Width,
			Height:    info.Height,
			Author:    "Wikipedia",
			License:   "Various",
		}
		if !img.Acceptable() {
			continue
		}
		images = append(images, img)
	}

	return images, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
