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

const fileNamespace = "6"

type Commons struct {
	base
}

func NewCommons(cfg Config, logger *zap.Logger) *Commons {
	return &Commons{base: newBase(cfg, commonsSite, logger)}
}

// Search finds media files and returns them as web results.
func (c *Commons) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srnamespace", fileNamespace)
	params.Set("srlimit", strconv.Itoa(limit))

	var resp listSearchResponse
	if err := search.GetJSON(ctx, c.client, c.apiURL(params), c.userAgent, &resp); err != nil {
		return nil, fmt.Errorf("commons search: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(resp.Query.Search))
	for _, hit := range resp.Query.Search {
		desc := search.StripTags(hit.Snippet)
		if desc == "" {
			desc = "Free media file from Wikimedia Commons"
		}
		results = append(results, domain.NewResult(
			fileName(hit.Title),
			commonsSite+"/wiki/"+url.PathEscape(hit.Title),
			desc,
			domain.TypeMedia,
		))
	}

	return results, nil
}

// Images runs a bitmap-only generator search and keeps images that are at
// least MinImageSide on both sides.
func (c *Commons) Images(ctx context.Context, query string, limit int) ([]domain.ImageResult, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("generator", "search")
	params.Set("gsrsearch", query+" filetype:bitmap")
	params.Set("gsrlimit", strconv.Itoa(limit))
	params.Set("gsrnamespace", fileNamespace)
	params.Set("prop", "imageinfo")
	params.Set("iiprop", "url|size|extmetadata")
	params.Set("iiurlwidth", "800")

	var resp pagesResponse
	if err := search.GetJSON(ctx, c.client, c.apiURL(params), c.userAgent, &resp); err != nil {
		return nil, fmt.Errorf("commons images: %w", err)
	}

	images := make([]domain.ImageResult, 0, len(resp.Query.Pages))
	for _, page := range orderedPages(resp.Query.Pages) {
		if len(page.ImageInfo) == 0 {
			continue
		}
		info := page.ImageInfo[0]
		meta := info.ExtMetadata

		img := domain.ImageResult{
			ID:        "wikimedia-" + strconv.FormatInt(page.PageID, 10),
			URL:       info.URL,
			Thumbnail: firstNonEmpty(info.ThumbURL, info.URL),
			Title:     firstNonEmpty(search.StripTags(meta.ObjectName.Value), fileName(page.Title)),
			Source:    commonsSite + "/wiki/File:" + url.PathEscape(fileName(page.Title)),
			Domain:    "commons.wikimedia.org",
			Width:     info.Width,
			Height:    info.Height,
			Author:    firstNonEmpty(search.StripTags(meta.Artist.Value), "Wikimedia Commons"),
			License:   firstNonEmpty(meta.LicenseShortName.Value, "CC"),
		}
		if !img.Acceptable() {
			continue
		}
		images = append(images, img)
	}

	return images, nil
}
