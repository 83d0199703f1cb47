package intent

import (
	"fmt"
	"net/url"

	"github.com/kitbuilder587/searchportal/internal/domain"
)

var (
	mapsKeywords   = []string{"map", "location", "directions", "near me"}
	videoKeywords  = []string{"video", "watch", "stream"}
	imagesKeywords = []string{"image", "photo", "picture", "pic"}
)

// PlatformResults builds one deep link per detected platform, then one
// per maps/video/images category.
func PlatformResults(query string, d Detection) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(d.Platforms)+3)

	for _, p := range d.Platforms {
		q := StripKeywords(query, p.Keywords)

		title := fmt.Sprintf("%s - %s", p.Name, orDefault(q, "Home"))
		link := "https://" + p.Domain
		if q != "" {
			link += "/search?q=" + url.QueryEscape(q)
		}

		results = append(results, domain.SearchResult{
			Title:       title,
			URL:         link,
			Description: fmt.Sprintf("Search \"%s\" on %s.", orDefault(q, query), p.Name),
			Favicon:     favicon(p.Domain),
			Type:        domain.TypePlatform,
		})
	}

	if d.Has(CategoryMaps) {
		q := StripKeywords(query, mapsKeywords)
		results = append(results, domain.SearchResult{
			Title:       q + " - Google Maps",
			URL:         "https://www.google.com/maps/search/" + url.PathEscape(q),
			Description: fmt.Sprintf("Find %s on Google Maps.", q),
			Favicon:     favicon("google.com"),
			Type:        domain.TypeMap,
		})
	}

	if d.Has(CategoryVideo) {
		q := StripKeywords(query, videoKeywords)
		results = append(results, domain.SearchResult{
			Title:       q + " - YouTube",
			URL:         "https://www.youtube.com/results?search_query=" + url.QueryEscape(q),
			Description: fmt.Sprintf("Watch %s videos on YouTube.", q),
			Favicon:     favicon("youtube.com"),
			Type:        domain.TypeVideo,
		})
	}

	if d.Has(CategoryImages) {
		q := StripKeywords(query, imagesKeywords)
		results = append(results, domain.SearchResult{
			Title:       q + " Images",
			URL:         "https://www.google.com/search?tbm=isch&q=" + url.QueryEscape(q),
			Description: fmt.Sprintf("Find %s images and photos.", q),
			Favicon:     favicon("google.com"),
			Type:        domain.TypeImage,
		})
	}

	return results
}

// favicon keeps the platform domain as written, path included.
func favicon(domainName string) string {
	return fmt.Sprintf("https://www.google.com/s2/favicons?domain=%s&sz=32", domainName)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
