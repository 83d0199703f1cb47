// Package intent classifies free-text queries into platforms and topical
// categories by keyword matching.
package intent

import (
	"regexp"
	"strings"
)

// Categories shared by the platform table and the intent keyword table.
const (
	CategorySocial    = "social"
	CategoryMessaging = "messaging"
	CategoryVideo     = "video"
	CategoryMaps      = "maps"
	CategoryShopping  = "shopping"
	CategoryNews      = "news"
	CategoryBooks     = "books"
	CategoryAcademic  = "academic"
	CategoryImages    = "images"
)

type Platform struct {
	Name     string
	Domain   string
	Category string
	Keywords []string
}

type keywordSet struct {
	Category string
	Keywords []string
}

// Platforms is checked in order; the order also fixes the order of
// detected categories and of the generated platform results.
var Platforms = []Platform{
	{Name: "Instagram", Domain: "instagram.com", Category: CategorySocial, Keywords: []string{"instagram", "insta", "ig"}},
	{Name: "Facebook", Domain: "facebook.com", Category: CategorySocial, Keywords: []string{"facebook", "fb"}},
	{Name: "Twitter/X", Domain: "twitter.com", Category: CategorySocial, Keywords: []string{"twitter", "x.com", "tweet"}},
	{Name: "TikTok", Domain: "tiktok.com", Category: CategorySocial, Keywords: []string{"tiktok", "tik tok"}},
	{Name: "LinkedIn", Domain: "linkedin.com", Category: CategorySocial, Keywords: []string{"linkedin"}},
	{Name: "Pinterest", Domain: "pinterest.com", Category: CategorySocial, Keywords: []string{"pinterest"}},
	{Name: "Reddit", Domain: "reddit.com", Category: CategorySocial, Keywords: []string{"reddit"}},

	{Name: "Telegram", Domain: "telegram.org", Category: CategoryMessaging, Keywords: []string{"telegram", "tg"}},
	{Name: "WhatsApp", Domain: "whatsapp.com", Category: CategoryMessaging, Keywords: []string{"whatsapp"}},
	{Name: "Discord", Domain: "discord.com", Category: CategoryMessaging, Keywords: []string{"discord"}},

	{Name: "YouTube", Domain: "youtube.com", Category: CategoryVideo, Keywords: []string{"youtube", "yt"}},
	{Name: "Twitch", Domain: "twitch.tv", Category: CategoryVideo, Keywords: []string{"twitch"}},
	{Name: "Vimeo", Domain: "vimeo.com", Category: CategoryVideo, Keywords: []string{"vimeo"}},

	{Name: "Google Maps", Domain: "google.com/maps", Category: CategoryMaps, Keywords: []string{"google maps", "maps", "location", "directions"}},
	{Name: "OpenStreetMap", Domain: "openstreetmap.org", Category: CategoryMaps, Keywords: []string{"openstreetmap", "osm"}},

	{Name: "Amazon", Domain: "amazon.com", Category: CategoryShopping, Keywords: []string{"amazon"}},
	{Name: "eBay", Domain: "ebay.com", Category: CategoryShopping, Keywords: []string{"ebay"}},

	{Name: "BBC", Domain: "bbc.com", Category: CategoryNews, Keywords: []string{"bbc"}},
	{Name: "CNN", Domain: "cnn.com", Category: CategoryNews, Keywords: []string{"cnn"}},
	{Name: "Reuters", Domain: "reuters.com", Category: CategoryNews, Keywords: []string{"reuters"}},

	{Name: "Open Library", Domain: "openlibrary.org", Category: CategoryBooks, Keywords: []string{"book", "books", "read", "author", "novel"}},
	{Name: "Goodreads", Domain: "goodreads.com", Category: CategoryBooks, Keywords: []string{"goodreads"}},

	{Name: "arXiv", Domain: "arxiv.org", Category: CategoryAcademic, Keywords: []string{"arxiv", "paper", "research", "academic", "scientific"}},
	{Name: "PubMed", Domain: "pubmed.ncbi.nlm.nih.gov", Category: CategoryAcademic, Keywords: []string{"pubmed", "medical", "health"}},
}

var intentKeywords = []keywordSet{
	{Category: CategoryVideo, Keywords: []string{"video", "watch", "stream", "clip"}},
	{Category: CategoryMaps, Keywords: []string{"map", "location", "address", "directions", "near me"}},
	{Category: CategoryImages, Keywords: []string{"image", "photo", "picture", "pic"}},
	{Category: CategoryShopping, Keywords: []string{"buy", "price", "shop", "purchase"}},
	{Category: CategoryNews, Keywords: []string{"news", "latest", "breaking"}},
	{Category: CategoryBooks, Keywords: []string{"book", "author", "novel", "read", "literature"}},
	{Category: CategoryAcademic, Keywords: []string{"research", "paper", "study", "scientific", "academic"}},
}

type Detection struct {
	Platforms  []Platform
	Categories []string
}

func (d Detection) Has(category string) bool {
	for _, c := range d.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Detect matches keywords as case-insensitive substrings, so "ig" also
// matches inside longer words.
func Detect(query string) Detection {
	lower := strings.ToLower(query)

	var d Detection
	for _, p := range Platforms {
		if containsAny(lower, p.Keywords) {
			d.Platforms = append(d.Platforms, p)
			if !d.Has(p.Category) {
				d.Categories = append(d.Categories, p.Category)
			}
		}
	}

	for _, set := range intentKeywords {
		if containsAny(lower, set.Keywords) && !d.Has(set.Category) {
			d.Categories = append(d.Categories, set.Category)
		}
	}

	return d
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// StripKeywords removes every case-insensitive occurrence of the keywords
// and trims the result. Inner whitespace is left as is.
func StripKeywords(query string, keywords []string) string {
	parts := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw != "" {
			parts = append(parts, regexp.QuoteMeta(kw))
		}
	}
	if len(parts) == 0 {
		return strings.TrimSpace(query)
	}
	re := regexp.MustCompile("(?i)" + strings.Join(parts, "|"))
	return strings.TrimSpace(re.ReplaceAllString(query, ""))
}
