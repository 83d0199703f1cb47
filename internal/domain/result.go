package domain

// Result types attached to web results. They tell the client which
// upstream produced an item.
const (
	TypePlatform  = "platform"
	TypeOfficial  = "official"
	TypeRelated   = "related"
	TypeWikipedia = "wikipedia"
	TypeWikidata  = "wikidata"
	TypeBook      = "book"
	TypeAcademic  = "academic"
	TypeMedical   = "medical"
	TypeMedia     = "media"
	TypeArchive   = "archive"
	TypeSearch    = "search"
	TypeMap       = "map"
	TypeVideo     = "video"
	TypeImage     = "image"
	TypeSocial    = "social"
	TypeCode      = "code"
)

type SearchResult struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Favicon     string `json:"favicon,omitempty"`
	Type        string `json:"type,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

func (r SearchResult) Source() Source {
	return Source{
		Title:  r.Title,
		URL:    r.URL,
		Domain: Hostname(r.URL),
	}
}

// NewResult fills the favicon from the result URL host.
func NewResult(title, rawURL, description, resultType string) SearchResult {
	return SearchResult{
		Title:       title,
		URL:         rawURL,
		Description: description,
		Favicon:     FaviconURL(Hostname(rawURL)),
		Type:        resultType,
	}
}

type KnowledgePanel struct {
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	Thumbnail string `json:"thumbnail,omitempty"`
	URL       string `json:"url"`
}

type WikidataEntity struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

func (e WikidataEntity) Result() SearchResult {
	desc := e.Description
	if desc == "" {
		desc = "Wikidata entity " + e.ID
	}
	r := NewResult(e.Label, e.URL, desc, TypeWikidata)
	r.Favicon = FaviconURL("wikidata.org")
	return r
}

// InstantAnswer is the DuckDuckGo abstract together with the
// official and related links it returned.
type InstantAnswer struct {
	Abstract string
	Results  []SearchResult
}
