// Package arxiv queries the arXiv export API and parses its Atom feed.
package arxiv

import (
	"context"
	"encoding/xml"
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

const maxCategories = 5

// categoryFilters maps portal categories to arXiv subject classes.
var categoryFilters = map[string]string{
	"cs":           "cat:cs.*",
	"physics":      "cat:physics.*",
	"biology":      "cat:q-bio.*",
	"medicine":     "cat:q-bio.*",
	"neuroscience": "cat:q-bio.NC",
	"chemistry":    "cat:physics.chem-ph",
}

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
		cfg.BaseURL = "https://export.arxiv.org"
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

type feed struct {
	Entries []entry `xml:"entry"`
}

type entry struct {
	ID        string `xml:"id"`
	Title     string `xml:"title"`
	Summary   string `xml:"summary"`
	Published string `xml:"published"`
	DOI       string `xml:"http://arxiv.org/schemas/atom doi"`
	Authors   []struct {
		Name string `xml:"name"`
	} `xml:"author"`
	Categories []struct {
		Term string `xml:"term,attr"`
	} `xml:"category"`
}

// Papers searches all fields, optionally narrowed to a portal category.
// Unknown categories are ignored.
func (c *Client) Papers(ctx context.Context, query, category string, limit int) ([]domain.AcademicPaper, error) {
	if limit <= 0 {
		limit = 20
	}

	searchQuery := "all:" + query
	if filter, ok := categoryFilters[category]; ok {
		searchQuery += " AND " + filter
	}

	params := url.Values{}
	params.Set("search_query", searchQuery)
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(limit))
	params.Set("sortBy", "relevance")

	body, err := search.Get(ctx, c.client, c.baseURL+"/api/query?"+params.Encode(), c.userAgent)
	if err != nil {
		return nil, fmt.Errorf("arxiv query: %w", err)
	}

	var f feed
	if err := xml.Unmarshal(body, &f); err != nil {
		return nil, fmt.Errorf("arxiv decode: %w", err)
	}

	papers := make([]domain.AcademicPaper, 0, len(f.Entries))
	for _, e := range f.Entries {
		if p, ok := toPaper(e); ok {
			papers = append(papers, p)
		}
	}

	return papers, nil
}

func toPaper(e entry) (domain.AcademicPaper, bool) {
	id := strings.TrimSpace(e.ID)
	title := search.CollapseSpace(e.Title)
	if id == "" || title == "" {
		return domain.AcademicPaper{}, false
	}

	arxivID := id
	if _, after, ok := strings.Cut(id, "/abs/"); ok {
		arxivID = after
	} else if i := strings.LastIndex(id, "/"); i >= 0 {
		arxivID = id[i+1:]
	}

	authors := make([]string, 0, len(e.Authors))
	for _, a := range e.Authors {
		if name := strings.TrimSpace(a.Name); name != "" {
			authors = append(authors, name)
		}
	}

	categories := make([]string, 0, maxCategories)
	for _, cat := range e.Categories {
		if len(categories) == maxCategories {
			break
		}
		if cat.Term != "" {
			categories = append(categories, cat.Term)
		}
	}

	return domain.AcademicPaper{
		ID:            "arxiv-" + arxivID,
		Title:         title,
		Authors:       authors,
		Abstract:      search.CollapseSpace(e.Summary),
		PublishedDate: strings.TrimSpace(e.Published),
		Source:        domain.PaperSourceArxiv,
		URL:           id,
		PDFURL:        strings.Replace(id, "/abs/", "/pdf/", 1) + ".pdf",
		Categories:    categories,
		DOI:           strings.TrimSpace(e.DOI),
	}, true
}

// Search returns papers as web results with an "authors • date • categories"
// description line.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.SearchResult, error) {
	papers, err := c.Papers(ctx, query, "", limit)
	if err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, 0, len(papers))
	for _, p := range papers {
		results = append(results, WebResult(p))
	}
	return results, nil
}

func WebResult(p domain.AcademicPaper) domain.SearchResult {
	var meta []string
	if len(p.Authors) > 0 {
		meta = append(meta, "By "+strings.Join(firstN(p.Authors, 3), ", "))
	}
	if len(p.PublishedDate) >= 10 {
		meta = append(meta, p.PublishedDate[:10])
	}
	if len(p.Categories) > 0 {
		meta = append(meta, strings.Join(firstN(p.Categories, 2), ", "))
	}

	desc := strings.Join(meta, " • ")
	if p.Abstract != "" {
		desc = strings.TrimPrefix(desc+". "+domain.Truncate(p.Abstract, 200)+"...", ". ")
	}

	return domain.NewResult(p.Title, p.URL, desc, domain.TypeAcademic)
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
