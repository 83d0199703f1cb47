// Package pubmed queries NCBI E-utilities: esearch for ids, esummary for
// metadata and efetch for abstracts.
package pubmed

import (
	"bytes"
	"context"
	"encoding/json"
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

// meshSuffixes narrows searches to MeSH headings per portal category.
var meshSuffixes = map[string]string{
	"medicine":     "[mesh]",
	"biology":      "biology[mesh]",
	"neuroscience": "neuroscience[mesh]",
	"chemistry":    "chemistry[mesh]",
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
		cfg.BaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
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

type esearchResponse struct {
	Result struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type summary struct {
	Title   string `json:"title"`
	PubDate string `json:"pubdate"`
	Source  string `json:"source"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	ArticleIDs []struct {
		IDType string `json:"idtype"`
		Value  string `json:"value"`
	} `json:"articleids"`
	PMCRefCount count `json:"pmcrefcount"`
}

func (s summary) articleID(idType string) string {
	for _, aid := range s.ArticleIDs {
		if aid.IDType == idType {
			return aid.Value
		}
	}
	return ""
}

// count accepts both numbers and the empty string esummary uses for zero.
type count int

func (c *count) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || string(data) == "null" {
		*c = 0
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		*c = 0
		return nil
	}
	*c = count(n)
	return nil
}

type esummaryResponse struct {
	// Result maps each uid to its summary; it also carries a "uids" list.
	Result map[string]json.RawMessage `json:"result"`
}

type articleSet struct {
	Articles []struct {
		PMID     string `xml:"MedlineCitation>PMID"`
		Abstract []struct {
			Text string `xml:",innerxml"`
		} `xml:"MedlineCitation>Article>Abstract>AbstractText"`
	} `xml:"PubmedArticle"`
}

// Papers runs esearch, esummary and efetch in sequence. A failed efetch
// leaves abstracts empty instead of failing the search.
func (c *Client) Papers(ctx context.Context, query, category string, limit int) ([]domain.AcademicPaper, error) {
	if limit <= 0 {
		limit = 20
	}

	term := query
	if suffix, ok := meshSuffixes[category]; ok {
		term = query + " " + suffix
	}

	ids, err := c.search(ctx, term, limit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	summaries, err := c.summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	abstracts, err := c.abstracts(ctx, ids)
	if err != nil {
		c.logger.Warn("pubmed abstracts unavailable", zap.Error(err))
	}

	papers := make([]domain.AcademicPaper, 0, len(ids))
	for _, id := range ids {
		s, ok := summaries[id]
		if !ok {
			continue
		}
		title := search.StripTags(s.Title)
		if title == "" {
			continue
		}

		authors := make([]string, 0, len(s.Authors))
		for _, a := range s.Authors {
			if a.Name != "" {
				authors = append(authors, a.Name)
			}
		}

		p := domain.AcademicPaper{
			ID:            "pubmed-" + id,
			Title:         title,
			Authors:       authors,
			Abstract:      abstracts[id],
			URL:           "https://pubmed.ncbi.nlm.nih.gov/" + id + "/",
			Source:        domain.PaperSourcePubMed,
			PublishedDate: s.PubDate,
			Journal:       s.Source,
			DOI:           s.articleID("doi"),
			Citations:     int(s.PMCRefCount),
		}
		if pmc := s.articleID("pmc"); pmc != "" {
			p.PDFURL = "https://www.ncbi.nlm.nih.gov/pmc/articles/" + pmc + "/pdf/"
		}
		papers = append(papers, p)
	}

	return papers, nil
}

func (c *Client) search(ctx context.Context, term string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", term)
	params.Set("retmax", strconv.Itoa(limit))
	params.Set("retmode", "json")
	params.Set("sort", "relevance")

	var resp esearchResponse
	if err := search.GetJSON(ctx, c.client, c.baseURL+"/esearch.fcgi?"+params.Encode(), c.userAgent, &resp); err != nil {
		return nil, fmt.Errorf("pubmed esearch: %w", err)
	}
	return resp.Result.IDList, nil
}

func (c *Client) summaries(ctx context.Context, ids []string) (map[string]summary, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "json")

	var resp esummaryResponse
	if err := search.GetJSON(ctx, c.client, c.baseURL+"/esummary.fcgi?"+params.Encode(), c.userAgent, &resp); err != nil {
		return nil, fmt.Errorf("pubmed esummary: %w", err)
	}

	out := make(map[string]summary, len(ids))
	for _, id := range ids {
		raw, ok := resp.Result[id]
		if !ok {
			continue
		}
		var s summary
		if err := json.Unmarshal(raw, &s); err != nil {
			c.logger.Debug("pubmed summary skipped", zap.String("id", id), zap.Error(err))
			continue
		}
		out[id] = s
	}
	return out, nil
}

func (c *Client) abstracts(ctx context.Context, ids []string) (map[string]string, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", strings.Join(ids, ","))
	params.Set("rettype", "abstract")
	params.Set("retmode", "xml")

	body, err := search.Get(ctx, c.client, c.baseURL+"/efetch.fcgi?"+params.Encode(), c.userAgent)
	if err != nil {
		return nil, fmt.Errorf("pubmed efetch: %w", err)
	}

	var set articleSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("pubmed efetch decode: %w", err)
	}

	out := make(map[string]string, len(set.Articles))
	for _, a := range set.Articles {
		pmid := strings.TrimSpace(a.PMID)
		if pmid == "" || len(a.Abstract) == 0 {
			continue
		}
		out[pmid] = search.StripTags(a.Abstract[0].Text)
	}
	return out, nil
}

// Search returns papers as web results with an "authors • date • journal"
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
		authors := p.Authors
		if len(authors) > 3 {
			authors = authors[:3]
		}
		meta = append(meta, "By "+strings.Join(authors, ", "))
	}
	if p.PublishedDate != "" {
		meta = append(meta, p.PublishedDate)
	}
	if p.Journal != "" {
		meta = append(meta, p.Journal)
	}
	return domain.NewResult(p.Title, p.URL, strings.Join(meta, " • "), domain.TypeAcademic)
}
