package domain

import (
	"sort"
	"strings"
	"time"
)

const (
	PaperSourceArxiv  = "arxiv"
	PaperSourcePubMed = "pubmed"
)

type AcademicPaper struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Abstract      string   `json:"abstract"`
	PublishedDate string   `json:"publishedDate"`
	Source        string   `json:"source"`
	URL           string   `json:"url"`
	PDFURL        string   `json:"pdfUrl,omitempty"`
	Citations     int      `json:"citations,omitempty"`
	Categories    []string `json:"categories,omitempty"`
	DOI           string   `json:"doi,omitempty"`
	Journal       string   `json:"journal,omitempty"`
}

type SortBy string

const (
	SortRelevance SortBy = "relevance"
	SortDate      SortBy = "date"
	SortCitations SortBy = "citations"
)

func (s SortBy) IsValid() bool {
	switch s {
	case "", SortRelevance, SortDate, SortCitations:
		return true
	}
	return false
}

// PaperTime parses the published date formats used by arXiv and PubMed.
// The second return value is false when the date is missing or unknown.
func PaperTime(published string) (time.Time, bool) {
	published = strings.TrimSpace(published)
	if published == "" {
		return time.Time{}, false
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006 Jan 2",
		"2006 Jan",
		"2006 January 2",
		"2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, published); err == nil {
			return t, true
		}
	}
	// PubMed season and range dates ("2023 Spring", "2023 Jan-Feb")
	if fields := strings.Fields(published); len(fields) > 1 {
		if t, err := time.Parse("2006", fields[0]); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SortPapers orders papers in place. Relevance keeps the incoming order.
// Papers with a missing date or citation count go last, ties keep their
// relative order.
func SortPapers(papers []AcademicPaper, by SortBy) {
	switch by {
	case SortDate:
		sort.SliceStable(papers, func(i, j int) bool {
			ti, okI := PaperTime(papers[i].PublishedDate)
			tj, okJ := PaperTime(papers[j].PublishedDate)
			if okI != okJ {
				return okI
			}
			return ti.After(tj)
		})
	case SortCitations:
		sort.SliceStable(papers, func(i, j int) bool {
			return papers[i].Citations > papers[j].Citations
		})
	}
}
