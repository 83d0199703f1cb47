package aggregate

import (
	"fmt"
	"net/url"

	"github.com/kitbuilder587/searchportal/internal/domain"
)

func link(title, rawURL, description, resultType, host string) domain.SearchResult {
	return domain.SearchResult{
		Title:       title,
		URL:         rawURL,
		Description: description,
		Favicon:     domain.FaviconURL(host),
		Type:        resultType,
	}
}

// WebSearchLinks is the fixed deep-link tail of a web search.
func WebSearchLinks(query string) []domain.SearchResult {
	q := url.QueryEscape(query)
	return []domain.SearchResult{
		link(query+" - Google", "https://www.google.com/search?q="+q,
			fmt.Sprintf("Search Google for \"%s\"", query), domain.TypeSearch, "google.com"),
		link(query+" - Reddit", "https://www.reddit.com/search/?q="+q,
			fmt.Sprintf("Discussions about \"%s\" on Reddit", query), domain.TypeSocial, "reddit.com"),
		link(query+" - GitHub", "https://github.com/search?q="+q,
			fmt.Sprintf("Code and projects for \"%s\"", query), domain.TypeCode, "github.com"),
		link(query+" - Stack Overflow", "https://stackoverflow.com/search?q="+q,
			fmt.Sprintf("Technical Q&A for \"%s\"", query), domain.TypeCode, "stackoverflow.com"),
	}
}

func AcademicSearchLinks(query string) []domain.SearchResult {
	q := url.QueryEscape(query)
	return []domain.SearchResult{
		link(query+" - Google Scholar", "https://scholar.google.com/scholar?q="+q,
			"Search academic papers on Google Scholar", domain.TypeSearch, "scholar.google.com"),
		link(query+" - Semantic Scholar", "https://www.semanticscholar.org/search?q="+q,
			"AI-powered research tool for scientific literature", domain.TypeSearch, "semanticscholar.org"),
		link(query+" - ResearchGate", "https://www.researchgate.net/search/publication?q="+q,
			"Find publications and connect with researchers", domain.TypeSearch, "researchgate.net"),
	}
}

func RelatedSearches(query string, year int) []string {
	return []string{
		query + " meaning",
		query + " examples",
		"what is " + query,
		query + " tutorial",
		query + " vs",
		query + " best",
		"how to " + query,
		fmt.Sprintf("%s %d", query, year),
	}
}

// AcademicRelatedSearches backs the web endpoint's academic filter.
func AcademicRelatedSearches(query string) []string {
	return []string{
		query + " systematic review",
		query + " meta-analysis",
		query + " recent research",
		query + " clinical trials",
	}
}

// RelatedTopics backs the academic endpoint.
func RelatedTopics(query string) []string {
	return []string{
		query + " review",
		query + " systematic review",
		query + " meta-analysis",
		query + " recent advances",
	}
}
