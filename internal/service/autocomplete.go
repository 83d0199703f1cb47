package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/kitbuilder587/searchportal/internal/aggregate"
	"github.com/kitbuilder587/searchportal/internal/domain"
)

const matchingTrendingMax = 3

var trendingSuggestions = []string{
	"artificial intelligence",
	"machine learning",
	"cryptocurrency prices",
	"climate change news",
	"space exploration",
	"renewable energy",
	"electric vehicles",
	"quantum computing",
	"blockchain technology",
	"cybersecurity tips",
	"health and wellness",
	"remote work tools",
	"sustainable living",
	"digital marketing",
	"programming tutorials",
}

type AutocompleteService struct {
	now Clock
}

func NewAutocompleteService(clock Clock) *AutocompleteService {
	if clock == nil {
		clock = time.Now
	}
	return &AutocompleteService{now: clock}
}

func (s *AutocompleteService) Suggest(_ context.Context, req domain.AutocompleteRequest) (*AutocompleteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit <= 0 {
		limit = domain.DefaultSuggestLimit
	}

	if req.Query == "" {
		return &AutocompleteResponse{
			Success:     true,
			Suggestions: aggregate.Truncate(append([]string(nil), trendingSuggestions...), limit),
			Type:        SuggestTrending,
		}, nil
	}

	q := req.Query
	lower := strings.ToLower(q)
	year := strconv.Itoa(s.now().Year())

	candidates := []string{
		q + " tutorial",
		q + " guide",
		q + " examples",
		q + " vs",
		q + " best practices",
		q + " how to",
		q + " " + year,
		q + " free",
		q + " online",
		q + " near me",
		"what is " + q,
		"how to " + q,
		"best " + q,
		q + " meaning",
		q + " definition",
		q + " price",
		q + " reviews",
		q + " download",
	}

	matching := aggregate.Truncate(filterContaining(candidates, lower), limit)
	trending := aggregate.Truncate(filterContaining(trendingSuggestions, lower), matchingTrendingMax)

	combined := append(matching, trending...)
	suggestions := aggregate.Truncate(aggregate.Dedupe(combined, func(s string) string { return s }), limit)

	return &AutocompleteResponse{
		Success:     true,
		Suggestions: suggestions,
		Type:        SuggestAutocomplete,
		Query:       q,
	}, nil
}

func filterContaining(items []string, lowerQuery string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if strings.Contains(strings.ToLower(s), lowerQuery) {
			out = append(out, s)
		}
	}
	return out
}
