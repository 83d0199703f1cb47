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

type Wikidata struct {
	base
}

func NewWikidata(cfg Config, logger *zap.Logger) *Wikidata {
	return &Wikidata{base: newBase(cfg, wikidataSite, logger)}
}

type entitySearchResponse struct {
	Search []struct {
		ID          string `json:"id"`
		Label       string `json:"label"`
		Description string `json:"description"`
		ConceptURI  string `json:"concepturi"`
	} `json:"search"`
}

func (w *Wikidata) Entities(ctx context.Context, query string, limit int) ([]domain.WikidataEntity, error) {
	if limit <= 0 {
		limit = 5
	}

	params := url.Values{}
	params.Set("action", "wbsearchentities")
	params.Set("search", query)
	params.Set("language", "en")
	params.Set("limit", strconv.Itoa(limit))

	var resp entitySearchResponse
	if err := search.GetJSON(ctx, w.client, w.apiURL(params), w.userAgent, &resp); err != nil {
		return nil, fmt.Errorf("wikidata search: %w", err)
	}

	entities := make([]domain.WikidataEntity, 0, len(resp.Search))
	for _, item := range resp.Search {
		if item.Label == "" {
			continue
		}
		entityURL := item.ConceptURI
		if entityURL == "" {
			entityURL = wikidataSite + "/wiki/" + item.ID
		}
		entities = append(entities, domain.WikidataEntity{
			ID:          item.ID,
			Label:       item.Label,
			Description: item.Description,
			URL:         entityURL,
		})
	}

	return entities, nil
}
