package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/domain"
	"github.com/kitbuilder587/searchportal/internal/metrics"
	"github.com/kitbuilder587/searchportal/internal/search"
)

const shoppingSuffix = " buy price shop product store"

var (
	pricePattern   = regexp.MustCompile(`(?i)\$[\d,]+(?:\.\d{2})?|\d+(?:,\d{3})*(?:\.\d{2})?\s*(?:USD|dollars?)`)
	ratingPattern  = regexp.MustCompile(`(?i)(\d(?:\.\d)?)\s*(?:out of 5|/5|stars?)`)
	reviewsPattern = regexp.MustCompile(`(?i)(\d+(?:,\d{3})*)\s*(?:reviews?|ratings?)`)
)

// stores is checked in order; the first domain match names the badge.
var stores = []struct {
	needle string
	name   string
}{
	{"amazon", "Amazon"},
	{"ebay", "eBay"},
	{"walmart", "Walmart"},
	{"target", "Target"},
	{"bestbuy", "Best Buy"},
}

type ShoppingServiceDeps struct {
	Search  search.SearchClient
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

type ShoppingService struct {
	search  search.SearchClient
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewShoppingService(deps ShoppingServiceDeps) *ShoppingService {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &ShoppingService{search: deps.Search, metrics: deps.Metrics, logger: deps.Logger}
}

func (s *ShoppingService) Search(ctx context.Context, req domain.ShoppingSearchRequest) (*ShoppingSearchResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.search == nil {
		return nil, fmt.Errorf("%w: shopping", ErrNotConfigured)
	}

	start := time.Now()
	resp, err := s.search.Search(ctx, search.SearchRequest{
		Query:   req.Query + shoppingSuffix,
		Limit:   domain.ClampLimit(req.Options.Limit, domain.DefaultShoppingLimit, domain.MaxVerticalLimit),
		Lang:    req.Options.Lang,
		Formats: []string{"markdown", "links"},
	})
	if s.metrics != nil {
		outcome := metrics.OutcomeOK
		if err != nil {
			outcome = metrics.OutcomeError
		} else if len(resp.Results) == 0 {
			outcome = metrics.OutcomeEmpty
		}
		s.metrics.RecordSourceRequest("firecrawl", outcome, time.Since(start))
	}
	if err != nil {
		if errors.Is(err, search.ErrNotConfigured) {
			return nil, fmt.Errorf("%w: shopping", ErrNotConfigured)
		}
		return nil, fmt.Errorf("shopping search failed: %w", err)
	}

	products := make([]domain.Product, 0, len(resp.Results))
	for i, doc := range resp.Results {
		products = append(products, ParseProduct(i, doc))
	}

	s.logger.Info("shopping search completed", zap.String("query", req.Query), zap.Int("products", len(products)))

	return &ShoppingSearchResponse{
		Success:      true,
		Products:     products,
		TotalResults: len(products),
		Query:        req.Query,
	}, nil
}

// ParseProduct extracts what the scraped page states about the product.
// Missing price, rating and review count stay at their empty values.
func ParseProduct(i int, doc search.Document) domain.Product {
	title := doc.DisplayTitle()
	if title == "" {
		title = "Product"
	}
	description := doc.DisplayDescription()
	host := domain.Hostname(doc.URL)

	text := doc.Markdown
	if text == "" {
		text = description
	}
	lower := strings.ToLower(doc.Markdown + " " + description)

	price := pricePattern.FindString(text)
	if price == "" {
		price = domain.PriceNotAvailable
	}

	var rating float64
	if m := ratingPattern.FindStringSubmatch(doc.Markdown); m != nil {
		rating, _ = strconv.ParseFloat(m[1], 64)
		rating = min(max(rating, 0), 5)
	}

	var reviews int
	if m := reviewsPattern.FindStringSubmatch(doc.Markdown); m != nil {
		reviews, _ = strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	}

	store := storeBadge(host)

	image := doc.Metadata.OGImage
	if image == "" {
		image = doc.Screenshot
	}
	if image == "" {
		image = fmt.Sprintf("https://picsum.photos/seed/%d/400/400", i)
	}

	return domain.Product{
		ID:           fmt.Sprintf("product-%d", i),
		Title:        domain.Truncate(title, 100),
		Description:  domain.Truncate(description, 200),
		Price:        price,
		Rating:       rating,
		Reviews:      reviews,
		URL:          doc.URL,
		Domain:       host,
		Image:        image,
		Store:        store,
		FreeShipping: strings.Contains(lower, "free shipping") || strings.Contains(lower, "free delivery"),
		InStock:      !strings.Contains(lower, "out of stock") && !strings.Contains(lower, "sold out") && !strings.Contains(lower, "currently unavailable"),
		Prime:        store == "Amazon" && strings.Contains(lower, "prime"),
	}
}

func storeBadge(host string) string {
	for _, s := range stores {
		if strings.Contains(host, s.needle) {
			return s.name
		}
	}
	return ""
}
