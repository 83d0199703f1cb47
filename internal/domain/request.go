package domain

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const MaxQueryLength = 1000

type SearchMode string

const (
	ModeWeb SearchMode = "web"
	ModeAI  SearchMode = "ai"
)

// FilterAcademic switches web search to the scholarly source set.
const FilterAcademic = "academic"

// Per-endpoint result budgets.
const (
	WebResultBudget      = 50
	AcademicResultBudget = 30
	DefaultVideoLimit    = 20
	DefaultNewsLimit     = 15
	DefaultImageLimit    = 20
	DefaultShoppingLimit = 30
	MaxVerticalLimit     = 30
	DefaultSuggestLimit  = 8
)

type SearchOptions struct {
	Limit    int    `json:"limit,omitempty"`
	Lang     string `json:"lang,omitempty"`
	Country  string `json:"country,omitempty"`
	TBS      string `json:"tbs,omitempty"`
	Domain   string `json:"domain,omitempty"`
	FileType string `json:"fileType,omitempty"`
	Filter   string `json:"filter,omitempty"`
}

func (o *SearchOptions) validate() error {
	return wrapValidation(validation.ValidateStruct(o,
		validation.Field(&o.Limit, validation.Min(0)),
	))
}

type WebSearchRequest struct {
	Query   string        `json:"query"`
	Mode    SearchMode    `json:"mode,omitempty"`
	Options SearchOptions `json:"options,omitempty"`
}

func (r *WebSearchRequest) Validate() error {
	if err := validateQuery(r.Query); err != nil {
		return err
	}
	if err := wrapValidation(validation.ValidateStruct(r,
		validation.Field(&r.Mode, validation.In(ModeWeb, ModeAI)),
	)); err != nil {
		return err
	}
	return r.Options.validate()
}

func (r *WebSearchRequest) Academic() bool {
	return strings.EqualFold(r.Options.Filter, FilterAcademic)
}

type AcademicSearchRequest struct {
	Query    string `json:"query"`
	Category string `json:"category,omitempty"`
	SortBy   SortBy `json:"sortBy,omitempty"`
}

func (r *AcademicSearchRequest) Validate() error {
	if err := validateQuery(r.Query); err != nil {
		return err
	}
	return wrapValidation(validation.ValidateStruct(r,
		validation.Field(&r.SortBy, validation.In(SortRelevance, SortDate, SortCitations)),
	))
}

type VideoSearchRequest struct {
	Query   string        `json:"query"`
	Options SearchOptions `json:"options,omitempty"`
}

func (r *VideoSearchRequest) Validate() error {
	if err := validateQuery(r.Query); err != nil {
		return err
	}
	return r.Options.validate()
}

// NewsSearchRequest accepts an empty query; the service falls back to
// a generic "latest news" search.
type NewsSearchRequest struct {
	Query    string        `json:"query,omitempty"`
	Category string        `json:"category,omitempty"`
	Options  SearchOptions `json:"options,omitempty"`
}

func (r *NewsSearchRequest) Validate() error {
	if len(r.Query) > MaxQueryLength {
		return ErrQueryTooLong
	}
	return r.Options.validate()
}

type ImageSearchRequest struct {
	Query   string        `json:"query"`
	Options SearchOptions `json:"options,omitempty"`
}

func (r *ImageSearchRequest) Validate() error {
	if err := validateQuery(r.Query); err != nil {
		return err
	}
	return r.Options.validate()
}

type ShoppingSearchRequest struct {
	Query   string        `json:"query"`
	Options SearchOptions `json:"options,omitempty"`
}

func (r *ShoppingSearchRequest) Validate() error {
	if err := validateQuery(r.Query); err != nil {
		return err
	}
	return r.Options.validate()
}

// AutocompleteRequest allows an empty query, which yields trending
// suggestions.
type AutocompleteRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

func (r *AutocompleteRequest) Validate() error {
	if len(r.Query) > MaxQueryLength {
		return ErrQueryTooLong
	}
	return wrapValidation(validation.ValidateStruct(r,
		validation.Field(&r.Limit, validation.Min(0)),
	))
}

// ClampLimit applies the default for a zero limit and caps the rest.
func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

func validateQuery(q string) error {
	if strings.TrimSpace(q) == "" {
		return ErrEmptyQuery
	}
	if len(q) > MaxQueryLength {
		return ErrQueryTooLong
	}
	return nil
}

func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
}
