package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestWebSearchRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     WebSearchRequest
		wantErr error
	}{
		{name: "valid web", req: WebSearchRequest{Query: "golang", Mode: ModeWeb}},
		{name: "valid ai", req: WebSearchRequest{Query: "golang", Mode: ModeAI}},
		{name: "mode omitted", req: WebSearchRequest{Query: "golang"}},
		{name: "empty query", req: WebSearchRequest{Query: ""}, wantErr: ErrEmptyQuery},
		{name: "whitespace query", req: WebSearchRequest{Query: "   \t"}, wantErr: ErrEmptyQuery},
		{name: "too long", req: WebSearchRequest{Query: strings.Repeat("a", MaxQueryLength+1)}, wantErr: ErrQueryTooLong},
		{name: "unknown mode", req: WebSearchRequest{Query: "go", Mode: "turbo"}, wantErr: ErrInvalidRequest},
		{name: "negative limit", req: WebSearchRequest{Query: "go", Options: SearchOptions{Limit: -1}}, wantErr: ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEmptyQueryMessage(t *testing.T) {
	if ErrEmptyQuery.Error() != "Query is required" {
		t.Errorf("ErrEmptyQuery = %q", ErrEmptyQuery.Error())
	}
}

func TestAcademicSearchRequest_Validate(t *testing.T) {
	ok := AcademicSearchRequest{Query: "crispr", Category: "biology", SortBy: SortDate}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	bad := AcademicSearchRequest{Query: "crispr", SortBy: "popularity"}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("Validate() error = %v, want ErrInvalidRequest", err)
	}
}

func TestNewsSearchRequest_AllowsEmptyQuery(t *testing.T) {
	req := NewsSearchRequest{}
	if err := req.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestVerticalRequests_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     interface{ Validate() error }
		wantErr error
	}{
		{name: "video ok", req: &VideoSearchRequest{Query: "cats", Options: SearchOptions{Limit: 10}}},
		{name: "video empty", req: &VideoSearchRequest{}, wantErr: ErrEmptyQuery},
		{name: "image negative limit", req: &ImageSearchRequest{Query: "sky", Options: SearchOptions{Limit: -5}}, wantErr: ErrInvalidRequest},
		{name: "shopping empty", req: &ShoppingSearchRequest{Query: " "}, wantErr: ErrEmptyQuery},
		{name: "autocomplete empty ok", req: &AutocompleteRequest{}},
		{name: "autocomplete too long", req: &AutocompleteRequest{Query: strings.Repeat("q", MaxQueryLength+1)}, wantErr: ErrQueryTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		limit, def, max, want int
	}{
		{limit: 0, def: 20, max: 30, want: 20},
		{limit: -1, def: 20, max: 30, want: 20},
		{limit: 10, def: 20, max: 30, want: 10},
		{limit: 100, def: 20, max: 30, want: 30},
	}

	for _, tt := range tests {
		if got := ClampLimit(tt.limit, tt.def, tt.max); got != tt.want {
			t.Errorf("ClampLimit(%d, %d, %d) = %d, want %d", tt.limit, tt.def, tt.max, got, tt.want)
		}
	}
}

func TestReadingItem_Validate(t *testing.T) {
	item := ReadingItemFromPaper("user-1", AcademicPaper{
		ID:     "arxiv-2301.00001",
		Title:  "A paper",
		URL:    "https://arxiv.org/abs/2301.00001",
		Source: PaperSourceArxiv,
	})
	if err := item.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	item.UserID = ""
	if err := item.Validate(); !errors.Is(err, ErrMissingUserID) {
		t.Errorf("Validate() error = %v, want ErrMissingUserID", err)
	}

	item.UserID = "user-1"
	item.HighlightColor = "orange"
	if err := item.Validate(); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("Validate() error = %v, want ErrInvalidRequest", err)
	}
}

func TestSavedSearch_Normalize(t *testing.T) {
	s := SavedSearch{UserID: "u", Query: "rust lifetimes"}
	s.Normalize()
	if s.Name != "rust lifetimes" || s.Mode != ModeWeb {
		t.Errorf("Normalize() = %+v", s)
	}
}

func TestReadingUpdate_Validate(t *testing.T) {
	var empty ReadingUpdate
	if err := empty.Validate(); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("empty update error = %v", err)
	}

	color := "green"
	ok := ReadingUpdate{HighlightColor: &color}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
