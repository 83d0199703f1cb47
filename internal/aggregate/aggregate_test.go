package aggregate

import (
	"reflect"
	"strings"
	"testing"

	"github.com/kitbuilder587/searchportal/internal/domain"
)

func TestInterleave(t *testing.T) {
	tests := []struct {
		name  string
		lists [][]string
		want  []string
	}{
		{
			name:  "shorter list exhausted early",
			lists: [][]string{{"a1", "a2", "a3"}, {"b1"}},
			want:  []string{"a1", "b1", "a2", "a3"},
		},
		{
			name:  "three lists",
			lists: [][]string{{"a1", "a2"}, {}, {"c1", "c2", "c3"}},
			want:  []string{"a1", "c1", "a2", "c2", "c3"},
		},
		{
			name:  "no lists",
			lists: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interleave(tt.lists...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Interleave() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDedupeResults_FirstWins(t *testing.T) {
	results := []domain.SearchResult{
		{Title: "from wikipedia", URL: "https://en.wikipedia.org/wiki/Go"},
		{Title: "from ddg", URL: "https://go.dev"},
		{Title: "dup", URL: "https://en.wikipedia.org/wiki/Go"},
		{Title: "no url"},
	}

	got := DedupeResults(results)
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].Title != "from wikipedia" {
		t.Errorf("first = %q, want higher-priority entry", got[0].Title)
	}

	seen := map[string]bool{}
	for _, r := range got {
		if seen[r.URL] {
			t.Errorf("duplicate url %q", r.URL)
		}
		seen[r.URL] = true
	}
}

func TestTruncate(t *testing.T) {
	items := []int{1, 2, 3}
	if got := Truncate(items, 2); len(got) != 2 {
		t.Errorf("Truncate(2) len = %d", len(got))
	}
	if got := Truncate(items, 5); len(got) != 3 {
		t.Errorf("Truncate(5) len = %d", len(got))
	}
}

func TestSources(t *testing.T) {
	results := []domain.SearchResult{
		{Title: "A", URL: "https://www.example.com/a"},
		{Title: "B", URL: "https://go.dev/b"},
		{Title: "C", URL: "https://c.org"},
	}

	got := Sources(results, 2)
	want := []domain.Source{
		{Title: "A", URL: "https://www.example.com/a", Domain: "example.com"},
		{Title: "B", URL: "https://go.dev/b", Domain: "go.dev"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sources() = %+v, want %+v", got, want)
	}
}

func TestTrendingWords(t *testing.T) {
	titles := []string{
		"Markets rally after election",
		"Election results delayed",
		"Storms hit coast, markets calm",
		"Tech stocks rally",
	}

	got := TrendingWords(titles, 3)
	want := []string{"Markets", "Rally", "Election"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TrendingWords() = %v, want %v", got, want)
	}
}

func TestTrendingWords_SkipsShortWords(t *testing.T) {
	got := TrendingWords([]string{"the big cat ran far"}, 6)
	if len(got) != 0 {
		t.Errorf("TrendingWords() = %v, want none", got)
	}
}

func TestWebSearchLinks(t *testing.T) {
	links := WebSearchLinks("go lang")
	if len(links) != 4 {
		t.Fatalf("got %d links", len(links))
	}
	if links[0].URL != "https://www.google.com/search?q=go+lang" {
		t.Errorf("google url = %q", links[0].URL)
	}
	for _, l := range links {
		if !strings.HasPrefix(l.Title, "go lang - ") {
			t.Errorf("title = %q", l.Title)
		}
		if l.Favicon == "" {
			t.Errorf("missing favicon for %q", l.Title)
		}
	}
}

func TestRelatedSearches(t *testing.T) {
	got := RelatedSearches("rust", 2026)
	if len(got) != 8 {
		t.Fatalf("got %d related searches", len(got))
	}
	if got[2] != "what is rust" || got[7] != "rust 2026" {
		t.Errorf("related = %v", got)
	}
	if len(RelatedTopics("rust")) != 4 || len(AcademicRelatedSearches("rust")) != 4 {
		t.Error("academic templates should have 4 entries")
	}
}
