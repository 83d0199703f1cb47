package intent

import (
	"reflect"
	"strings"
	"testing"

	"github.com/kitbuilder587/searchportal/internal/domain"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		wantPlatforms  []string
		wantCategories []string
	}{
		{
			name:           "platform and intent together",
			query:          "YouTube video cats",
			wantPlatforms:  []string{"YouTube"},
			wantCategories: []string{CategoryVideo},
		},
		{
			name:           "books pulls open library",
			query:          "best novel of 2020",
			wantPlatforms:  []string{"Open Library"},
			wantCategories: []string{CategoryBooks},
		},
		{
			name:           "academic keywords",
			query:          "scientific paper on sleep",
			wantPlatforms:  []string{"arXiv"},
			wantCategories: []string{CategoryAcademic},
		},
		{
			name:           "multiple categories",
			query:          "buy camera near me",
			wantCategories: []string{CategoryMaps, CategoryShopping},
		},
		{
			name:  "nothing",
			query: "octopus",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Detect(tt.query)

			var names []string
			for _, p := range d.Platforms {
				names = append(names, p.Name)
			}
			if !reflect.DeepEqual(names, tt.wantPlatforms) {
				t.Errorf("platforms = %v, want %v", names, tt.wantPlatforms)
			}
			if !reflect.DeepEqual(d.Categories, tt.wantCategories) {
				t.Errorf("categories = %v, want %v", d.Categories, tt.wantCategories)
			}
		})
	}
}

func TestDetect_CaseInsensitive(t *testing.T) {
	d := Detect("REDDIT Golang")
	if len(d.Platforms) != 1 || d.Platforms[0].Name != "Reddit" {
		t.Fatalf("platforms = %+v", d.Platforms)
	}
	if !d.Has(CategorySocial) {
		t.Errorf("categories = %v, want social", d.Categories)
	}
}

func TestStripKeywords(t *testing.T) {
	tests := []struct {
		query    string
		keywords []string
		want     string
	}{
		{"YouTube cats", []string{"youtube", "yt"}, "cats"},
		{"youtube", []string{"youtube", "yt"}, ""},
		{"Map of Paris", []string{"map", "location"}, "of Paris"},
		{"a.b c", []string{"."}, "ab c"},
		{"  plain  ", nil, "plain"},
	}

	for _, tt := range tests {
		if got := StripKeywords(tt.query, tt.keywords); got != tt.want {
			t.Errorf("StripKeywords(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestPlatformResults(t *testing.T) {
	query := "youtube cooking video"
	results := PlatformResults(query, Detect(query))

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(results), results)
	}

	platform := results[0]
	if platform.Title != "YouTube - cooking video" {
		t.Errorf("title = %q", platform.Title)
	}
	if platform.URL != "https://youtube.com/search?q=cooking+video" {
		t.Errorf("url = %q", platform.URL)
	}
	if platform.Type != domain.TypePlatform {
		t.Errorf("type = %q", platform.Type)
	}

	video := results[1]
	if video.Type != domain.TypeVideo || !strings.HasPrefix(video.URL, "https://www.youtube.com/results?search_query=") {
		t.Errorf("video result = %+v", video)
	}
	if video.Title != "youtube cooking - YouTube" {
		t.Errorf("video title = %q", video.Title)
	}
}

func TestPlatformResults_HomeLink(t *testing.T) {
	results := PlatformResults("reddit", Detect("reddit"))
	if len(results) != 1 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Title != "Reddit - Home" || results[0].URL != "https://reddit.com" {
		t.Errorf("result = %+v", results[0])
	}
	if results[0].Description != `Search "reddit" on Reddit.` {
		t.Errorf("description = %q", results[0].Description)
	}
}

func TestPlatformResults_Maps(t *testing.T) {
	results := PlatformResults("cafe near me", Detect("cafe near me"))
	if len(results) != 1 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].URL != "https://www.google.com/maps/search/cafe" || results[0].Type != domain.TypeMap {
		t.Errorf("maps result = %+v", results[0])
	}
}
