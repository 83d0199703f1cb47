package domain

import "testing"

func TestPaperTime(t *testing.T) {
	tests := []struct {
		in     string
		wantOK bool
		year   int
	}{
		{in: "2023-06-01T12:00:00Z", wantOK: true, year: 2023},
		{in: "2021-03-04", wantOK: true, year: 2021},
		{in: "2020 Jan 15", wantOK: true, year: 2020},
		{in: "2019 Mar", wantOK: true, year: 2019},
		{in: "2018", wantOK: true, year: 2018},
		{in: "2017 Spring", wantOK: true, year: 2017},
		{in: "", wantOK: false},
		{in: "unknown", wantOK: false},
	}

	for _, tt := range tests {
		got, ok := PaperTime(tt.in)
		if ok != tt.wantOK {
			t.Errorf("PaperTime(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && got.Year() != tt.year {
			t.Errorf("PaperTime(%q) year = %d, want %d", tt.in, got.Year(), tt.year)
		}
	}
}

func TestSortPapers(t *testing.T) {
	base := func() []AcademicPaper {
		return []AcademicPaper{
			{ID: "a", PublishedDate: "2019-01-01", Citations: 5},
			{ID: "b", PublishedDate: "", Citations: 0},
			{ID: "c", PublishedDate: "2023 Jun", Citations: 50},
			{ID: "d", PublishedDate: "2021-05-05T00:00:00Z", Citations: 5},
		}
	}

	tests := []struct {
		name string
		by   SortBy
		want []string
	}{
		{name: "relevance keeps order", by: SortRelevance, want: []string{"a", "b", "c", "d"}},
		{name: "date newest first, missing last", by: SortDate, want: []string{"c", "d", "a", "b"}},
		{name: "citations desc, stable ties", by: SortCitations, want: []string{"c", "a", "d", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			papers := base()
			SortPapers(papers, tt.by)
			for i, id := range tt.want {
				if papers[i].ID != id {
					t.Fatalf("position %d = %s, want %s (got %v)", i, papers[i].ID, id, ids(papers))
				}
			}
		})
	}
}

func ids(papers []AcademicPaper) []string {
	out := make([]string, len(papers))
	for i, p := range papers {
		out[i] = p.ID
	}
	return out
}
