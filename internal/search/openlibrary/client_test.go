package openlibrary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search.json" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "8" {
			t.Errorf("limit = %q", r.URL.Query().Get("limit"))
		}
		w.Write([]byte(`{"docs":[
			{"key":"/works/OL1W","title":"Dune","author_name":["Frank Herbert"],"first_publish_year":1965,"cover_i":42},
			{"key":"/works/OL2W","title":"Anonymous Tales"},
			{"key":"","title":"no key"}
		]}`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL}, zap.NewNop())
	results, err := client.Search(context.Background(), "dune book", 0)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	tests := []struct {
		idx       int
		url       string
		desc      string
		thumbnail string
	}{
		{idx: 0, url: "https://openlibrary.org/works/OL1W", desc: "Frank Herbert (1965)", thumbnail: "https://covers.openlibrary.org/b/id/42-M.jpg"},
		{idx: 1, url: "https://openlibrary.org/works/OL2W", desc: "Unknown author", thumbnail: ""},
	}
	for _, tt := range tests {
		got := results[tt.idx]
		if got.URL != tt.url || got.Description != tt.desc || got.Thumbnail != tt.thumbnail {
			t.Errorf("results[%d] = %+v", tt.idx, got)
		}
		if got.Type != "book" {
			t.Errorf("results[%d].Type = %q", tt.idx, got.Type)
		}
	}
}
