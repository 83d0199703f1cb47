package mock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kitbuilder587/searchportal/internal/search"
)

func docs(n int) []search.Document {
	out := make([]search.Document, n)
	for i := range out {
		out[i] = search.Document{Title: "doc", URL: "https://example.com/" + string(rune('a'+i))}
	}
	return out
}

func TestClient_Search(t *testing.T) {
	tests := []struct {
		name      string
		client    *Client
		req       search.SearchRequest
		wantCount int
		wantErr   error
	}{
		{name: "all results", client: New().WithResults(docs(3)), req: search.SearchRequest{Query: "q"}, wantCount: 3},
		{name: "limit applied", client: New().WithResults(docs(5)), req: search.SearchRequest{Query: "q", Limit: 2}, wantCount: 2},
		{name: "empty", client: New(), req: search.SearchRequest{Query: "q"}, wantCount: 0},
		{name: "error", client: New().WithError(search.ErrRateLimit), req: search.SearchRequest{Query: "q"}, wantErr: search.ErrRateLimit},
		{
			name: "responder",
			client: New().WithResponder(func(req search.SearchRequest) ([]search.Document, error) {
				if req.TimeRange == "qdr:d" {
					return docs(1), nil
				}
				return nil, search.ErrInvalidRequest
			}),
			req:       search.SearchRequest{Query: "q", TimeRange: "qdr:d"},
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := tt.client.Search(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Search() error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(resp.Results) != tt.wantCount {
				t.Errorf("len(Results) = %d, want %d", len(resp.Results), tt.wantCount)
			}
			if tt.client.CallCount != 1 || tt.client.LastRequest.Query != tt.req.Query {
				t.Errorf("recorded calls = %d, last = %+v", tt.client.CallCount, tt.client.LastRequest)
			}
		})
	}
}

func TestClient_DelayHonoursContext(t *testing.T) {
	client := New().WithResults(docs(1)).WithDelay(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := client.Search(ctx, search.SearchRequest{Query: "q"}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Search() error = %v, want deadline exceeded", err)
	}
}
