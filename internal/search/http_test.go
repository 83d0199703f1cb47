package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetJSON(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"go"}`))
	}))
	defer server.Close()

	var dst struct {
		Name string `json:"name"`
	}
	if err := GetJSON(context.Background(), server.Client(), server.URL, "", &dst); err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	if dst.Name != "go" {
		t.Errorf("Name = %q, want go", dst.Name)
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestGet_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "rate limit", status: http.StatusTooManyRequests, wantErr: ErrRateLimit},
		{name: "bad request", status: http.StatusBadRequest, wantErr: ErrInvalidRequest},
		{name: "server error", status: http.StatusBadGateway, wantErr: ErrSearchFailed},
		{name: "not found", status: http.StatusNotFound, wantErr: ErrNotFound},
		{name: "not found is a search failure", status: http.StatusNotFound, wantErr: ErrSearchFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			_, err := Get(context.Background(), server.Client(), server.URL, "test-agent")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Get() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetJSON_InvalidBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	var dst map[string]any
	if err := GetJSON(context.Background(), server.Client(), server.URL, "", &dst); err == nil {
		t.Error("GetJSON() expected error for invalid body")
	}
}
