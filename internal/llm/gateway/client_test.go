package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/searchportal/internal/llm"
)

func TestClient_Complete(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name       string
		response   interface{}
		statusCode int
		wantErr    error
	}{
		{
			name: "successful completion",
			response: llm.CompletionReply{
				Choices: []llm.ReplyChoice{
					{Message: llm.ChatMessage{Role: "assistant", Content: "Octopuses have three hearts [1]."}},
				},
			},
			statusCode: http.StatusOK,
		},
		{
			name:       "unauthorized",
			response:   map[string]string{"error": "unauthorized"},
			statusCode: http.StatusUnauthorized,
			wantErr:    llm.ErrAuthFailed,
		},
		{
			name:       "rate limit",
			response:   map[string]string{"error": "rate limit"},
			statusCode: http.StatusTooManyRequests,
			wantErr:    llm.ErrRateLimit,
		},
		{
			name:       "payment required",
			response:   map[string]string{"error": "credits"},
			statusCode: http.StatusPaymentRequired,
			wantErr:    llm.ErrRequestFailed,
		},
		{
			name:       "empty response",
			response:   llm.CompletionReply{Choices: []llm.ReplyChoice{}},
			statusCode: http.StatusOK,
			wantErr:    llm.ErrEmptyResponse,
		},
		{
			name:       "error in body",
			response:   map[string]interface{}{"error": map[string]string{"message": "model overloaded"}},
			statusCode: http.StatusOK,
			wantErr:    llm.ErrRequestFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Authorization") != "Bearer test-key" {
					t.Error("missing authorization header")
				}
				if r.URL.Path != "/chat/completions" {
					t.Errorf("path = %s", r.URL.Path)
				}

				w.WriteHeader(tt.statusCode)
				json.NewEncoder(w).Encode(tt.response)
			}))
			defer server.Close()

			client := New(Config{
				APIKey:  "test-key",
				BaseURL: server.URL,
				Timeout: 5 * time.Second,
			}, logger)

			result, err := client.Complete(context.Background(), llm.Request{System: "system", Prompt: "prompt"})

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Complete() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Complete() unexpected error = %v", err)
			}
			if result == "" {
				t.Error("Complete() returned empty result")
			}
		})
	}
}

func TestClient_Complete_RequestBody(t *testing.T) {
	var received llm.Completion

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		json.NewEncoder(w).Encode(llm.CompletionReply{
			Choices: []llm.ReplyChoice{{Message: llm.ChatMessage{Content: "ok"}}},
		})
	}))
	defer server.Close()

	client := New(Config{APIKey: "k", BaseURL: server.URL}, zap.NewNop())

	if _, err := client.Complete(context.Background(), llm.Request{Prompt: "papers", MaxTokens: 300}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if received.Model != "google/gemini-2.5-flash" {
		t.Errorf("model = %q", received.Model)
	}
	if len(received.Messages) != 1 || received.Messages[0].Role != "user" {
		t.Errorf("messages = %+v", received.Messages)
	}
	if received.MaxTokens != 300 {
		t.Errorf("max_tokens = %d", received.MaxTokens)
	}
}

func TestClient_Complete_NotConfigured(t *testing.T) {
	client := New(Config{BaseURL: "http://127.0.0.1:1"}, zap.NewNop())

	_, err := client.Complete(context.Background(), llm.Request{Prompt: "x"})
	if !errors.Is(err, llm.ErrNotConfigured) {
		t.Errorf("Complete() error = %v, want ErrNotConfigured", err)
	}
}
