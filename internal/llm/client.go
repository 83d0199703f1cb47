package llm

import (
	"context"
	"errors"
)

var (
	ErrAuthFailed    = errors.New("authentication failed")
	ErrRequestFailed = errors.New("request failed")
	ErrEmptyResponse = errors.New("empty response")
	ErrRateLimit     = errors.New("rate limit exceeded")
	ErrNotConfigured = errors.New("llm api key not configured")
)

// Request is one chat completion. An empty System sends only the user
// message; MaxTokens <= 0 leaves the provider default.
type Request struct {
	System    string
	Prompt    string
	MaxTokens int
}

type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	Provider() string
}
