package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// Completion is the OpenAI-compatible body the portal sends for answer
// synthesis.
type Completion struct {
	Model     string        `json:"model"`
	Messages  []ChatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CompletionReply struct {
	Choices []ReplyChoice `json:"choices"`
}

type ReplyChoice struct {
	Message ChatMessage `json:"message"`
}

// NewCompletion puts the grounding instructions, when present, ahead of the
// user prompt.
func NewCompletion(model string, req Request) Completion {
	messages := make([]ChatMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, ChatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, ChatMessage{Role: "user", Content: req.Prompt})

	return Completion{Model: model, Messages: messages, MaxTokens: req.MaxTokens}
}

// Answer returns the first choice's text.
func (r *CompletionReply) Answer() (string, error) {
	if len(r.Choices) == 0 || r.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return r.Choices[0].Message.Content, nil
}

// StatusError maps a provider's HTTP status onto the portal's LLM errors.
// Anything other than auth or rate limiting is logged with the body.
func StatusError(provider string, status int, body []byte, logger *zap.Logger) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthFailed
	case http.StatusTooManyRequests:
		return ErrRateLimit
	}

	logger.Error("answer synthesis failed",
		zap.String("provider", provider),
		zap.Int("status", status),
		zap.String("body", string(body)),
	)
	return fmt.Errorf("%w: %s status %d", ErrRequestFailed, provider, status)
}

// PostCompletion sends a completion with bearer auth and returns the raw
// reply body and status.
func PostCompletion(ctx context.Context, client *http.Client, endpoint, apiKey string, c Completion) ([]byte, int, error) {
	payload, err := json.Marshal(c)
	if err != nil {
		return nil, 0, fmt.Errorf("encode completion: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read completion reply: %w", err)
	}
	return body, resp.StatusCode, nil
}
