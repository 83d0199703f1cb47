package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// DefaultUserAgent identifies the portal to public APIs that require one
// (Wikimedia, NCBI).
const DefaultUserAgent = "searchportal/1.0 (+https://github.com/kitbuilder587/searchportal)"

// maxBodySize caps upstream payloads.
const maxBodySize = 8 << 20

// Get performs a GET and returns the body of a 200 response. Other statuses
// are mapped to the package errors.
func Get(ctx context.Context, client *http.Client, rawURL, userAgent string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, application/xml;q=0.9, */*;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if err := CheckStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	return body, nil
}

// GetJSON is Get followed by json.Unmarshal into dst.
func GetJSON(ctx context.Context, client *http.Client, rawURL, userAgent string, dst any) error {
	body, err := Get(ctx, client, rawURL, userAgent)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

func CheckStatus(status int) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusTooManyRequests:
		return ErrRateLimit
	case status == http.StatusBadRequest:
		return ErrInvalidRequest
	case status == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: status %d", ErrSearchFailed, status)
	}
}
