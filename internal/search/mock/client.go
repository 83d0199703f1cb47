// Package mock is an in-memory search.SearchClient standing in for Firecrawl.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/kitbuilder587/searchportal/internal/search"
)

// Responder computes documents per request. It takes precedence over Results.
type Responder func(req search.SearchRequest) ([]search.Document, error)

type Client struct {
	Results   []search.Document
	Error     error
	Delay     time.Duration
	Responder Responder

	CallCount   int
	LastRequest search.SearchRequest
	AllRequests []search.SearchRequest

	mu sync.Mutex
}

func New() *Client {
	return &Client{}
}

func (c *Client) WithResults(results []search.Document) *Client {
	c.Results = results
	return c
}

func (c *Client) WithError(err error) *Client {
	c.Error = err
	return c
}

func (c *Client) WithDelay(delay time.Duration) *Client {
	c.Delay = delay
	return c
}

func (c *Client) WithResponder(fn Responder) *Client {
	c.Responder = fn
	return c
}

// Search records req and answers like the real API: at most req.Limit
// documents when a limit is set.
func (c *Client) Search(ctx context.Context, req search.SearchRequest) (*search.SearchResponse, error) {
	c.mu.Lock()
	c.CallCount++
	c.LastRequest = req
	c.AllRequests = append(c.AllRequests, req)
	delay, fail, docs, respond := c.Delay, c.Error, c.Results, c.Responder
	c.mu.Unlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	if fail != nil {
		return nil, fail
	}

	if respond != nil {
		var err error
		if docs, err = respond(req); err != nil {
			return nil, err
		}
	}
	if req.Limit > 0 && len(docs) > req.Limit {
		docs = docs[:req.Limit]
	}
	return &search.SearchResponse{Query: req.Query, Results: docs}, nil
}
