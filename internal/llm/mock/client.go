package mock

import (
	"context"
	"sync"
	"time"

	"github.com/kitbuilder587/searchportal/internal/llm"
)

type Client struct {
	Response string
	Error    error
	Delay    time.Duration

	CallCount   int
	LastRequest llm.Request
	AllCalls    []llm.Request

	mu sync.Mutex
}

func New() *Client {
	return &Client{
		Response: "This is a mock answer citing [1] and [2].",
	}
}

func (c *Client) WithResponse(response string) *Client {
	c.Response = response
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

func (c *Client) Provider() string {
	return "mock"
}

func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	c.mu.Lock()
	c.CallCount++
	c.LastRequest = req
	c.AllCalls = append(c.AllCalls, req)
	delay, err, response := c.Delay, c.Error, c.Response
	c.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
	}

	if err != nil {
		return "", err
	}

	return response, nil
}

func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CallCount = 0
	c.LastRequest = llm.Request{}
	c.AllCalls = nil
}

var _ llm.Client = (*Client)(nil)
