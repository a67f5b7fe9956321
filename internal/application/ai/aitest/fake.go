// Package aitest provides a scripted ai.Client for tests.
package aitest

import (
	"context"
	"sync"
)

// Client returns Responses in order; once exhausted it repeats the last one.
// Err, when set, is returned instead.
type Client struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Prompts   []string
}

func New(responses ...string) *Client { return &Client{Responses: responses} }

func (c *Client) Generate(_ context.Context, prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Prompts = append(c.Prompts, prompt)
	if c.Err != nil {
		return "", c.Err
	}
	if len(c.Responses) == 0 {
		return "", nil
	}
	i := len(c.Prompts) - 1
	if i >= len(c.Responses) {
		i = len(c.Responses) - 1
	}
	return c.Responses[i], nil
}

// Calls reports how many prompts were sent.
func (c *Client) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Prompts)
}

// LastPrompt returns the most recent prompt.
func (c *Client) LastPrompt() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Prompts) == 0 {
		return ""
	}
	return c.Prompts[len(c.Prompts)-1]
}
