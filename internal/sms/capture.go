package sms

import (
	"context"
	"sync"
)

// CaptureProvider records sends for use in tests.
type CaptureProvider struct {
	mu    sync.Mutex
	Calls []CaptureCall
}

// CaptureCall records a single Send invocation.
type CaptureCall struct {
	To   string
	Body string
}

func (c *CaptureProvider) Send(_ context.Context, to, body string) (*SendResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls = append(c.Calls, CaptureCall{To: to, Body: body})
	return &SendResult{Status: "captured"}, nil
}

// Reset clears all recorded calls.
func (c *CaptureProvider) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls = nil
}
