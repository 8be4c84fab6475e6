package fetcher

import (
	"net/http"
	"strconv"
	"time"
)

// RequestBudget records the API quota reported by GitHub on each response.
// It never delays a request; the values only feed verbose logging and the
// rate-limit command.
type RequestBudget struct {
	limit      int
	remaining  int
	reset      time.Time
	retryAfter time.Duration
	known      bool
	requests   int
}

func NewRequestBudget() *RequestBudget {
	return &RequestBudget{remaining: -1, limit: -1}
}

// Remaining returns the last reported remaining quota, or -1 if no response
// carried one yet.
func (b *RequestBudget) Remaining() int {
	return b.remaining
}

func (b *RequestBudget) Limit() int {
	return b.limit
}

func (b *RequestBudget) Reset() time.Time {
	return b.reset
}

// RetryAfter is the most recent Retry-After hint (0 when none was sent).
func (b *RequestBudget) RetryAfter() time.Duration {
	return b.retryAfter
}

// Known reports whether any response has carried rate-limit headers.
func (b *RequestBudget) Known() bool {
	return b.known
}

// Requests counts responses observed, i.e. network calls that completed.
func (b *RequestBudget) Requests() int {
	return b.requests
}

// UpdateFromResponse folds the X-RateLimit-* and Retry-After headers of resp
// into the budget and reports whether anything changed.
func (b *RequestBudget) UpdateFromResponse(resp *http.Response) bool {
	if b == nil || resp == nil {
		return false
	}
	b.requests++

	changed := false

	b.retryAfter = 0
	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil && seconds > 0 {
			b.retryAfter = time.Duration(seconds) * time.Second
			changed = true
		}
	}

	if limit := resp.Header.Get("X-RateLimit-Limit"); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil && val >= 0 && b.limit != val {
			b.limit = val
			changed = true
		}
	}

	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil && val >= 0 && b.remaining != val {
			b.remaining = val
			b.known = true
			changed = true
		}
	}

	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil && val > 0 {
			newReset := time.Unix(val, 0)
			if !b.reset.Equal(newReset) {
				b.reset = newReset
				changed = true
			}
		}
	}

	return changed
}
