package fetcher

import (
	"net/http"
	"testing"
	"time"
)

func responseWithHeaders(h map[string]string) *http.Response {
	resp := &http.Response{Header: make(http.Header)}
	for k, v := range h {
		resp.Header.Set(k, v)
	}
	return resp
}

func TestRequestBudget_Defaults(t *testing.T) {
	b := NewRequestBudget()
	if b.Known() {
		t.Fatalf("new budget must not be known")
	}
	if b.Remaining() != -1 || b.Limit() != -1 {
		t.Fatalf("expected -1 sentinels, got remaining=%d limit=%d", b.Remaining(), b.Limit())
	}
	if b.Requests() != 0 {
		t.Fatalf("expected 0 requests, got %d", b.Requests())
	}
}

func TestRequestBudget_UpdateFromResponse(t *testing.T) {
	b := NewRequestBudget()

	changed := b.UpdateFromResponse(responseWithHeaders(map[string]string{
		"X-RateLimit-Limit":     "5000",
		"X-RateLimit-Remaining": "4999",
		"X-RateLimit-Reset":     "1700000000",
	}))
	if !changed {
		t.Fatalf("expected change")
	}
	if !b.Known() || b.Remaining() != 4999 || b.Limit() != 5000 {
		t.Fatalf("unexpected budget: known=%v remaining=%d limit=%d", b.Known(), b.Remaining(), b.Limit())
	}
	if !b.Reset().Equal(time.Unix(1700000000, 0)) {
		t.Fatalf("unexpected reset: %v", b.Reset())
	}

	// Same values again: nothing changes, but the request is counted.
	if b.UpdateFromResponse(responseWithHeaders(map[string]string{
		"X-RateLimit-Limit":     "5000",
		"X-RateLimit-Remaining": "4999",
		"X-RateLimit-Reset":     "1700000000",
	})) {
		t.Fatalf("expected no change")
	}
	if b.Requests() != 2 {
		t.Fatalf("expected 2 requests, got %d", b.Requests())
	}
}

func TestRequestBudget_IgnoresGarbageAndTracksRetryAfter(t *testing.T) {
	b := NewRequestBudget()

	b.UpdateFromResponse(responseWithHeaders(map[string]string{
		"X-RateLimit-Remaining": "nope",
		"X-RateLimit-Reset":     "-5",
		"Retry-After":           "30",
	}))
	if b.Known() {
		t.Fatalf("garbage remaining must not mark the budget known")
	}
	if b.RetryAfter() != 30*time.Second {
		t.Fatalf("expected 30s retry-after, got %v", b.RetryAfter())
	}

	b.UpdateFromResponse(responseWithHeaders(nil))
	if b.RetryAfter() != 0 {
		t.Fatalf("retry-after must reset when absent, got %v", b.RetryAfter())
	}
}

func TestRequestBudget_NilSafe(t *testing.T) {
	var b *RequestBudget
	if b.UpdateFromResponse(&http.Response{}) {
		t.Fatalf("nil budget must report no change")
	}
	if NewRequestBudget().UpdateFromResponse(nil) {
		t.Fatalf("nil response must report no change")
	}
}

func TestCache(t *testing.T) {
	c := NewCache()
	key := requestKey{Method: http.MethodGet, URL: "https://api.github.com/repos/acme/repo/pulls?page=0"}

	if _, ok := c.Get(key); ok {
		t.Fatalf("expected miss on empty cache")
	}
	r := &Response{Header: http.Header{"Link": {`<x?page=2>; rel="next"`}}, Items: []Item{{"id": 1.0}}}
	c.Set(key, r)

	got, ok := c.Get(key)
	if !ok || got != r {
		t.Fatalf("expected cached response")
	}
	if _, ok := c.Get(requestKey{Method: http.MethodHead, URL: key.URL}); ok {
		t.Fatalf("method must be part of the key")
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", c.Len())
	}
	if got.Link() == "" {
		t.Fatalf("expected Link header")
	}
	var nilResp *Response
	if nilResp.Link() != "" {
		t.Fatalf("nil response has no Link")
	}
}
