package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewClient_NilContextReturnsError(t *testing.T) {
	var nilCtx context.Context
	_, err := NewClient(nilCtx)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "ctx is nil") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	if _, err := NewClient(context.Background(), WithBaseURL("not a url")); err == nil {
		t.Fatalf("expected error for base url without scheme/host")
	}
}

func TestNewClient_BaseURLGetsTrailingSlash(t *testing.T) {
	c, err := NewClient(context.Background(), WithBaseURL("https://ghe.example.com/api/v3"))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if got := c.Client.BaseURL.String(); got != "https://ghe.example.com/api/v3/" {
		t.Fatalf("unexpected base url %q", got)
	}
}

func TestNewClient_AuthHeaders(t *testing.T) {
	ctx := context.Background()

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{}"))
	}))
	t.Cleanup(server.Close)

	basic := "Basic " + base64.StdEncoding.EncodeToString([]byte("octocat:hunter2"))

	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{name: "unauthenticated", opts: nil, want: ""},
		{name: "token", opts: []Option{WithToken("test-token")}, want: "Bearer test-token"},
		{name: "basic", opts: []Option{WithBasicAuth(Credentials{Login: "octocat", Password: "hunter2"})}, want: basic},
		{
			name: "basic wins over token",
			opts: []Option{WithToken("test-token"), WithBasicAuth(Credentials{Login: "octocat", Password: "hunter2"})},
			want: basic,
		},
		{name: "half credentials ignored", opts: []Option{WithBasicAuth(Credentials{Login: "octocat"})}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotAuth = ""
			opts := append([]Option{WithBaseURL(server.URL)}, tt.opts...)
			c, err := NewClient(ctx, opts...)
			if err != nil {
				t.Fatalf("NewClient failed: %v", err)
			}
			req, err := c.Client.NewRequest("GET", "rate_limit", nil)
			if err != nil {
				t.Fatalf("NewRequest: %v", err)
			}
			if _, err := c.Client.Do(ctx, req, nil); err != nil {
				t.Fatalf("Do: %v", err)
			}
			if gotAuth != tt.want {
				t.Fatalf("Authorization = %q, want %q", gotAuth, tt.want)
			}
		})
	}
}

func TestNewClient_WithVerbose_Logs(t *testing.T) {
	ctx := context.Background()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{}"))
	}))
	t.Cleanup(server.Close)

	var buf bytes.Buffer
	c, err := NewClient(ctx, WithBaseURL(server.URL), WithVerbose(true, &buf))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	req, err := c.Client.NewRequest("GET", "rate_limit", nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if _, err := c.Client.Do(ctx, req, nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !strings.Contains(buf.String(), "[verbose] github api: GET "+server.URL+"/rate_limit") {
		t.Fatalf("expected request log, got: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "[verbose] github api: 200 OK") {
		t.Fatalf("expected response log, got: %q", buf.String())
	}

	c.Logf("cache hit: %s", "x")
	if !strings.Contains(buf.String(), "[verbose] cache hit: x\n") {
		t.Fatalf("expected Logf output, got: %q", buf.String())
	}
}

func TestClient_LogfSilentWhenNotVerbose(t *testing.T) {
	c, err := NewClient(context.Background())
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	// Must not panic or write anywhere.
	c.Logf("ignored %d", 1)

	var nilClient *Client
	nilClient.Logf("ignored")
}
