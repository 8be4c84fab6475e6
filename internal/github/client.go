package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/go-github/v81/github"
	"golang.org/x/oauth2"
)

// DefaultAPIURL is the REST base used when no override is configured.
const DefaultAPIURL = "https://api.github.com/"

type Client struct {
	Client *github.Client
	HTTP   *http.Client

	// log receives verbose diagnostics; nil when verbose logging is off.
	log io.Writer
}

// Credentials is a login/password pair sent as HTTP Basic authorization.
type Credentials struct {
	Login    string
	Password string
}

// Valid reports whether both halves of the pair are set.
func (c Credentials) Valid() bool {
	return c.Login != "" && c.Password != ""
}

type options struct {
	verbose bool
	// writer controls where verbose HTTP logs are written (typically stderr) so
	// the report on stdout stays clean and tests can capture logs.
	writer  io.Writer
	basic   Credentials
	token   string
	baseURL string
	base    http.RoundTripper
}

type Option func(*options)

func WithVerbose(enabled bool, writer io.Writer) Option {
	return func(o *options) {
		o.verbose = enabled
		o.writer = writer
	}
}

// WithBasicAuth authenticates every request with login:password. It takes
// precedence over a token when both are configured.
func WithBasicAuth(creds Credentials) Option {
	return func(o *options) {
		o.basic = creds
	}
}

func WithToken(token string) Option {
	return func(o *options) {
		o.token = strings.TrimSpace(token)
	}
}

// WithBaseURL points the client at another REST root (GHES or a test server).
func WithBaseURL(raw string) Option {
	return func(o *options) {
		o.baseURL = raw
	}
}

// WithTransport replaces http.DefaultTransport as the innermost round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.base = rt
	}
}

// loggingRoundTripper wraps an underlying transport and emits one line per
// request and response (including latency) when verbose logging is enabled.
type loggingRoundTripper struct {
	base http.RoundTripper
	w    io.Writer
}

func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	if t.w != nil {
		_, _ = fmt.Fprintf(t.w, "[verbose] github api: %s %s\n", req.Method, req.URL.String())
	}
	resp, err := t.base.RoundTrip(req)
	dur := time.Since(start)
	if t.w != nil {
		if err != nil {
			_, _ = fmt.Fprintf(t.w, "[verbose] github api: error after %s: %v\n", dur.Truncate(time.Millisecond), err)
		} else {
			_, _ = fmt.Fprintf(t.w, "[verbose] github api: %d %s (%s)\n", resp.StatusCode, http.StatusText(resp.StatusCode), dur.Truncate(time.Millisecond))
		}
	}
	return resp, err
}

func NewClient(ctx context.Context, opts ...Option) (*Client, error) {
	if ctx == nil {
		return nil, fmt.Errorf("github client: ctx is nil")
	}

	o := &options{}
	for _, apply := range opts {
		if apply != nil {
			apply(o)
		}
	}
	if o.verbose && o.writer == nil {
		o.writer = os.Stderr
	}

	transport := o.base
	if transport == nil {
		transport = http.DefaultTransport
	}
	if o.verbose {
		transport = &loggingRoundTripper{base: transport, w: o.writer}
	}
	switch {
	case o.basic.Valid():
		transport = &github.BasicAuthTransport{
			Username:  o.basic.Login,
			Password:  o.basic.Password,
			Transport: transport,
		}
	case o.token != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: o.token})
		transport = &oauth2.Transport{Source: ts, Base: transport}
	}
	// Always provide an http.Client so verbose logging works even without credentials.
	tc := &http.Client{Transport: transport}

	gc := github.NewClient(tc)
	if o.baseURL != "" {
		u, err := parseBaseURL(o.baseURL)
		if err != nil {
			return nil, fmt.Errorf("github client: %w", err)
		}
		gc.BaseURL = u
	}

	c := &Client{
		Client: gc,
		HTTP:   tc,
	}
	if o.verbose {
		c.log = o.writer
	}
	return c, nil
}

// Logf writes a verbose diagnostic line. It is a no-op unless the client was
// built with WithVerbose(true, ...).
func (c *Client) Logf(format string, args ...any) {
	if c == nil || c.log == nil {
		return
	}
	_, _ = fmt.Fprintf(c.log, "[verbose] "+format+"\n", args...)
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api url %q: scheme and host are required", raw)
	}
	return u, nil
}
