package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	gh "repostats/internal/github"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v81/github"
)

// Fetcher performs cached, paginated reads against the GitHub REST API for a
// single repository. It is not safe for concurrent use.
type Fetcher struct {
	client     *gh.Client
	budget     *RequestBudget
	cache      *Cache
	repository string
}

func NewFetcher(client *gh.Client, budget *RequestBudget) *Fetcher {
	if budget == nil {
		budget = NewRequestBudget()
	}
	return &Fetcher{
		client: client,
		budget: budget,
		cache:  NewCache(),
	}
}

func (f *Fetcher) Budget() *RequestBudget {
	return f.budget
}

func (f *Fetcher) Client() *gh.Client {
	return f.client
}

// SetRepository sets the "owner/name" handle used by every repository-scoped
// call. An empty handle unsets it.
func (f *Fetcher) SetRepository(repo string) {
	f.repository = strings.Trim(strings.TrimSpace(repo), "/")
}

func (f *Fetcher) Repository() string {
	return f.repository
}

func (f *Fetcher) requireRepository() (string, error) {
	if f.repository == "" {
		return "", ErrNoRepository
	}
	return f.repository, nil
}

// NewRequest builds a GET request for endpoint. When fullURL is false the
// endpoint is resolved against the client's API base; otherwise it must be
// an absolute URL. Credentials are attached by the client's transport.
func (f *Fetcher) NewRequest(endpoint string, fullURL bool) (*http.Request, error) {
	if f == nil || f.client == nil || f.client.Client == nil {
		return nil, fmt.Errorf("NewRequest: nil GitHub client (use NewFetcher)")
	}
	if fullURL {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("NewRequest: %w", err)
		}
		if !u.IsAbs() {
			return nil, fmt.Errorf("NewRequest: %q is not an absolute url", endpoint)
		}
	} else {
		// A leading slash would discard a GHES base path such as /api/v3/.
		endpoint = strings.TrimPrefix(endpoint, "/")
	}
	return f.client.Client.NewRequest(http.MethodGet, endpoint, nil)
}

// listingEndpoint renders repos/{repo}/{kind}?page=N[&state=S][&direction=D].
func listingEndpoint(repo string, kind ItemKind, state State, page int, dir Direction) string {
	var b strings.Builder
	b.WriteString("repos/")
	b.WriteString(repo)
	b.WriteString("/")
	b.WriteString(string(kind))
	b.WriteString("?page=")
	b.WriteString(strconv.Itoa(page))
	if state != StateNone {
		b.WriteString("&state=")
		b.WriteString(url.QueryEscape(string(state)))
	}
	if dir != DirectionNone {
		b.WriteString("&direction=")
		b.WriteString(url.QueryEscape(string(dir)))
	}
	return b.String()
}

// ListItems returns one listing page. Pages are cached by (method, URL) for
// the lifetime of the Fetcher, so identical calls reach the network once.
func (f *Fetcher) ListItems(ctx context.Context, kind ItemKind, state State, page int, dir Direction) (*Response, error) {
	if ctx == nil {
		return nil, fmt.Errorf("ListItems: nil context")
	}
	repo, err := f.requireRepository()
	if err != nil {
		return nil, err
	}

	req, err := f.NewRequest(listingEndpoint(repo, kind, state, page, dir), false)
	if err != nil {
		return nil, err
	}
	key := requestKey{Method: req.Method, URL: req.URL.String()}
	if cached, ok := f.cache.Get(key); ok {
		f.client.Logf("cache hit: %s %s", key.Method, key.URL)
		return cached, nil
	}

	var items []Item
	resp, err := f.client.Client.Do(ctx, req, &items)
	f.observe(resp)
	if err != nil {
		return nil, fmt.Errorf("list %s page %d: %w", kind, page, err)
	}

	out := &Response{Header: resp.Header.Clone(), Items: items}
	f.cache.Set(key, out)
	return out, nil
}

// RepositoryInfo fetches the repository resource. It is not cached.
func (f *Fetcher) RepositoryInfo(ctx context.Context) (map[string]any, error) {
	if ctx == nil {
		return nil, fmt.Errorf("RepositoryInfo: nil context")
	}
	repo, err := f.requireRepository()
	if err != nil {
		return nil, err
	}
	info, err := f.getObject(ctx, "repos/"+repo)
	if err != nil {
		return nil, fmt.Errorf("get repository %s: %w", repo, err)
	}
	return info, nil
}

// RateLimit fetches the caller's quota. It does not need a repository.
func (f *Fetcher) RateLimit(ctx context.Context) (map[string]any, error) {
	if ctx == nil {
		return nil, fmt.Errorf("RateLimit: nil context")
	}
	limits, err := f.getObject(ctx, "rate_limit")
	if err != nil {
		return nil, fmt.Errorf("get rate limit: %w", err)
	}
	return limits, nil
}

func (f *Fetcher) getObject(ctx context.Context, endpoint string) (map[string]any, error) {
	req, err := f.NewRequest(endpoint, false)
	if err != nil {
		return nil, err
	}
	var body map[string]any
	resp, err := f.client.Client.Do(ctx, req, &body)
	f.observe(resp)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// observe records quota headers from resp, which go-github returns even
// alongside most errors.
func (f *Fetcher) observe(resp *github.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	if f.budget.UpdateFromResponse(resp.Response) && f.budget.Known() {
		f.client.Logf("rate limit: %d/%d remaining, resets at %s",
			f.budget.Remaining(), f.budget.Limit(), f.budget.Reset().Format(time.RFC3339))
	}
}
