package fetcher

import "net/http"

// requestKey identifies a cached response. Only GET listings are cached, so
// equal keys always denote the same idempotent read.
type requestKey struct {
	Method string
	URL    string
}

// Response is a listing page as first observed during this run.
type Response struct {
	Header http.Header
	Items  []Item
}

// Link returns the raw pagination Link header, or "" when the listing fits
// on a single page.
func (r *Response) Link() string {
	if r == nil {
		return ""
	}
	return r.Header.Get("Link")
}

// Links parses the Link header. A response without one has no links.
func (r *Response) Links() ([]PageLink, error) {
	link := r.Link()
	if link == "" {
		return nil, nil
	}
	return ParsePaginationLinks(link)
}

// Cache memoizes listing pages for the lifetime of one Fetcher. Entries are
// never invalidated, so a repeated read returns the first-observed content
// even if upstream state changed in between.
type Cache struct {
	data map[requestKey]*Response
}

func NewCache() *Cache {
	return &Cache{data: make(map[requestKey]*Response)}
}

func (c *Cache) Get(key requestKey) (*Response, bool) {
	r, ok := c.data[key]
	return r, ok
}

func (c *Cache) Set(key requestKey, r *Response) {
	c.data[key] = r
}

func (c *Cache) Len() int {
	return len(c.data)
}
