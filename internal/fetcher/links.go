package fetcher

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	RelFirst = "first"
	RelPrev  = "prev"
	RelNext  = "next"
	RelLast  = "last"
)

// PageLink is one entry of a pagination Link header, e.g.
//
//	<https://api.github.com/repositories/1/issues?page=5&state=all>; rel="last"
type PageLink struct {
	Rel   string
	URL   string
	Query map[string]string
	Page  int
}

// State returns the link's own state filter, or StateNone when the link
// does not carry one.
func (l PageLink) State() State {
	if s, ok := l.Query["state"]; ok {
		return State(s)
	}
	return StateNone
}

// ParsePaginationLinks parses a Link header value into its entries, in header
// order. Any entry without a numeric "page" query parameter fails the whole
// parse.
func ParsePaginationLinks(header string) ([]PageLink, error) {
	var links []PageLink
	for _, raw := range strings.Split(header, ",") {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}
		link, err := parseLinkEntry(entry)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, nil
}

func parseLinkEntry(entry string) (PageLink, error) {
	var link PageLink
	for i, part := range strings.Split(entry, ";") {
		part = strings.TrimSpace(part)
		if i == 0 {
			target, ok := strings.CutPrefix(part, "<")
			if ok {
				target, ok = strings.CutSuffix(target, ">")
			}
			if !ok {
				return PageLink{}, &LinkError{Entry: entry, Reason: "url is not enclosed in <>"}
			}
			link.URL = target
			continue
		}
		key, val, ok := strings.Cut(part, "=")
		if !ok || strings.TrimSpace(key) != "rel" {
			continue
		}
		link.Rel = strings.Trim(strings.TrimSpace(val), `"`)
	}
	if link.Rel == "" {
		return PageLink{}, &LinkError{Entry: entry, Reason: "missing rel"}
	}

	u, err := url.Parse(link.URL)
	if err != nil {
		return PageLink{}, &LinkError{Entry: entry, Reason: err.Error()}
	}
	values := u.Query()
	link.Query = make(map[string]string, len(values))
	for k := range values {
		link.Query[k] = values.Get(k)
	}

	page, ok := link.Query["page"]
	if !ok {
		return PageLink{}, &LinkError{Entry: entry, Reason: "missing page query parameter"}
	}
	n, err := strconv.Atoi(page)
	if err != nil || n < 0 {
		return PageLink{}, &LinkError{Entry: entry, Reason: "page is not a non-negative integer"}
	}
	link.Page = n
	return link, nil
}

// FindLink returns the last entry with the given relation.
func FindLink(links []PageLink, rel string) (PageLink, bool) {
	var (
		found PageLink
		ok    bool
	)
	for _, l := range links {
		if l.Rel == rel {
			found, ok = l, true
		}
	}
	return found, ok
}
