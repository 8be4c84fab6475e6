package fetcher

import (
	"context"
	"fmt"
)

// CountItems returns the size of a listing using at most two requests.
//
// Page 0 gives the page size. Without a Link header the listing fits on that
// page. Otherwise the "last" link names the final page N, which is read for
// its length: total = (N-1)*pageSize + len(page N). The last page keeps its
// own state filter when the link carries one and omits state otherwise.
func (f *Fetcher) CountItems(ctx context.Context, kind ItemKind, state State, dir Direction) (int, error) {
	first, err := f.ListItems(ctx, kind, state, 0, dir)
	if err != nil {
		return 0, err
	}
	pageSize := len(first.Items)

	links, err := first.Links()
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", kind, err)
	}
	last, ok := FindLink(links, RelLast)
	if !ok {
		// No Link header, or one without "last": page 0 is the only page.
		return pageSize, nil
	}

	final, err := f.ListItems(ctx, kind, last.State(), last.Page, dir)
	if err != nil {
		return 0, err
	}
	return (last.Page-1)*pageSize + len(final.Items), nil
}

// PullsCount counts pull requests in the given state.
func (f *Fetcher) PullsCount(ctx context.Context, state State) (int, error) {
	return f.CountItems(ctx, KindPulls, state, DirectionDesc)
}

// IssuesCount counts true issues in the given state. The issues endpoint also
// lists every pull request, so the pulls count is subtracted.
func (f *Fetcher) IssuesCount(ctx context.Context, state State) (int, error) {
	issues, err := f.CountItems(ctx, KindIssues, state, DirectionDesc)
	if err != nil {
		return 0, err
	}
	pulls, err := f.PullsCount(ctx, state)
	if err != nil {
		return 0, err
	}
	return issues - pulls, nil
}

func (f *Fetcher) CommitsCount(ctx context.Context) (int, error) {
	return f.CountItems(ctx, KindCommits, StateNone, DirectionNone)
}

func (f *Fetcher) ContributorsCount(ctx context.Context) (int, error) {
	return f.CountItems(ctx, KindContributors, StateNone, DirectionNone)
}
