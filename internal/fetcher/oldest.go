package fetcher

import (
	"context"
	"fmt"
)

// OldestPullRequest returns the first pull request in ascending creation
// order, or nil when there is none. The API orders by creation time, so
// page 0 is enough.
func (f *Fetcher) OldestPullRequest(ctx context.Context, state State) (Item, error) {
	resp, err := f.ListItems(ctx, KindPulls, state, 0, DirectionAsc)
	if err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}
	return resp.Items[0], nil
}

// OldestIssue returns the oldest issue that is not a pull request, or nil
// when the listing is exhausted without one. Pages are walked in ascending
// order by following "next" links until a match or the last page.
func (f *Fetcher) OldestIssue(ctx context.Context, state State) (Item, error) {
	page := 0
	resp, err := f.ListItems(ctx, KindIssues, state, page, DirectionAsc)
	if err != nil {
		return nil, err
	}
	for {
		for _, it := range resp.Items {
			if !it.IsPullRequest() {
				return it, nil
			}
		}

		links, err := resp.Links()
		if err != nil {
			return nil, fmt.Errorf("oldest issue: %w", err)
		}
		next, ok := FindLink(links, RelNext)
		if !ok {
			return nil, nil
		}
		if next.Page <= page {
			return nil, fmt.Errorf("oldest issue: next page %d does not advance past page %d", next.Page, page)
		}
		page = next.Page

		resp, err = f.ListItems(ctx, KindIssues, next.State(), page, DirectionAsc)
		if err != nil {
			return nil, err
		}
	}
}
