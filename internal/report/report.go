package report

import (
	"context"
	"repostats/internal/fetcher"
	"sort"
)

// Source is the subset of the API client the builder reads from.
type Source interface {
	RepositoryInfo(ctx context.Context) (map[string]any, error)
	IssuesCount(ctx context.Context, state fetcher.State) (int, error)
	PullsCount(ctx context.Context, state fetcher.State) (int, error)
	CommitsCount(ctx context.Context) (int, error)
	ContributorsCount(ctx context.Context) (int, error)
	OldestIssue(ctx context.Context, state fetcher.State) (fetcher.Item, error)
	OldestPullRequest(ctx context.Context, state fetcher.State) (fetcher.Item, error)
}

// Report maps output key to value. encoding/json writes map keys sorted, so
// a Report serializes in key order.
type Report map[string]any

// Keys returns the output keys in lexicographic order.
func (r Report) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r Report) set(f Field, v any) {
	r[f.Name()] = v
}

// Build assembles the report for the source's repository. The first error
// from the source aborts the build; no partial report is returned.
func Build(ctx context.Context, src Source) (Report, error) {
	info, err := src.RepositoryInfo(ctx)
	if err != nil {
		return nil, err
	}

	r := make(Report, len(MetadataFields)+len(PlaceholderFields)+9)
	for _, f := range PlaceholderFields {
		r.set(f, Placeholder)
	}

	counts := []struct {
		field Field
		count func() (int, error)
	}{
		{FieldCloseIssuesCount, func() (int, error) { return src.IssuesCount(ctx, fetcher.StateClosed) }},
		{FieldClosePullRequestsCount, func() (int, error) { return src.PullsCount(ctx, fetcher.StateClosed) }},
		{FieldCommitsCount, func() (int, error) { return src.CommitsCount(ctx) }},
		{FieldContributorsCount, func() (int, error) { return src.ContributorsCount(ctx) }},
		{FieldIssuesCount, func() (int, error) { return src.IssuesCount(ctx, fetcher.StateAll) }},
	}
	for _, c := range counts {
		n, err := c.count()
		if err != nil {
			return nil, err
		}
		r.set(c.field, n)
	}

	oldestIssue, err := src.OldestIssue(ctx, fetcher.StateOpen)
	if err != nil {
		return nil, err
	}
	r.set(FieldOldestOpenIssue, oldestIssue.CreatedAt())

	oldestPull, err := src.OldestPullRequest(ctx, fetcher.StateOpen)
	if err != nil {
		return nil, err
	}
	r.set(FieldOldestOpenPullRequest, oldestPull.CreatedAt())

	openPulls, err := src.PullsCount(ctx, fetcher.StateOpen)
	if err != nil {
		return nil, err
	}
	r.set(FieldOpenPullRequestsCount, openPulls)

	pulls, err := src.PullsCount(ctx, fetcher.StateAll)
	if err != nil {
		return nil, err
	}
	r.set(FieldPullRequestsCount, pulls)

	// Metadata is applied last and wins on collision. Absent fields are
	// omitted rather than reported as null.
	for _, f := range MetadataFields {
		if v, ok := info[f.External]; ok {
			r.set(f, v)
		}
	}
	return r, nil
}
