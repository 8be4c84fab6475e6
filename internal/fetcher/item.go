package fetcher

// ItemKind names a repository-scoped listing endpoint.
type ItemKind string

const (
	KindPulls        ItemKind = "pulls"
	KindIssues       ItemKind = "issues"
	KindCommits      ItemKind = "commits"
	KindContributors ItemKind = "contributors"
)

// State filters listings by open/closed. StateNone omits the query parameter,
// which endpoints without a state concept (commits, contributors) require.
type State string

const (
	StateAll    State = "all"
	StateOpen   State = "open"
	StateClosed State = "closed"
	StateNone   State = ""
)

// Direction orders listings by creation time. DirectionNone omits the
// query parameter.
type Direction string

const (
	DirectionDesc Direction = "desc"
	DirectionAsc  Direction = "asc"
	DirectionNone Direction = ""
)

// Item is one decoded element of a listing body. Fields are kept as decoded
// JSON so callers can pick what they need without a schema per endpoint.
type Item map[string]any

// pullRequestMarker is present on issues-endpoint items that are pull requests.
const pullRequestMarker = "pull_request"

func (it Item) IsPullRequest() bool {
	_, ok := it[pullRequestMarker]
	return ok
}

// CreatedAt returns the raw created_at value, or nil for a nil item.
func (it Item) CreatedAt() any {
	if it == nil {
		return nil
	}
	return it["created_at"]
}
