package report

// Field is a report key. External is the upstream GitHub field name and
// defines identity; Alias, when set, replaces it in the output.
type Field struct {
	External string
	Alias    string
}

// Name returns the output key.
func (f Field) Name() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.External
}

// Placeholder marks report fields that are not computed.
const Placeholder = "To complete"

// MetadataFields are copied from the repository resource when present.
var MetadataFields = []Field{
	{External: "created_at"},
	{External: "description"},
	{External: "fork"},
	{External: "forks_count"},
	{External: "full_name"},
	{External: "has_downloads"},
	{External: "has_pages"},
	{External: "has_wiki"},
	{External: "homepage"},
	{External: "language"},
	{External: "name"},
	{External: "open_issues_count"},
	{External: "pushed_at"},
	{External: "size"},
	{External: "subscribers_count"},
	{External: "updated_at"},
	{External: "watchers_count"},
	{External: "stargazers_count", Alias: "stars_count"},
}

// PlaceholderFields are always reported as Placeholder.
var PlaceholderFields = []Field{
	{External: "changelog"},
	{External: "good"},
	{External: "license"},
	{External: "readme"},
}

// Statistic field names.
var (
	FieldCloseIssuesCount       = Field{External: "close_issues_count"}
	FieldClosePullRequestsCount = Field{External: "close_pull_requests_count"}
	FieldCommitsCount           = Field{External: "commits_count"}
	FieldContributorsCount      = Field{External: "contributors_count"}
	FieldIssuesCount            = Field{External: "issues_count"}
	FieldOldestOpenIssue        = Field{External: "oldest_open_issue"}
	FieldOldestOpenPullRequest  = Field{External: "oldest_open_pull_request"}
	FieldOpenPullRequestsCount  = Field{External: "open_pull_requests_count"}
	FieldPullRequestsCount      = Field{External: "pull_requests_count"}
)
