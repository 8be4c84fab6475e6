package report

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"repostats/internal/fetcher"
	"testing"
)

type fakeSource struct {
	info        map[string]any
	issues      map[fetcher.State]int
	pulls       map[fetcher.State]int
	commits     int
	contribs    int
	oldestIssue fetcher.Item
	oldestPull  fetcher.Item
	failOn      string
	calls       []string
}

var errBoom = errors.New("boom")

func (s *fakeSource) hit(name string) error {
	s.calls = append(s.calls, name)
	if s.failOn == name {
		return errBoom
	}
	return nil
}

func (s *fakeSource) RepositoryInfo(context.Context) (map[string]any, error) {
	if err := s.hit("info"); err != nil {
		return nil, err
	}
	return s.info, nil
}

func (s *fakeSource) IssuesCount(_ context.Context, state fetcher.State) (int, error) {
	if err := s.hit("issues:" + string(state)); err != nil {
		return 0, err
	}
	return s.issues[state], nil
}

func (s *fakeSource) PullsCount(_ context.Context, state fetcher.State) (int, error) {
	if err := s.hit("pulls:" + string(state)); err != nil {
		return 0, err
	}
	return s.pulls[state], nil
}

func (s *fakeSource) CommitsCount(context.Context) (int, error) {
	if err := s.hit("commits"); err != nil {
		return 0, err
	}
	return s.commits, nil
}

func (s *fakeSource) ContributorsCount(context.Context) (int, error) {
	if err := s.hit("contributors"); err != nil {
		return 0, err
	}
	return s.contribs, nil
}

func (s *fakeSource) OldestIssue(_ context.Context, state fetcher.State) (fetcher.Item, error) {
	if err := s.hit("oldest-issue:" + string(state)); err != nil {
		return nil, err
	}
	return s.oldestIssue, nil
}

func (s *fakeSource) OldestPullRequest(_ context.Context, state fetcher.State) (fetcher.Item, error) {
	if err := s.hit("oldest-pull:" + string(state)); err != nil {
		return nil, err
	}
	return s.oldestPull, nil
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		info: map[string]any{
			"full_name":        "acme/repo",
			"name":             "repo",
			"stargazers_count": 42,
			"fork":             false,
			"description":      nil,
			"id":               1234,
		},
		issues:      map[fetcher.State]int{fetcher.StateAll: 40, fetcher.StateClosed: 30},
		pulls:       map[fetcher.State]int{fetcher.StateAll: 10, fetcher.StateClosed: 8, fetcher.StateOpen: 2},
		commits:     500,
		contribs:    7,
		oldestIssue: fetcher.Item{"created_at": "2019-01-02T03:04:05Z"},
		oldestPull:  nil,
	}
}

func TestBuild(t *testing.T) {
	src := newFakeSource()

	got, err := Build(context.Background(), src)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	want := Report{
		"changelog":                 Placeholder,
		"close_issues_count":        30,
		"close_pull_requests_count": 8,
		"commits_count":             500,
		"contributors_count":        7,
		"description":               nil,
		"fork":                      false,
		"full_name":                 "acme/repo",
		"good":                      Placeholder,
		"issues_count":              40,
		"license":                   Placeholder,
		"name":                      "repo",
		"oldest_open_issue":         "2019-01-02T03:04:05Z",
		"oldest_open_pull_request":  nil,
		"open_pull_requests_count":  2,
		"pull_requests_count":       10,
		"readme":                    Placeholder,
		"stars_count":               42,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("report mismatch:\n got %#v\nwant %#v", got, want)
	}
}

func TestBuild_AliasesStargazers(t *testing.T) {
	got, err := Build(context.Background(), newFakeSource())
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	out, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded["stars_count"] != float64(42) {
		t.Fatalf("expected stars_count 42, got %v", decoded["stars_count"])
	}
	if _, ok := decoded["stargazers_count"]; ok {
		t.Fatalf("stargazers_count must not appear in the report")
	}
}

func TestBuild_OmitsAbsentMetadataAndUnknownFields(t *testing.T) {
	got, err := Build(context.Background(), newFakeSource())
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	for _, k := range []string{"homepage", "language", "pushed_at", "id"} {
		if _, ok := got[k]; ok {
			t.Errorf("expected %q to be omitted", k)
		}
	}
}

func TestBuild_MetadataWinsOnCollision(t *testing.T) {
	src := newFakeSource()
	src.info["readme"] = "README.md"
	MetadataFields = append(MetadataFields, Field{External: "readme"})
	t.Cleanup(func() { MetadataFields = MetadataFields[:len(MetadataFields)-1] })

	got, err := Build(context.Background(), src)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if got["readme"] != "README.md" {
		t.Fatalf("expected metadata value to win, got %v", got["readme"])
	}
}

func TestBuild_PropagatesFirstError(t *testing.T) {
	for _, failOn := range []string{"info", "issues:closed", "commits", "oldest-issue:open", "pulls:all"} {
		t.Run(failOn, func(t *testing.T) {
			src := newFakeSource()
			src.failOn = failOn

			got, err := Build(context.Background(), src)
			if !errors.Is(err, errBoom) {
				t.Fatalf("expected errBoom, got %v", err)
			}
			if got != nil {
				t.Fatalf("expected no partial report, got %v", got)
			}
			if last := src.calls[len(src.calls)-1]; last != failOn {
				t.Fatalf("expected build to stop at %q, last call was %q", failOn, last)
			}
		})
	}
}

func TestField_Name(t *testing.T) {
	if got := (Field{External: "stargazers_count", Alias: "stars_count"}).Name(); got != "stars_count" {
		t.Fatalf("expected alias, got %q", got)
	}
	if got := (Field{External: "size"}).Name(); got != "size" {
		t.Fatalf("expected external name, got %q", got)
	}
}

func TestReport_Keys(t *testing.T) {
	r := Report{"b": 1, "a": 2, "c": 3}
	if got := r.Keys(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected key order %v", got)
	}
}
