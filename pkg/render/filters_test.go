package render

import (
	"strings"
	"testing"

	"github.com/flosch/pongo2/v6"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-changelog/pkg/model"
)

func TestGroupCommits(t *testing.T) {
	commits := []model.Commit{
		{ID: "1", Message: "fix A", Group: "fix"},
		{ID: "2", Message: "feat B", Group: "feat"},
		{ID: "3", Message: "fix C", Group: "fix"},
		{ID: "4", Message: "feat D", Group: "feat"},
	}

	got, err := GroupCommits(commits, []string{"feat", "fix"})
	if err != nil {
		t.Fatalf("group commits: %v", err)
	}

	want := []CommitGroup{
		{Name: "feat", Commits: []model.Commit{commits[1], commits[3]}},
		{Name: "fix", Commits: []model.Commit{commits[0], commits[2]}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("grouped output mismatch (-want +got):\n%s", diff)
	}
}

func TestGroupCommits_DropsUnlistedGroups(t *testing.T) {
	commits := []model.Commit{
		{ID: "1", Message: "add feature", Group: "feat"},
		{ID: "2", Message: "tidy internals", Group: "refactor"},
		{ID: "3", Message: "bump deps", Group: "chore"},
	}

	got, err := GroupCommits(commits, []string{"feat"})
	if err != nil {
		t.Fatalf("group commits: %v", err)
	}
	if len(got) != 1 || got[0].Name != "feat" || len(got[0].Commits) != 1 {
		t.Fatalf("unexpected grouped output: %+v", got)
	}
}

func TestGroupCommits_OrderIgnoresInputOrder(t *testing.T) {
	commits := []model.Commit{
		{ID: "1", Message: "patch", Group: "fix"},
		{ID: "2", Message: "shiny", Group: "feat"},
	}

	got, err := GroupCommits(commits, []string{"feat", "fix"})
	if err != nil {
		t.Fatalf("group commits: %v", err)
	}
	if got[0].Name != "feat" || got[1].Name != "fix" {
		t.Fatalf("groups not in declared order: %+v", got)
	}
}

func TestGroupCommits_NoCommits(t *testing.T) {
	got, err := GroupCommits(nil, []string{"feat", "fix"})
	if err != nil {
		t.Fatalf("group commits: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no groups, got %+v", got)
	}
}

func TestGroupCommits_MissingGroup(t *testing.T) {
	commits := []model.Commit{
		{ID: "1", Message: "classified", Group: "feat"},
		{ID: "2", Message: "unclassified"},
	}

	_, err := GroupCommits(commits, []string{"feat"})
	if err == nil {
		t.Fatal("expected error for commit without group")
	}
	if !strings.Contains(err.Error(), `commit "2" has no group`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpperFirstFilter(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase ascii", input: "add xyz", want: "Add xyz"},
		{name: "already capitalized", input: "Add xyz", want: "Add xyz"},
		{name: "empty", input: "", want: ""},
		{name: "single character", input: "a", want: "A"},
		{name: "multi-character expansion", input: "ßeta", want: "SSeta"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := upperFirstFilter(pongo2.AsValue(tc.input), nil)
			if err != nil {
				t.Fatalf("upper_first: %v", err)
			}
			if got := out.String(); got != tc.want {
				t.Fatalf("upper_first(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestUpperFirstFilter_RejectsNonString(t *testing.T) {
	_, err := upperFirstFilter(pongo2.AsValue(42), nil)
	if err == nil {
		t.Fatal("expected error for non-string value")
	}
	if !strings.Contains(err.OrigError.Error(), "not a string") {
		t.Fatalf("unexpected error: %v", err.OrigError)
	}
}

func TestGroupsFromValue_MissingArgument(t *testing.T) {
	for _, param := range []*pongo2.Value{nil, pongo2.AsValue(nil)} {
		if _, err := groupsFromValue(param); err == nil || !strings.Contains(err.Error(), "missing required argument") {
			t.Fatalf("expected missing argument error, got %v", err)
		}
	}
}

func TestCommitsFromValue_RejectsWrongShape(t *testing.T) {
	for _, value := range []any{nil, "not commits", 42, []any{"still not commits"}} {
		if _, err := commitsFromValue(pongo2.AsValue(value)); err == nil {
			t.Fatalf("expected error for value %v", value)
		}
	}
}
