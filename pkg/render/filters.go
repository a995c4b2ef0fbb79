package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/flosch/pongo2/v6"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-changelog/pkg/model"
)

// Filter names registered at renderer construction.
const (
	FilterUpperFirst   = "upper_first"
	FilterCommitGroups = "commit_groups"
)

// CommitGroup is one entry of the grouping filter's output: a group name
// and the commits classified under it, in their original relative order.
// The filter emits a slice of these rather than a map because the engine
// iterates maps in sorted key order, which would discard the
// caller-declared presentation order.
type CommitGroup struct {
	Name    string         `json:"name"`
	Commits []model.Commit `json:"commits"`
}

// GroupCommits retains the commits whose group appears in groups,
// partitions them per group preserving input order, and emits the
// buckets in the order groups declares them. Every input commit must
// carry a group; a commit without one is an upstream classification
// fault reported as an error.
func GroupCommits(commits []model.Commit, groups []string) ([]CommitGroup, error) {
	buckets := make(map[string][]model.Commit, len(groups))
	for _, commit := range commits {
		if commit.Group == "" {
			return nil, fmt.Errorf("%s: commit %q has no group", FilterCommitGroups, commit.ID)
		}
		if !containsGroup(groups, commit.Group) {
			continue
		}
		buckets[commit.Group] = append(buckets[commit.Group], commit)
	}

	out := make([]CommitGroup, 0, len(buckets))
	for _, name := range groups {
		bucket, ok := buckets[name]
		if !ok {
			continue
		}
		out = append(out, CommitGroup{Name: name, Commits: bucket})
		delete(buckets, name)
	}
	return out, nil
}

func containsGroup(groups []string, name string) bool {
	for _, group := range groups {
		if group == name {
			return true
		}
	}
	return false
}

// registerFilters adds the changelog filters to the engine's filter
// namespace. The registry is shared process-wide, so registration is
// guarded to stay idempotent across renderer instances.
func registerFilters() error {
	filters := map[string]pongo2.FilterFunction{
		FilterUpperFirst:   upperFirstFilter,
		FilterCommitGroups: commitGroupsFilter,
	}
	for name, fn := range filters {
		if pongo2.FilterExists(name) {
			continue
		}
		if err := pongo2.RegisterFilter(name, fn); err != nil {
			return fmt.Errorf("render: register filter %q: %w", name, err)
		}
	}
	return nil
}

// upperFirstFilter maps the first character of a string to its uppercase
// form. The mapping is the full Unicode one, so characters that expand
// when uppercased keep the whole expansion.
func upperFirstFilter(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if !in.IsString() {
		return nil, filterError(FilterUpperFirst, errors.New("upper_first: value is not a string"))
	}
	s := in.String()
	if s == "" {
		return pongo2.AsValue(""), nil
	}
	_, size := utf8.DecodeRuneInString(s)
	first := cases.Upper(language.Und).String(s[:size])
	return pongo2.AsValue(first + s[size:]), nil
}

// commitGroupsFilter groups and orders a commit list according to its
// required groups parameter, an ordered list of group names that defines
// both which commits survive and the order the groups appear in.
func commitGroupsFilter(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	commits, err := commitsFromValue(in)
	if err != nil {
		return nil, filterError(FilterCommitGroups, err)
	}
	groups, err := groupsFromValue(param)
	if err != nil {
		return nil, filterError(FilterCommitGroups, err)
	}

	grouped, err := GroupCommits(commits, groups)
	if err != nil {
		return nil, filterError(FilterCommitGroups, err)
	}

	value, err := toEngineValue(grouped)
	if err != nil {
		return nil, filterError(FilterCommitGroups, err)
	}
	return value, nil
}

func filterError(sender string, err error) *pongo2.Error {
	return &pongo2.Error{Sender: sender, OrigError: err}
}

// commitsFromValue performs the typed extraction the engine's loose
// values require: the invocation value must convert structurally into a
// commit list before any grouping logic runs.
func commitsFromValue(in *pongo2.Value) ([]model.Commit, error) {
	if in == nil || in.IsNil() {
		return nil, errors.New("commit_groups: value is not a list of commits")
	}
	raw, err := json.Marshal(in.Interface())
	if err != nil {
		return nil, fmt.Errorf("commit_groups: value is not a list of commits: %v", err)
	}
	var commits []model.Commit
	if err := json.Unmarshal(raw, &commits); err != nil {
		return nil, fmt.Errorf("commit_groups: value is not a list of commits: %v", err)
	}
	return commits, nil
}

func groupsFromValue(param *pongo2.Value) ([]string, error) {
	if param == nil || param.IsNil() {
		return nil, errors.New("commit_groups: missing required argument \"groups\"")
	}
	raw, err := json.Marshal(param.Interface())
	if err != nil {
		return nil, fmt.Errorf("commit_groups: argument \"groups\" is not a list of strings: %v", err)
	}
	var groups []string
	if err := json.Unmarshal(raw, &groups); err != nil {
		return nil, fmt.Errorf("commit_groups: argument \"groups\" is not a list of strings: %v", err)
	}
	return groups, nil
}

// toEngineValue serializes a typed result back into the engine's plain
// map/slice representation so template iteration sees the same shapes a
// context lookup would.
func toEngineValue(v any) (*pongo2.Value, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("commit_groups: encode result: %v", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("commit_groups: decode result: %v", err)
	}
	return pongo2.AsValue(out), nil
}
