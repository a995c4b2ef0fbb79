package model

// Commit is a single change record. Group carries the commit's
// classification (for example a conventional-commit type such as "feat"
// or "fix"); upstream classification is responsible for populating it
// before a commit reaches the grouping filter.
type Commit struct {
	ID      string `json:"id" yaml:"id"`
	Message string `json:"message" yaml:"message"`
	Group   string `json:"group,omitempty" yaml:"group,omitempty"`
}

// Release is a timestamped collection of commits, optionally linked to
// the prior release in the changelog history. Previous is a lookup
// reference only; renderers never traverse beyond it.
type Release struct {
	Version   string   `json:"version,omitempty" yaml:"version,omitempty"`
	CommitID  string   `json:"commit_id,omitempty" yaml:"commit_id,omitempty"`
	Timestamp int64    `json:"timestamp" yaml:"timestamp"`
	Previous  *Release `json:"previous,omitempty" yaml:"previous,omitempty"`
	Commits   []Commit `json:"commits" yaml:"commits"`
}
