package model

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRelease reads a release description from a YAML or JSON file.
// yaml.v3 accepts JSON as a YAML subset, so one decoder covers both.
func LoadRelease(path string) (*Release, error) {
	if path == "" {
		return nil, errors.New("model: release path is required")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: open release file: %w", err)
	}
	defer file.Close()

	release, err := DecodeRelease(file)
	if err != nil {
		return nil, fmt.Errorf("model: decode %q: %w", path, err)
	}
	return release, nil
}

// DecodeRelease decodes a single release document from r and validates
// the required commit fields.
func DecodeRelease(r io.Reader) (*Release, error) {
	var release Release
	if err := yaml.NewDecoder(r).Decode(&release); err != nil {
		return nil, fmt.Errorf("model: parse release: %w", err)
	}
	if err := release.Validate(); err != nil {
		return nil, err
	}
	return &release, nil
}

// Validate checks the invariants decoded input must satisfy: every
// commit carries an id and a message. Group is optional at this layer;
// the grouping filter enforces its own presence requirement.
func (r *Release) Validate() error {
	if r == nil {
		return errors.New("model: release is nil")
	}
	for i, commit := range r.Commits {
		if commit.ID == "" {
			return fmt.Errorf("model: commit %d: id is required", i)
		}
		if commit.Message == "" {
			return fmt.Errorf("model: commit %d (%s): message is required", i, commit.ID)
		}
	}
	if r.Previous != nil {
		if err := r.Previous.Validate(); err != nil {
			return fmt.Errorf("model: previous release: %w", err)
		}
	}
	return nil
}
