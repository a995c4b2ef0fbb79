package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-changelog/pkg/model"
)

// MustLoadRelease reads a release fixture and fails the test on any
// decode or validation error, keeping contract tests concise.
func MustLoadRelease(t *testing.T, path string) *model.Release {
	t.Helper()

	release, err := model.LoadRelease(path)
	if err != nil {
		t.Fatalf("load release: %v", err)
	}
	return release
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteGolden refreshes a golden file when UPDATE_GOLDENS is set and is
// a no-op otherwise, so regular test runs never touch fixtures.
func WriteGolden(t *testing.T, path string, data []byte) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a readable diff of want versus got.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}
