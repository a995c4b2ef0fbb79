// Package render turns release data into changelog text using pongo2
// templates. It owns the template compilation contract, the typed error
// translation for engine failures, and the changelog-specific filters
// (upper_first and commit_groups).
package render
