// Package changelog renders changelog documents from structured release
// data with user-supplied templates. It re-exports the building blocks
// from pkg/model and pkg/render and offers one-shot Generate helpers for
// callers that do not need to hold a compiled renderer.
package changelog

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-changelog/pkg/model"
	"github.com/goliatone/go-changelog/pkg/render"
)

// Commit aliases model.Commit for convenience at the module root.
type Commit = model.Commit

// Release aliases model.Release.
type Release = model.Release

// Renderer aliases render.Renderer.
type Renderer = render.Renderer

// CommitGroup aliases render.CommitGroup, the grouping filter's output
// entry shape.
type CommitGroup = render.CommitGroup

// NewRenderer exposes the renderer constructor from the top-level
// module.
func NewRenderer(templateText string) (*render.Renderer, error) {
	return render.New(templateText)
}

// Option customises a Generate call.
type Option func(*config)

type config struct {
	groups     []string
	withGroups bool
	sanitize   bool
}

// WithGroups renders through the grouped path, exposing the ordered
// group list to the template under render.GroupsContextKey.
func WithGroups(groups []string) Option {
	return func(cfg *config) {
		cfg.groups = append([]string(nil), groups...)
		cfg.withGroups = true
	}
}

// WithHTMLSanitizer runs the rendered output through bluemonday's UGC
// policy. Intended for templates that emit HTML destined for web
// display; markdown and plain-text templates should leave it off.
func WithHTMLSanitizer() Option {
	return func(cfg *config) {
		cfg.sanitize = true
	}
}

// Generate compiles templateText and renders release in one call. It is
// the simplest entry point for callers that render a template exactly
// once; repeat renders should construct a Renderer and reuse it.
func Generate(templateText string, release *model.Release, options ...Option) ([]byte, error) {
	var cfg config
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer, err := render.New(templateText)
	if err != nil {
		return nil, err
	}

	var out string
	if cfg.withGroups {
		out, err = renderer.RenderWithGroups(release, cfg.groups)
	} else {
		out, err = renderer.Render(release)
	}
	if err != nil {
		return nil, err
	}

	if cfg.sanitize {
		out = bluemonday.UGCPolicy().Sanitize(out)
	}
	return []byte(out), nil
}

// GenerateWithGroups renders through the grouped path, exposing the
// ordered group list to the template under render.GroupsContextKey.
func GenerateWithGroups(templateText string, release *model.Release, groups []string, options ...Option) ([]byte, error) {
	return Generate(templateText, release, append(options, WithGroups(groups))...)
}
