package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-changelog/pkg/model"
)

// GroupsContextKey is the context entry RenderWithGroups injects so a
// template can forward the caller's ordered group list to the
// commit_groups filter without embedding it literally:
//
//	{% for group in commits | commit_groups:commit_groups_filter %}
const GroupsContextKey = "commit_groups_filter"

const templateSetName = "changelog"

// Renderer compiles a template once and renders it repeatedly against
// release values. Instances are immutable after construction and safe
// for concurrent use; render calls touch no internal mutable state.
type Renderer struct {
	set  *pongo2.TemplateSet
	tmpl *pongo2.Template
}

// Changelog templates emit markdown or plain text, so the engine's
// Django-style HTML autoescaping stays off.
var engineSetup sync.Once

// New compiles templateText as the single template this instance holds.
// The changelog filters are registered before compilation so templates
// referencing them parse cleanly. Parse failures surface as
// TemplateParseError when the engine attached a diagnostic cause, else
// as TemplateError.
func New(templateText string) (*Renderer, error) {
	engineSetup.Do(func() {
		pongo2.SetAutoescape(false)
	})
	if err := registerFilters(); err != nil {
		return nil, err
	}
	// The set requires a loader even though this renderer only ever
	// compiles via FromString.
	set := pongo2.NewSet(templateSetName, pongo2.MustNewLocalFileSystemLoader(""))
	tmpl, err := set.FromString(templateText)
	if err != nil {
		return nil, translateEngineError(parseStage, err)
	}
	return &Renderer{set: set, tmpl: tmpl}, nil
}

// Render evaluates the template against release. The release is
// serialized into the engine context with its field names preserved;
// optional fields that are unset stay absent rather than becoming
// placeholder strings.
func (r *Renderer) Render(release *model.Release) (string, error) {
	ctx, err := releaseContext(release)
	if err != nil {
		return "", err
	}
	return r.execute(ctx)
}

// RenderWithGroups renders like Render but additionally exposes groups
// under the GroupsContextKey context entry.
func (r *Renderer) RenderWithGroups(release *model.Release, groups []string) (string, error) {
	ctx, err := releaseContext(release)
	if err != nil {
		return "", err
	}
	ctx[GroupsContextKey] = append([]string(nil), groups...)
	return r.execute(ctx)
}

func (r *Renderer) execute(ctx pongo2.Context) (string, error) {
	if r == nil || r.tmpl == nil {
		return "", errors.New("render: renderer is not initialized")
	}
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", translateEngineError(executeStage, err)
	}
	return buf.String(), nil
}

// releaseContext serializes release into the engine's plain map
// representation via a JSON round-trip, the same conversion the filters
// use, so field access in templates matches the wire field names.
func releaseContext(release *model.Release) (pongo2.Context, error) {
	if release == nil {
		return nil, errors.New("render: release is required")
	}
	raw, err := json.Marshal(release)
	if err != nil {
		return nil, fmt.Errorf("render: serialize release: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("render: build context: %w", err)
	}
	// A release without commits still iterates as an empty loop.
	if fields["commits"] == nil {
		fields["commits"] = []any{}
	}
	return pongo2.Context(fields), nil
}
