package render

import (
	"errors"
	"fmt"

	"github.com/flosch/pongo2/v6"
)

// TemplateParseError reports template text that failed to compile.
// Message is the engine's innermost diagnostic (line/column and token
// context), not the engine's generic wrapper text.
type TemplateParseError struct {
	Message string
}

func (e *TemplateParseError) Error() string {
	return fmt.Sprintf("render: parse template: %s", e.Message)
}

// TemplateRenderError reports a compiled template that failed during
// evaluation, such as a filter type mismatch or a missing filter
// argument. Message is the engine's innermost diagnostic.
type TemplateRenderError struct {
	Message string
}

func (e *TemplateRenderError) Error() string {
	return fmt.Sprintf("render: execute template: %s", e.Message)
}

// TemplateError wraps an engine failure that carried no deeper cause.
type TemplateError struct {
	Err error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("render: template engine: %v", e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }

type stage int

const (
	parseStage stage = iota
	executeStage
)

// translateEngineError applies the cause-chain rule uniformly: an engine
// error with a deeper cause becomes the stage-specific kind carrying the
// innermost message, an engine error without one is wrapped opaquely.
// The engine's top-level text is usually a generic wrapper while the
// useful diagnostic lives one or more levels down.
func translateEngineError(s stage, err error) error {
	msg, ok := innermostCause(err)
	if !ok {
		return &TemplateError{Err: err}
	}
	if s == parseStage {
		return &TemplateParseError{Message: msg}
	}
	return &TemplateRenderError{Message: msg}
}

// innermostCause walks the cause chain to its deepest entry, following
// pongo2's OrigError field as well as standard Unwrap links.
func innermostCause(err error) (string, bool) {
	var cause error
	for current := err; current != nil; {
		var next error
		if engineErr, ok := current.(*pongo2.Error); ok {
			next = engineErr.OrigError
		} else {
			next = errors.Unwrap(current)
		}
		if next == nil {
			break
		}
		cause = next
		current = next
	}
	if cause == nil {
		return "", false
	}
	return cause.Error(), true
}
