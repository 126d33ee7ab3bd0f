package template

import (
	"errors"
	"io"
)

// ErrTemplateNotFound is returned when the named template does not exist in
// any configured source.
var ErrTemplateNotFound = errors.New("template: not found")

// Renderer renders named file templates for special detail sections. Data
// carries per-request helper funcs, so implementations must pass callables
// through untouched.
type Renderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	Exists(name string) bool
}
