package template

import (
	"io"
)

// TemplateRenderer is the seam HTML renderers use to execute templates. The
// gotemplate package provides the pongo2-backed implementation.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
