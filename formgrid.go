// Package formgrid is the convenience entry point for rendering schema files
// into forms. Lower level building blocks live under pkg/.
package formgrid

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formgrid/pkg/orchestrator"
	"github.com/goliatone/go-formgrid/pkg/render"
	"github.com/goliatone/go-formgrid/pkg/schema"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML loads a form schema and renders it with the named renderer.
// component selects an OpenAPI component schema; leave it empty for plain
// form schema files.
func GenerateHTML(ctx context.Context, source schema.Source, component, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:    source,
		Component: component,
		Renderer:  rendererName,
	})
}

// GenerateHTMLFromDocument renders a pre-loaded document, bypassing the
// loader stage.
func GenerateHTMLFromDocument(ctx context.Context, doc schema.Document, component, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document:  &doc,
		Component: component,
		Renderer:  rendererName,
	})
}

// NewLoader constructs a schema loader. fsys may be nil when only file
// sources are used.
func NewLoader(fsys fs.FS) *schema.Loader {
	return schema.NewLoader(fsys)
}
