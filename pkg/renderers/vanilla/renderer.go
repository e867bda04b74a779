// Package vanilla renders forms as server-side HTML using pongo2 templates and
// a registry of per-kind components.
package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-formgrid/pkg/model"
	"github.com/goliatone/go-formgrid/pkg/render"
	rendertemplate "github.com/goliatone/go-formgrid/pkg/render/template"
	gotemplate "github.com/goliatone/go-formgrid/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formgrid/pkg/renderers/vanilla/components"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS fs.FS
	registry   *components.Registry
	overrides  map[string]string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithComponentRegistry replaces the default component registry. The registry
// is cloned so later mutations by the caller do not leak into the renderer.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry.Clone()
		}
	}
}

// WithComponentOverrides forces a component per field name.
func WithComponentOverrides(overrides map[string]string) Option {
	return func(cfg *config) {
		if len(overrides) == 0 {
			return
		}
		if cfg.overrides == nil {
			cfg.overrides = make(map[string]string, len(overrides))
		}
		for name, component := range overrides {
			cfg.overrides[strings.TrimSpace(name)] = strings.TrimSpace(component)
		}
	}
}

// Renderer implements render.Renderer for HTML output.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	registry  *components.Registry
	overrides map[string]string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}

	engine, err := gotemplate.New(
		gotemplate.WithName("vanilla"),
		gotemplate.WithFS(cfg.templateFS),
		gotemplate.WithExtension(".tmpl"),
	)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
	}

	return &Renderer{
		templates: engine,
		registry:  cfg.registry,
		overrides: cfg.overrides,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the form markup. Fields of unknown kind are skipped; a
// component failure aborts the render.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	var partials map[string]string
	if options.Theme != nil {
		partials = options.Theme.Partials
	}
	fieldRenderer := newComponentRenderer(r.templates, r.registry, r.overrides, partials)
	values := options.ResolvedValues(form.Fields)

	fields := make([]any, 0, len(form.Fields))
	for _, field := range form.Fields {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		markup, err := fieldRenderer.render(field, values[field.Name], options)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		if markup != "" {
			fields = append(fields, markup)
		}
	}

	method, hidden := resolveMethod(form.Method, options)
	view := map[string]any{
		"id":          formID(form),
		"title":       form.Title,
		"action":      form.Action,
		"method":      method,
		"layout":      string(options.ResolvedLayout()),
		"fields":      fields,
		"hidden":      hiddenView(hidden),
		"submitLabel": options.ResolvedSubmitLabel(),
		"submitting":  options.Submitting,
		"stylesheets": stringsToAny(fieldRenderer.stylesheets()),
	}
	if alert := alertView(options); alert != nil {
		view["alert"] = alert
	}
	if options.Theme != nil && len(options.Theme.CSSVars) > 0 {
		view["themeStyle"] = gotemplate.CSSVarsRule(options.Theme.CSSVars)
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"form": view,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func formID(form model.FormModel) string {
	if id := strings.TrimSpace(form.ID); id != "" {
		return id
	}
	return "fg-form"
}

// resolveMethod translates verbs browsers cannot submit into POST plus a
// hidden _method input.
func resolveMethod(declared string, options render.RenderOptions) (string, map[string]string) {
	method := strings.ToUpper(strings.TrimSpace(options.Method))
	if method == "" {
		method = strings.ToUpper(strings.TrimSpace(declared))
	}
	switch method {
	case "", "POST":
		return "post", options.Hidden
	case "GET":
		return "get", options.Hidden
	default:
		return "post", render.MergeHiddenFields(options.Hidden, render.Hidden("_method", method))
	}
}

func hiddenView(fields map[string]string) []any {
	sorted := render.SortedHiddenFields(fields)
	out := make([]any, 0, len(sorted))
	for _, field := range sorted {
		out = append(out, map[string]any{"name": field.Name, "value": field.Value})
	}
	return out
}

func alertView(options render.RenderOptions) map[string]any {
	if message := strings.TrimSpace(options.ErrorMessage); message != "" {
		return map[string]any{"tone": "error", "message": message}
	}
	if message := strings.TrimSpace(options.Notice); message != "" {
		return map[string]any{"tone": "success", "message": message}
	}
	return nil
}

func stringsToAny(values []string) []any {
	out := make([]any, 0, len(values))
	for _, value := range values {
		out = append(out, value)
	}
	return out
}
