package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formgrid/pkg/model"
	"github.com/goliatone/go-formgrid/pkg/render"
	"github.com/goliatone/go-formgrid/pkg/renderers/vanilla"
	"github.com/goliatone/go-formgrid/pkg/schema"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a schema loader.
func WithLoader(loader *schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithSchemaTransformer registers a Transformer that runs after decoding and
// before rendering.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// Orchestrator turns schema documents into rendered forms.
type Orchestrator struct {
	loader          *schema.Loader
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	initialiseErr   error
}

// New constructs an Orchestrator. Without a registry the vanilla renderer is
// registered and used.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes a single render.
type Request struct {
	// Source identifies the schema file. Optional when Document is supplied.
	Source schema.Source

	// Document bypasses the loader.
	Document *schema.Document

	// Component selects an OpenAPI component schema. When empty the document
	// is decoded as a form schema.
	Component string

	// Renderer names the renderer to use. Empty means the default renderer.
	Renderer string

	RenderOptions render.RenderOptions

	// Errors carries server-side messages keyed by field name or path. They
	// are mapped onto the decoded form; keys matching no field join the
	// form-level error message.
	Errors map[string][]string
}

// Result carries the rendered output along with the form it came from.
type Result struct {
	Form        model.FormModel
	ContentType string
	Output      []byte
}

// Generate runs load, decode, transform and render.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	result, err := o.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	return result.Output, nil
}

// Run is Generate returning the decoded form and content type as well.
func (o *Orchestrator) Run(ctx context.Context, req Request) (Result, error) {
	if o == nil {
		return Result{}, errors.New("orchestrator: nil receiver")
	}
	if o.initialiseErr != nil {
		return Result{}, o.initialiseErr
	}

	form, err := o.Form(ctx, req)
	if err != nil {
		return Result{}, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Result{}, err
	}

	output, err := renderer.Render(ctx, form, withErrors(form, req.RenderOptions, req.Errors))
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render with %q: %w", renderer.Name(), err)
	}
	return Result{Form: form, ContentType: renderer.ContentType(), Output: output}, nil
}

// Form loads, decodes and transforms the requested schema without rendering.
func (o *Orchestrator) Form(ctx context.Context, req Request) (model.FormModel, error) {
	doc, err := o.document(ctx, req)
	if err != nil {
		return model.FormModel{}, err
	}

	var form model.FormModel
	if component := strings.TrimSpace(req.Component); component != "" {
		form, err = schema.FromOpenAPI(ctx, doc.Raw(), component)
	} else {
		form, err = schema.DecodeForm(doc)
	}
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: decode %s: %w", doc.Location(), err)
	}

	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &form); err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: transform: %w", err)
		}
	}
	return form, nil
}

func withErrors(form model.FormModel, opts render.RenderOptions, payload map[string][]string) render.RenderOptions {
	if len(payload) == 0 {
		return opts
	}
	mapping := render.MapErrorPayload(form, payload)
	if len(mapping.Fields) > 0 {
		merged := make(map[string][]string, len(opts.Errors)+len(mapping.Fields))
		for name, messages := range opts.Errors {
			merged[name] = messages
		}
		for name, messages := range mapping.Fields {
			merged[name] = append(merged[name], messages...)
		}
		opts.Errors = merged
	}
	if len(mapping.Form) > 0 {
		var existing []string
		if msg := strings.TrimSpace(opts.ErrorMessage); msg != "" {
			existing = []string{msg}
		}
		opts.ErrorMessage = render.ErrorMapping{Form: render.MergeFormErrors(existing, mapping.Form...)}.Message()
	}
	return opts
}

func (o *Orchestrator) document(ctx context.Context, req Request) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.Document{}, errors.New("orchestrator: request requires a source or document")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: load: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if strings.TrimSpace(name) == "" && o.registry.Has(o.defaultRenderer) {
		name = o.defaultRenderer
	}
	renderer, err := o.registry.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = schema.NewLoader(nil)
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
	}
	if len(o.registry.List()) == 0 {
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: init vanilla renderer: %w", err)
			return
		}
		o.registry.MustRegister(renderer)
	}
}
