package vanilla

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formgrid/pkg/model"
	"github.com/goliatone/go-formgrid/pkg/render"
	"github.com/goliatone/go-formgrid/pkg/render/template"
	"github.com/goliatone/go-formgrid/pkg/renderers/vanilla/components"
)

type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry
	overrides map[string]string
	partials  map[string]string

	used []string
}

func newComponentRenderer(templates template.TemplateRenderer, registry *components.Registry, overrides, partials map[string]string) *componentRenderer {
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	return &componentRenderer{
		templates: templates,
		registry:  registry,
		overrides: cloneStringMap(overrides),
		partials:  cloneStringMap(partials),
	}
}

// render returns the complete markup of one field, or "" for kinds that have
// no widget.
func (r *componentRenderer) render(field model.Field, value any, options render.RenderOptions) (string, error) {
	if !field.Kind.Known() {
		return "", nil
	}

	componentName := r.overrides[field.Name]
	if componentName == "" {
		componentName = components.ForKind(field.Kind)
	}
	descriptor, ok := r.registry.Descriptor(componentName)
	if !ok {
		return "", fmt.Errorf("component %q not registered for field %q", componentName, field.Name)
	}

	message := options.FieldError(field.Name)
	chrome := fieldChrome{
		field:     field,
		component: descriptor.Name,
		error:     message,
		helper:    strings.TrimSpace(field.HelperText),
	}

	data := components.ComponentData{
		Template:    r.templates,
		Value:       value,
		Invalid:     message != "",
		DescribedBy: chrome.describedBy(),
		Partials:    r.partials,
	}

	var control bytes.Buffer
	if err := descriptor.Renderer(&control, field, data); err != nil {
		return "", fmt.Errorf("render component %q for field %q: %w", descriptor.Name, field.Name, err)
	}
	r.markUsed(descriptor.Name)

	return chrome.wrap(control.String()), nil
}

func (r *componentRenderer) markUsed(name string) {
	for _, existing := range r.used {
		if existing == name {
			return
		}
	}
	r.used = append(r.used, name)
}

func (r *componentRenderer) stylesheets() []string {
	return r.registry.Stylesheets(r.used)
}

// fieldChrome renders the label, the control and then either the error or the
// helper text.
type fieldChrome struct {
	field     model.Field
	component string
	error     string
	helper    string
}

func (c fieldChrome) describedBy() string {
	if c.error == "" && c.helper == "" {
		return ""
	}
	return components.ControlID(c.field.Name) + "-help"
}

func (c fieldChrome) wrap(control string) string {
	field := c.field
	var builder strings.Builder
	builder.Grow(len(control) + 256)

	builder.WriteString(`<div class="fg-field fg-field--`)
	builder.WriteString(html.EscapeString(string(field.Kind)))
	if c.error != "" {
		builder.WriteString(` fg-field--invalid`)
	}
	if cls := sanitizeClassList(field.Hint("class")); cls != "" {
		builder.WriteByte(' ')
		builder.WriteString(html.EscapeString(cls))
	}
	builder.WriteString(`" data-field="`)
	builder.WriteString(html.EscapeString(field.Name))
	builder.WriteString(`" data-component="`)
	builder.WriteString(html.EscapeString(c.component))
	builder.WriteString("\">\n")

	if shouldRenderLabel(field) {
		id := components.ControlID(field.Name)
		if labelSupportsFor(field.Kind) {
			builder.WriteString(`  <label for="`)
			builder.WriteString(html.EscapeString(id))
			builder.WriteString(`" class="fg-label">`)
		} else {
			builder.WriteString(`  <span id="`)
			builder.WriteString(html.EscapeString(id + "-label"))
			builder.WriteString(`" class="fg-label">`)
		}
		builder.WriteString(html.EscapeString(field.DisplayLabel()))
		if field.Rules.Required.Enabled {
			builder.WriteString(` *`)
		}
		if labelSupportsFor(field.Kind) {
			builder.WriteString("</label>\n")
		} else {
			builder.WriteString("</span>\n")
		}
	}

	for _, line := range strings.Split(control, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		builder.WriteString("  ")
		builder.WriteString(line)
		builder.WriteByte('\n')
	}

	switch {
	case c.error != "":
		builder.WriteString(`  <p id="`)
		builder.WriteString(html.EscapeString(c.describedBy()))
		builder.WriteString(`" class="fg-error">`)
		builder.WriteString(html.EscapeString(c.error))
		builder.WriteString("</p>\n")
	case c.helper != "":
		builder.WriteString(`  <p id="`)
		builder.WriteString(html.EscapeString(c.describedBy()))
		builder.WriteString(`" class="fg-helper">`)
		builder.WriteString(html.EscapeString(c.helper))
		builder.WriteString("</p>\n")
	}

	builder.WriteString("</div>\n")
	return builder.String()
}

func cloneStringMap(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for key, value := range src {
		out[key] = value
	}
	return out
}
