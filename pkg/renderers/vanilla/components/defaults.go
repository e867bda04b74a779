package components

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formgrid/pkg/model"
)

const (
	templatePrefix = "templates/components/"
)

// NewDefaultRegistry constructs a registry pre-populated with one component
// per field kind family.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameInput, Descriptor{
		Renderer: templateComponentRenderer("forms.input", templatePrefix+"input.tmpl"),
	})
	registry.MustRegister(NameDate, Descriptor{
		Renderer: templateComponentRenderer("forms.date", templatePrefix+"input.tmpl"),
	})
	registry.MustRegister(NameCheckbox, Descriptor{
		Renderer: templateComponentRenderer("forms.checkbox", templatePrefix+"checkbox.tmpl"),
	})
	registry.MustRegister(NameRadio, Descriptor{
		Renderer: templateComponentRenderer("forms.radio", templatePrefix+"radio.tmpl"),
	})
	registry.MustRegister(NameSelect, Descriptor{
		Renderer: templateComponentRenderer("forms.select", templatePrefix+"select.tmpl"),
	})

	return registry
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, field model.Field, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolvedTemplate := templateName
		if candidate := strings.TrimSpace(data.Partials[partialKey]); candidate != "" {
			resolvedTemplate = candidate
		}

		payload := map[string]any{
			"control": ControlView(field, data),
		}
		rendered, err := data.Template.RenderTemplate(resolvedTemplate, payload)
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolvedTemplate, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}

// ControlView flattens a field and its value into the string-only map the
// component templates consume.
func ControlView(field model.Field, data ComponentData) map[string]any {
	view := map[string]any{
		"id":           ControlID(field.Name),
		"name":         field.Name,
		"type":         inputType(field.Kind),
		"label":        field.DisplayLabel(),
		"value":        model.FormatValue(field.Kind, data.Value),
		"invalid":      data.Invalid,
		"describedBy":  data.DescribedBy,
		"required":     field.Rules.Required.Enabled,
		"disabled":     hintEnabled(field.Hint("disabled")),
		"placeholder":  field.Hint("placeholder"),
		"autocomplete": field.Hint("autocomplete"),
		"step":         field.Hint("step"),
	}

	rules := field.Rules
	if rules.Min != nil {
		view["min"] = strconv.FormatFloat(*rules.Min, 'f', -1, 64)
	}
	if rules.Max != nil {
		view["max"] = strconv.FormatFloat(*rules.Max, 'f', -1, 64)
	}
	if rules.MinLength != nil {
		view["minLength"] = strconv.Itoa(*rules.MinLength)
	}
	if rules.MaxLength != nil {
		view["maxLength"] = strconv.Itoa(*rules.MaxLength)
	}

	if field.Kind == model.KindCheckbox {
		checked, _ := data.Value.(bool)
		view["checked"] = checked
	}

	if field.Kind.NeedsOptions() {
		selected := model.FormatValue(field.Kind, data.Value)
		options := make([]any, 0, len(field.Options))
		for idx, opt := range field.Options {
			value := model.OptionValue(opt)
			options = append(options, map[string]any{
				"id":       fmt.Sprintf("%s-%d", ControlID(field.Name), idx),
				"label":    opt.Label,
				"value":    value,
				"selected": value == selected,
			})
		}
		view["options"] = options
	}
	return view
}

// ControlID returns the DOM id of a field's control.
func ControlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "fg-" + trimmed
}

func inputType(kind model.FieldKind) string {
	switch kind {
	case model.KindPassword:
		return "password"
	case model.KindNumber:
		return "number"
	case model.KindDate:
		return "date"
	case model.KindCheckbox:
		return "checkbox"
	case model.KindRadio:
		return "radio"
	default:
		return "text"
	}
}

func hintEnabled(raw string) bool {
	enabled, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && enabled
}
