package render

import (
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formgrid/pkg/model"
)

// DefaultSubmitLabel is used when RenderOptions.SubmitLabel is blank.
const DefaultSubmitLabel = "Submit"

// Layout selects how fields are arranged.
type Layout string

const (
	// LayoutGrid places fields in a responsive two column grid.
	LayoutGrid Layout = "grid"
	// LayoutStack places fields in a single vertical column.
	LayoutStack Layout = "stack"
)

// ParseLayout returns the layout named by raw, falling back to LayoutGrid.
func ParseLayout(raw string) Layout {
	switch Layout(strings.ToLower(strings.TrimSpace(raw))) {
	case LayoutStack:
		return LayoutStack
	default:
		return LayoutGrid
	}
}

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model.
type RenderOptions struct {
	// Method overrides the HTTP method declared by the form model.
	Method string
	// Values pre-populates rendered controls. Missing entries fall back to
	// the field defaults.
	Values model.Values
	// Errors surfaces validation feedback keyed by field name. Only the first
	// message of each field is displayed.
	Errors map[string][]string
	// ErrorMessage is shown in an alert above the fields.
	ErrorMessage string
	// Notice is an informational message shown in place of ErrorMessage when
	// the latter is empty.
	Notice string
	// SubmitLabel defaults to DefaultSubmitLabel.
	SubmitLabel string
	// Submitting disables the submit control. The caller owns the flag.
	Submitting bool
	Layout     Layout
	// Hidden emits additional hidden inputs alongside the visible fields.
	Hidden map[string]string
	Theme  *theme.RendererConfig
}

// ResolvedSubmitLabel returns the submit label, applying the default.
func (o RenderOptions) ResolvedSubmitLabel() string {
	if label := strings.TrimSpace(o.SubmitLabel); label != "" {
		return label
	}
	return DefaultSubmitLabel
}

// ResolvedLayout returns the layout, applying the default.
func (o RenderOptions) ResolvedLayout() Layout {
	return ParseLayout(string(o.Layout))
}

// FieldError returns the first error recorded for the named field.
func (o RenderOptions) FieldError(name string) string {
	for _, message := range o.Errors[name] {
		if trimmed := strings.TrimSpace(message); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// ResolvedValues merges the caller values over the field defaults.
func (o RenderOptions) ResolvedValues(fields []model.Field) model.Values {
	return model.InitialValues(fields, o.Values)
}
