package model

import "strings"

// FieldKind is the semantic input type driving widget choice.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindPassword FieldKind = "password"
	KindNumber   FieldKind = "number"
	KindCheckbox FieldKind = "checkbox"
	KindRadio    FieldKind = "radio"
	KindDropdown FieldKind = "dropdown"
	KindDate     FieldKind = "date"
)

// Kinds lists the supported field kinds in declaration order.
func Kinds() []FieldKind {
	return []FieldKind{KindText, KindPassword, KindNumber, KindCheckbox, KindRadio, KindDropdown, KindDate}
}

// Known reports whether the kind is one of the supported kinds.
func (k FieldKind) Known() bool {
	switch k {
	case KindText, KindPassword, KindNumber, KindCheckbox, KindRadio, KindDropdown, KindDate:
		return true
	default:
		return false
	}
}

// NeedsOptions reports whether the kind selects from Field.Options.
func (k FieldKind) NeedsOptions() bool {
	return k == KindRadio || k == KindDropdown
}

// Option is a single choice offered by radio and dropdown fields. Value is
// either a string or a number; renderers compare its string form.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Value any    `json:"value" yaml:"value"`
}

// Rules holds the validation constraints of a field. Numeric bounds apply to
// number fields, length bounds and Pattern to string values. Empty values only
// ever fail Required.
type Rules struct {
	Required  Required `json:"required,omitempty" yaml:"required,omitempty"`
	Min       *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max       *float64 `json:"max,omitempty" yaml:"max,omitempty"`
	MinLength *int     `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern   string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// Empty reports whether no rule is configured.
func (r Rules) Empty() bool {
	return !r.Required.Enabled && r.Min == nil && r.Max == nil &&
		r.MinLength == nil && r.MaxLength == nil && strings.TrimSpace(r.Pattern) == ""
}

// Field models an individual input inside a form. Struct tags let schema files
// and renderers serialise fields directly.
type Field struct {
	Name       string            `json:"name" yaml:"name"`
	Label      string            `json:"label,omitempty" yaml:"label,omitempty"`
	Kind       FieldKind         `json:"kind" yaml:"kind"`
	Default    any               `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Options    []Option          `json:"options,omitempty" yaml:"options,omitempty"`
	Rules      Rules             `json:"validation,omitempty" yaml:"validation,omitempty"`
	HelperText string            `json:"helperText,omitempty" yaml:"helperText,omitempty"`
	Hints      map[string]string `json:"hints,omitempty" yaml:"hints,omitempty"`
}

// Hint returns a trimmed rendering hint or "".
func (f Field) Hint(key string) string {
	if f.Hints == nil {
		return ""
	}
	return strings.TrimSpace(f.Hints[key])
}

// DisplayLabel falls back to a label derived from the field name.
func (f Field) DisplayLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return DefaultLabeler(f.Name)
}

// FormModel groups the fields rendered together along with the submission
// target.
type FormModel struct {
	ID     string  `json:"id,omitempty" yaml:"id,omitempty"`
	Title  string  `json:"title,omitempty" yaml:"title,omitempty"`
	Action string  `json:"action,omitempty" yaml:"action,omitempty"`
	Method string  `json:"method,omitempty" yaml:"method,omitempty"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Float is a helper for building Rules literals.
func Float(v float64) *float64 { return &v }

// Int is a helper for building Rules literals.
func Int(v int) *int { return &v }
