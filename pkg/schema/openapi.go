package schema

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formgrid/pkg/model"
)

const (
	kindExtensionKey  = "x-kind"
	orderExtensionKey = "x-order"
	hintsExtensionKey = "x-hints"
)

// ErrComponentNotFound is returned when the named component schema is absent.
var ErrComponentNotFound = errors.New("schema: openapi component not found")

// FromOpenAPI derives a form from an object schema under
// components.schemas. Properties carrying the x-order extension come first in that
// order, the rest follow by name. The x-kind extension overrides the inferred field kind.
func FromOpenAPI(ctx context.Context, raw []byte, component string) (model.FormModel, error) {
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("schema: load openapi document: %w", err)
	}
	if doc.Components == nil {
		return model.FormModel{}, fmt.Errorf("%w: %s", ErrComponentNotFound, component)
	}
	ref, ok := doc.Components.Schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return model.FormModel{}, fmt.Errorf("%w: %s", ErrComponentNotFound, component)
	}

	src := ref.Value
	required := make(map[string]bool, len(src.Required))
	for _, name := range src.Required {
		required[name] = true
	}

	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		oi, oj := propertyOrder(src.Properties[names[i]]), propertyOrder(src.Properties[names[j]])
		if oi != oj {
			return oi < oj
		}
		return names[i] < names[j]
	})

	form := model.FormModel{
		ID:    component,
		Title: strings.TrimSpace(src.Title),
	}
	for _, name := range names {
		property := src.Properties[name]
		if property == nil || property.Value == nil {
			continue
		}
		form.Fields = append(form.Fields, fieldFromSchema(name, property.Value, required[name]))
	}
	return form, nil
}

func fieldFromSchema(name string, src *openapi3.Schema, required bool) model.Field {
	field := model.Field{
		Name:       name,
		Label:      strings.TrimSpace(src.Title),
		Kind:       inferKind(src),
		Default:    src.Default,
		HelperText: strings.TrimSpace(src.Description),
		Hints:      stringMap(src.Extensions[hintsExtensionKey]),
	}
	for _, value := range src.Enum {
		field.Options = append(field.Options, model.Option{Label: fmt.Sprint(value), Value: value})
	}

	if required {
		field.Rules.Required = model.IsRequired()
	}
	if src.Min != nil {
		field.Rules.Min = model.Float(*src.Min)
	}
	if src.Max != nil {
		field.Rules.Max = model.Float(*src.Max)
	}
	if src.MinLength > 0 {
		field.Rules.MinLength = model.Int(int(src.MinLength))
	}
	if src.MaxLength != nil {
		field.Rules.MaxLength = model.Int(int(*src.MaxLength))
	}
	field.Rules.Pattern = src.Pattern
	return field
}

func inferKind(src *openapi3.Schema) model.FieldKind {
	if raw, ok := src.Extensions[kindExtensionKey].(string); ok {
		if kind := model.FieldKind(strings.ToLower(strings.TrimSpace(raw))); kind != "" {
			return kind
		}
	}
	if len(src.Enum) > 0 {
		return model.KindDropdown
	}
	switch schemaType(src.Type) {
	case openapi3.TypeBoolean:
		return model.KindCheckbox
	case openapi3.TypeInteger, openapi3.TypeNumber:
		return model.KindNumber
	}
	switch src.Format {
	case "password":
		return model.KindPassword
	case "date", "date-time":
		return model.KindDate
	}
	return model.KindText
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	for _, value := range types.Slice() {
		if value != openapi3.TypeNull {
			return value
		}
	}
	return ""
}

func propertyOrder(ref *openapi3.SchemaRef) float64 {
	if ref == nil || ref.Value == nil {
		return math.Inf(1)
	}
	switch v := ref.Value.Extensions[orderExtensionKey].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return math.Inf(1)
}

func stringMap(raw any) map[string]string {
	values, ok := raw.(map[string]any)
	if !ok || len(values) == 0 {
		return nil
	}
	out := make(map[string]string, len(values))
	for key, value := range values {
		out[key] = fmt.Sprint(value)
	}
	return out
}
