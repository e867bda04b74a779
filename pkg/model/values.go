package model

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire and display format of date fields.
const DateLayout = "2006-01-02"

// Values maps field names to their current value. See the package
// documentation for the Go type stored per Kind.
type Values map[string]any

// Clone returns a shallow copy.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = value
	}
	return out
}

// String returns the string form of a value, "" when absent.
func (v Values) String(name string) string {
	raw, ok := v[name]
	if !ok || raw == nil {
		return ""
	}
	if s, ok := raw.(string); ok {
		return s
	}
	return fmt.Sprint(raw)
}

// Bool returns a checkbox value, false when absent.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// Float returns a number value and whether it was set.
func (v Values) Float(name string) (float64, bool) {
	f, ok := v[name].(float64)
	return f, ok
}

// Date returns a date value and whether it was set.
func (v Values) Date(name string) (time.Time, bool) {
	t, ok := v[name].(time.Time)
	return t, ok
}

// EmptyValue returns the kind-appropriate empty value: false for checkboxes,
// nil for dates and "" for every other kind.
func EmptyValue(kind FieldKind) any {
	switch kind {
	case KindCheckbox:
		return false
	case KindDate:
		return nil
	default:
		return ""
	}
}

// InitialValues computes the starting values of a form session: each field's
// default (or the kind-appropriate empty value) overlaid with the caller
// supplied initial values. Keys in initial that do not name a field are kept.
func InitialValues(fields []Field, initial Values) Values {
	out := make(Values, len(fields)+len(initial))
	for _, field := range fields {
		if field.Default != nil {
			out[field.Name] = normalizeValue(field.Kind, field.Default)
			continue
		}
		out[field.Name] = EmptyValue(field.Kind)
	}

	kinds := kindIndex(fields)
	for name, value := range initial {
		if kind, ok := kinds[name]; ok {
			out[name] = normalizeValue(kind, value)
			continue
		}
		out[name] = value
	}
	return out
}

// DecodeValues converts a submitted payload into typed values. Every field of
// a known kind receives an entry; unchecked checkboxes decode to false. Input
// that cannot be converted (an unparsable number or date) is kept as the raw
// string so validation can flag it.
func DecodeValues(fields []Field, payload url.Values) Values {
	out := make(Values, len(fields))
	for _, field := range fields {
		if !field.Kind.Known() {
			continue
		}
		raw := payload.Get(field.Name)
		switch field.Kind {
		case KindCheckbox:
			out[field.Name] = parseCheckbox(payload[field.Name])
		case KindNumber:
			out[field.Name] = decodeNumber(raw)
		case KindDate:
			out[field.Name] = decodeDate(raw)
		default:
			out[field.Name] = raw
		}
	}
	return out
}

// FormatValue renders a value the way form controls display it: numbers
// without trailing zeros, dates in DateLayout, nil as "".
func FormatValue(kind FieldKind, value any) string {
	switch v := normalizeValue(kind, value).(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(DateLayout)
	default:
		return fmt.Sprint(v)
	}
}

// OptionValue returns the string form used to match and submit an option.
func OptionValue(opt Option) string {
	switch v := opt.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func normalizeValue(kind FieldKind, value any) any {
	switch kind {
	case KindNumber:
		switch v := value.(type) {
		case string:
			return decodeNumber(v)
		default:
			if f, ok := toFloat(v); ok {
				return f
			}
		}
	case KindDate:
		switch v := value.(type) {
		case string:
			return decodeDate(v)
		case time.Time:
			if v.IsZero() {
				return nil
			}
			return truncateDay(v)
		case *time.Time:
			if v == nil || v.IsZero() {
				return nil
			}
			return truncateDay(*v)
		}
	case KindCheckbox:
		switch v := value.(type) {
		case bool:
			return v
		case string:
			return parseCheckbox([]string{v})
		}
	case KindRadio, KindDropdown:
		if value == nil {
			return ""
		}
		if _, ok := value.(string); !ok {
			return OptionValue(Option{Value: value})
		}
	}
	return value
}

func kindIndex(fields []Field) map[string]FieldKind {
	out := make(map[string]FieldKind, len(fields))
	for _, field := range fields {
		out[field.Name] = field.Kind
	}
	return out
}

func parseCheckbox(raw []string) bool {
	for _, candidate := range raw {
		switch strings.ToLower(strings.TrimSpace(candidate)) {
		case "true", "on", "1", "yes":
			return true
		}
	}
	return false
}

func decodeNumber(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return raw
	}
	return f
}

func decodeDate(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	parsed, err := time.Parse(DateLayout, trimmed)
	if err != nil {
		if ts, tsErr := time.Parse(time.RFC3339, trimmed); tsErr == nil {
			return truncateDay(ts)
		}
		return raw
	}
	return parsed
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
