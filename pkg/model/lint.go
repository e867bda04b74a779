package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Issue describes a schema problem found by Lint.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Field == "" {
		return i.Message
	}
	return i.Field + ": " + i.Message
}

// Lint checks the schema invariants: unique non-empty names, known kinds,
// options for radio/dropdown fields, defaults matching their kind and
// consistent rules. Renderers never require a clean lint; malformed fields
// degrade to empty controls instead.
func Lint(fields []Field) []Issue {
	var issues []Issue
	seen := make(map[string]struct{}, len(fields))

	for idx, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			issues = append(issues, Issue{Message: fmt.Sprintf("field #%d has no name", idx)})
			continue
		}
		if _, dup := seen[name]; dup {
			issues = append(issues, Issue{Field: name, Message: "duplicate field name"})
		}
		seen[name] = struct{}{}

		if !field.Kind.Known() {
			issues = append(issues, Issue{Field: name, Message: fmt.Sprintf("unknown kind %q", field.Kind)})
			continue
		}
		if field.Kind.NeedsOptions() && len(field.Options) == 0 {
			issues = append(issues, Issue{Field: name, Message: fmt.Sprintf("%s field requires options", field.Kind)})
		}
		if field.Default != nil && !defaultMatchesKind(field) {
			issues = append(issues, Issue{Field: name, Message: fmt.Sprintf("default %v (%T) does not match kind %s", field.Default, field.Default, field.Kind)})
		}
		issues = append(issues, lintRules(name, field.Rules)...)
	}
	return issues
}

func lintRules(name string, rules Rules) []Issue {
	var issues []Issue
	if rules.Min != nil && rules.Max != nil && *rules.Min > *rules.Max {
		issues = append(issues, Issue{Field: name, Message: fmt.Sprintf("min %v exceeds max %v", *rules.Min, *rules.Max)})
	}
	if rules.MinLength != nil && rules.MaxLength != nil && *rules.MinLength > *rules.MaxLength {
		issues = append(issues, Issue{Field: name, Message: fmt.Sprintf("minLength %d exceeds maxLength %d", *rules.MinLength, *rules.MaxLength)})
	}
	if expr := strings.TrimSpace(rules.Pattern); expr != "" {
		if _, err := regexp.Compile(expr); err != nil {
			issues = append(issues, Issue{Field: name, Message: fmt.Sprintf("invalid pattern: %v", err)})
		}
	}
	return issues
}

func defaultMatchesKind(field Field) bool {
	value := field.Default
	switch field.Kind {
	case KindText, KindPassword:
		_, ok := value.(string)
		return ok
	case KindNumber:
		if _, ok := toFloat(value); ok {
			return true
		}
		s, ok := value.(string)
		if !ok {
			return false
		}
		_, isNumber := decodeNumber(s).(float64)
		return isNumber || strings.TrimSpace(s) == ""
	case KindCheckbox:
		_, ok := value.(bool)
		return ok
	case KindDate:
		switch v := value.(type) {
		case time.Time, *time.Time:
			return true
		case string:
			_, ok := decodeDate(v).(time.Time)
			return ok
		default:
			return false
		}
	case KindRadio, KindDropdown:
		want := FormatValue(field.Kind, value)
		for _, opt := range field.Options {
			if OptionValue(opt) == want {
				return true
			}
		}
		return false
	default:
		return false
	}
}
