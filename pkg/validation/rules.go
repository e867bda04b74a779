// Package validation evaluates field Rules against form Values. Violations are
// reported as short per-field messages, never as Go errors, so one failing
// field never prevents the others from being checked or rendered.
package validation

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-formgrid/pkg/model"
)

// FallbackMessage is shown for every violation that has no custom message.
const FallbackMessage = "Invalid value"

// Errors maps field names to the message of their first violated rule.
type Errors map[string]string

// Empty reports whether no field failed.
func (e Errors) Empty() bool {
	return len(e) == 0
}

// Fields returns the failing field names in sorted order.
func (e Errors) Fields() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lists converts the errors into the map-of-slices shape used by render
// options and error payloads.
func (e Errors) Lists() map[string][]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string][]string, len(e))
	for name, message := range e {
		out[name] = []string{message}
	}
	return out
}

// Validate checks every field and returns the violations keyed by name. Fields
// of unknown kind are skipped.
func Validate(fields []model.Field, values model.Values) Errors {
	errs := make(Errors)
	for _, field := range fields {
		if !field.Kind.Known() {
			continue
		}
		if message, ok := Field(field, values[field.Name]); !ok {
			errs[field.Name] = message
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Field evaluates a single field. Rules run in order required, min/max,
// minLength/maxLength, pattern; empty values only fail required. Radio and
// dropdown values must match one of the field options. It returns
// the violation message and false when a rule fails.
func Field(field model.Field, value any) (string, bool) {
	rules := field.Rules

	if isEmpty(field.Kind, value) {
		if rules.Required.Enabled {
			return requiredMessage(rules.Required), false
		}
		return "", true
	}

	switch field.Kind {
	case model.KindNumber:
		number, ok := value.(float64)
		if !ok || math.IsNaN(number) || math.IsInf(number, 0) {
			return FallbackMessage, false
		}
		if rules.Min != nil && number < *rules.Min {
			return FallbackMessage, false
		}
		if rules.Max != nil && number > *rules.Max {
			return FallbackMessage, false
		}
	case model.KindDate:
		if _, ok := value.(time.Time); !ok {
			return FallbackMessage, false
		}
	case model.KindRadio, model.KindDropdown:
		if len(field.Options) > 0 && !hasOption(field.Options, value) {
			return FallbackMessage, false
		}
	}

	text, isText := value.(string)
	if !isText {
		return "", true
	}
	length := utf8.RuneCountInString(text)
	if rules.MinLength != nil && length < *rules.MinLength {
		return FallbackMessage, false
	}
	if rules.MaxLength != nil && length > *rules.MaxLength {
		return FallbackMessage, false
	}
	if re := compilePattern(rules.Pattern); re != nil && !re.MatchString(text) {
		return FallbackMessage, false
	}
	return "", true
}

func hasOption(options []model.Option, value any) bool {
	selected := model.OptionValue(model.Option{Value: value})
	for _, opt := range options {
		if model.OptionValue(opt) == selected {
			return true
		}
	}
	return false
}

func requiredMessage(required model.Required) string {
	if message := strings.TrimSpace(required.Message); message != "" {
		return message
	}
	return FallbackMessage
}

func isEmpty(kind model.FieldKind, value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return kind == model.KindCheckbox && !v
	case time.Time:
		return v.IsZero()
	default:
		return false
	}
}

var patternCache sync.Map

// compilePattern returns nil for empty or invalid expressions; Lint reports
// the latter.
func compilePattern(expr string) *regexp.Regexp {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil
	}
	if cached, ok := patternCache.Load(expr); ok {
		re, _ := cached.(*regexp.Regexp)
		return re
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		re = nil
	}
	patternCache.Store(expr, re)
	return re
}
