// Package tui renders forms as interactive terminal prompts. Each field is
// prompted in order, validated with the same rules as the HTML renderer and
// re-prompted until it passes; the collected values are serialized as the
// render output.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-formgrid/pkg/model"
	"github.com/goliatone/go-formgrid/pkg/render"
	"github.com/goliatone/go-formgrid/pkg/validation"
)

const noneOption = "(none)"

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	maxAttempts       int
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver writing notices
// to stderr, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        Theme{ErrorPrefix: "✗ "},
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(nil)
	}
	return r, nil
}

// NewWithOutput is New with survey notices written to out.
func NewWithOutput(out io.Writer, options ...Option) (*Renderer, error) {
	return New(append([]Option{WithPromptDriver(newSurveyDriver(out))}, options...)...)
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts every field of a known kind and returns the serialized
// values. Errors already present in opts are shown before the matching
// prompt.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	if title := strings.TrimSpace(form.Title); title != "" {
		if err := r.driver.Info(ctx, r.theme.InfoPrefix+title); err != nil {
			return nil, err
		}
	}
	if message := strings.TrimSpace(opts.ErrorMessage); message != "" {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return nil, err
		}
	}

	values := opts.ResolvedValues(form.Fields)
	for _, field := range form.Fields {
		if !field.Kind.Known() {
			delete(values, field.Name)
			continue
		}
		if message := opts.FieldError(field.Name); message != "" {
			if err := r.driver.Info(ctx, r.invalidMessage(field, message)); err != nil {
				return nil, err
			}
		}
		value, err := r.promptField(ctx, field, values[field.Name])
		if err != nil {
			return nil, fmt.Errorf("tui: field %q: %w", field.Name, err)
		}
		values[field.Name] = value
	}

	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(form.Fields, values)
}

type promptFunc func(ctx context.Context, field model.Field, current any) (any, error)

func (r *Renderer) promptField(ctx context.Context, field model.Field, current any) (any, error) {
	var ask promptFunc
	switch field.Kind {
	case model.KindCheckbox:
		ask = r.promptCheckbox
	case model.KindRadio, model.KindDropdown:
		if len(field.Options) == 0 {
			return model.EmptyValue(field.Kind), nil
		}
		ask = r.promptChoice
	default:
		ask = r.promptText
	}

	for attempt := 1; ; attempt++ {
		value, err := ask(ctx, field, current)
		if err != nil {
			return nil, err
		}
		message, ok := validation.Field(field, value)
		if ok {
			return value, nil
		}
		if err := r.driver.Info(ctx, r.invalidMessage(field, message)); err != nil {
			return nil, err
		}
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return nil, ErrTooManyAttempts
		}
		current = value
	}
}

func (r *Renderer) promptText(ctx context.Context, field model.Field, current any) (any, error) {
	cfg := InputConfig{
		Message:     promptLabel(field),
		Default:     model.FormatValue(field.Kind, current),
		Help:        field.HelperText,
		Placeholder: field.Hint("placeholder"),
	}
	if field.Kind == model.KindDate && cfg.Help == "" {
		cfg.Help = "Format: YYYY-MM-DD"
	}

	var (
		raw string
		err error
	)
	if field.Kind == model.KindPassword {
		raw, err = r.driver.Password(ctx, cfg)
	} else {
		raw, err = r.driver.Input(ctx, cfg)
	}
	if err != nil {
		return nil, err
	}
	decoded := model.DecodeValues([]model.Field{field}, url.Values{field.Name: {raw}})
	return decoded[field.Name], nil
}

func (r *Renderer) promptCheckbox(ctx context.Context, field model.Field, current any) (any, error) {
	checked, _ := current.(bool)
	return r.driver.Confirm(ctx, ConfirmConfig{
		Message: promptLabel(field),
		Default: checked,
		Help:    field.HelperText,
	})
}

func (r *Renderer) promptChoice(ctx context.Context, field model.Field, current any) (any, error) {
	labels := make([]string, 0, len(field.Options)+1)
	values := make([]string, 0, len(field.Options)+1)
	if !field.Rules.Required.Enabled {
		labels = append(labels, noneOption)
		values = append(values, "")
	}
	for _, opt := range field.Options {
		labels = append(labels, opt.Label)
		values = append(values, model.OptionValue(opt))
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      promptLabel(field),
		Options:      labels,
		DefaultIndex: indexOf(values, model.FormatValue(field.Kind, current)),
		Help:         field.HelperText,
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(values) {
		return "", nil
	}
	return values[idx], nil
}

func (r *Renderer) invalidMessage(field model.Field, message string) string {
	return fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, field.DisplayLabel(), message)
}

func promptLabel(field model.Field) string {
	label := field.DisplayLabel()
	if field.Rules.Required.Enabled {
		label += " *"
	}
	return label
}

func (r *Renderer) serialize(fields []model.Field, values model.Values) ([]byte, error) {
	out := exportValues(fields, values)
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for name, value := range out {
			form.Set(name, fmt.Sprint(valueOrEmpty(value)))
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(fields, out)), nil
	default:
		payload, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode values: %w", err)
		}
		return append(payload, '\n'), nil
	}
}

// exportValues converts dates to their DateLayout string so every output
// format agrees on the representation.
func exportValues(fields []model.Field, values model.Values) map[string]any {
	out := make(map[string]any, len(values))
	for name, value := range values {
		if t, ok := value.(time.Time); ok {
			out[name] = t.Format(model.DateLayout)
			continue
		}
		out[name] = value
	}
	for _, field := range fields {
		if _, ok := out[field.Name]; !ok && field.Kind.Known() {
			out[field.Name] = model.EmptyValue(field.Kind)
		}
	}
	return out
}

func prettyPrint(fields []model.Field, values map[string]any) string {
	var b strings.Builder
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		seen[field.Name] = struct{}{}
		fmt.Fprintf(&b, "%s: %v\n", field.DisplayLabel(), valueOrEmpty(value))
	}
	extra := make([]string, 0)
	for name := range values {
		if _, ok := seen[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		fmt.Fprintf(&b, "%s: %v\n", name, valueOrEmpty(values[name]))
	}
	return b.String()
}

func valueOrEmpty(value any) any {
	if value == nil {
		return ""
	}
	return value
}
