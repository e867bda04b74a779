// Package form holds the state of one form session: the ordered field schema,
// its starting values and the submit pipeline that decodes, validates and
// hands complete values to a caller-supplied handler.
package form

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/goliatone/go-formgrid/pkg/model"
	"github.com/goliatone/go-formgrid/pkg/validation"
)

// SubmitFunc receives the complete, validated values of a submission. It is
// only invoked when every field passes validation.
type SubmitFunc func(ctx context.Context, values model.Values) error

// Option customises a Form.
type Option func(*Form)

// WithInitialValues overlays caller values on top of the field defaults.
func WithInitialValues(values model.Values) Option {
	return func(f *Form) {
		f.initial = values.Clone()
	}
}

// WithID sets the form identifier used by renderers for element ids.
func WithID(id string) Option {
	return func(f *Form) {
		f.model.ID = id
	}
}

// WithTitle sets the optional heading rendered above the fields.
func WithTitle(title string) Option {
	return func(f *Form) {
		f.model.Title = title
	}
}

// WithAction sets the submission endpoint and method.
func WithAction(method, action string) Option {
	return func(f *Form) {
		f.model.Method = method
		f.model.Action = action
	}
}

// Form couples a field schema with initial values. It is immutable after New
// and safe for concurrent use.
type Form struct {
	model   model.FormModel
	initial model.Values
}

// Submission is the outcome of Submit. Values always carries the decoded
// payload so renderers can redisplay what the user typed.
type Submission struct {
	Values    model.Values
	Errors    validation.Errors
	Submitted bool
}

// Valid reports whether the submission passed validation.
func (s Submission) Valid() bool {
	return s.Errors.Empty()
}

// New builds a form over the given fields. The slice is copied.
func New(fields []model.Field, opts ...Option) *Form {
	f := &Form{
		model: model.FormModel{
			Method: "POST",
			Fields: append([]model.Field(nil), fields...),
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// Model returns the form model consumed by renderers.
func (f *Form) Model() model.FormModel {
	out := f.model
	out.Fields = append([]model.Field(nil), f.model.Fields...)
	return out
}

// Fields returns the ordered field schema.
func (f *Form) Fields() []model.Field {
	return append([]model.Field(nil), f.model.Fields...)
}

// Defaults returns the starting values: field defaults overlaid with the
// initial values.
func (f *Form) Defaults() model.Values {
	return model.InitialValues(f.model.Fields, f.initial)
}

// Validate checks values against the schema without invoking a handler.
func (f *Form) Validate(values model.Values) validation.Errors {
	return validation.Validate(f.model.Fields, values)
}

// Submit decodes the payload, validates every field and, only when all pass,
// calls handler with the complete value set. Validation failures are reported
// through Submission.Errors; the returned error is reserved for handler
// failures and cancellation.
func (f *Form) Submit(ctx context.Context, payload url.Values, handler SubmitFunc) (Submission, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	values := f.Defaults()
	for name, value := range model.DecodeValues(f.model.Fields, payload) {
		values[name] = value
	}

	result := Submission{Values: values}
	if errs := f.Validate(values); !errs.Empty() {
		result.Errors = errs
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("form: submit: %w", err)
	}
	if handler != nil {
		if err := handler(ctx, values.Clone()); err != nil {
			return result, fmt.Errorf("form: submit: %w", err)
		}
	}
	result.Submitted = true
	return result, nil
}

// ErrorMessage extracts the text a form should show in its error alert for a
// failed submission. Context errors are reported as empty so callers can
// distinguish an aborted request from a handler failure.
func ErrorMessage(err error) string {
	if err == nil || errors.Is(err, context.Canceled) {
		return ""
	}
	var msg interface{ UserMessage() string }
	if errors.As(err, &msg) {
		return msg.UserMessage()
	}
	return err.Error()
}
