package pages

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/goliatone/go-formgrid/internal/logging"
	"github.com/goliatone/go-formgrid/pkg/form"
	"github.com/goliatone/go-formgrid/pkg/model"
	"github.com/goliatone/go-formgrid/pkg/render"
)

// FormDemoNotice confirms an accepted submission.
const FormDemoNotice = "Saved"

// FormDemoFields is the schema of the dynamic form demo.
func FormDemoFields() []model.Field {
	return []model.Field{
		{Name: "fullName", Label: "Full Name", Kind: model.KindText, Rules: model.Rules{Required: model.RequiredMessage("Name is required")}},
		{Name: "age", Label: "Age", Kind: model.KindNumber, Rules: model.Rules{Min: model.Float(1), Max: model.Float(120)}},
		{Name: "agree", Label: "Agree to Terms", Kind: model.KindCheckbox, Default: false},
		{Name: "gender", Label: "Gender", Kind: model.KindRadio, Options: []model.Option{
			{Label: "Male", Value: "male"},
			{Label: "Female", Value: "female"},
			{Label: "Other", Value: "other"},
		}},
		{Name: "country", Label: "Country", Kind: model.KindDropdown, Options: []model.Option{
			{Label: "USA", Value: "us"},
			{Label: "China", Value: "cn"},
			{Label: "Japan", Value: "jp"},
		}},
		{Name: "birthday", Label: "Birthday", Kind: model.KindDate},
	}
}

// FormDemo is the dynamic form showcase. Accepted submissions are logged.
type FormDemo struct {
	form   *form.Form
	logger *slog.Logger
}

// NewFormDemo builds the page; a nil logger uses the process default.
func NewFormDemo(logger *slog.Logger) *FormDemo {
	return &FormDemo{
		form:   form.New(FormDemoFields(), form.WithID("form-demo"), form.WithAction("POST", PathFormDemo)),
		logger: logger,
	}
}

// Submit validates the payload and logs the complete values when valid.
func (p *FormDemo) Submit(ctx context.Context, payload url.Values) (form.Submission, error) {
	return p.form.Submit(ctx, payload, func(ctx context.Context, values model.Values) error {
		logger := p.logger
		if logger == nil {
			logger = logging.Default()
		}
		logger.InfoContext(ctx, "Submitted", "values", map[string]any(values))
		return nil
	})
}

// FormDemo renders the form demo body. A nil submission shows the defaults.
func (v *Views) FormDemo(ctx context.Context, page *FormDemo, submission *form.Submission, hidden map[string]string) (string, error) {
	opts := render.RenderOptions{
		Values:      page.form.Defaults(),
		SubmitLabel: "Save",
		Hidden:      hidden,
	}
	if submission != nil {
		opts.Values = submission.Values
		opts.Errors = submission.Errors.Lists()
		if submission.Submitted {
			opts.Notice = FormDemoNotice
		}
	}

	markup, err := v.renderForm(ctx, page.form.Model(), opts)
	if err != nil {
		return "", err
	}
	return v.execute("templates/form_demo.tmpl", "demo", map[string]any{
		"heading": "Dynamic Form Demo",
		"form":    markup,
	})
}
