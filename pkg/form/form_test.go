package form_test

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgrid/pkg/form"
	"github.com/goliatone/go-formgrid/pkg/model"
	"github.com/goliatone/go-formgrid/pkg/validation"
)

func demoFields() []model.Field {
	return []model.Field{
		{Name: "fullName", Label: "Full Name", Kind: model.KindText, Rules: model.Rules{Required: model.RequiredMessage("Name is required")}},
		{Name: "age", Label: "Age", Kind: model.KindNumber, Rules: model.Rules{Min: model.Float(1), Max: model.Float(120)}},
		{Name: "agree", Label: "Agree", Kind: model.KindCheckbox, Default: false},
		{Name: "country", Label: "Country", Kind: model.KindDropdown, Options: []model.Option{{Label: "USA", Value: "us"}, {Label: "Japan", Value: "jp"}}},
		{Name: "birthday", Label: "Birthday", Kind: model.KindDate},
	}
}

func TestSubmit_RequiredEmptyBlocksHandler(t *testing.T) {
	f := form.New(demoFields())
	called := false

	result, err := f.Submit(context.Background(), url.Values{"fullName": {""}}, func(context.Context, model.Values) error {
		called = true
		return nil
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if called {
		t.Fatalf("handler must not run when a required field is empty")
	}
	if result.Submitted || result.Valid() {
		t.Fatalf("expected invalid submission, got %+v", result)
	}
	if diff := cmp.Diff(validation.Errors{"fullName": "Name is required"}, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_AgeOutOfRangeReportsOnlyAge(t *testing.T) {
	f := form.New(demoFields())
	result, err := f.Submit(context.Background(), url.Values{"fullName": {"Ada"}, "age": {"150"}}, func(context.Context, model.Values) error {
		t.Fatalf("handler must not run")
		return nil
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if diff := cmp.Diff([]string{"age"}, result.Errors.Fields()); diff != "" {
		t.Fatalf("failing fields mismatch (-want +got):\n%s", diff)
	}
	if got := result.Values["age"]; got != float64(150) {
		t.Fatalf("expected submitted age kept for redisplay, got %#v", got)
	}
}

func TestSubmit_RejectsNonFiniteAndUnlistedValues(t *testing.T) {
	f := form.New(demoFields())
	payload := url.Values{
		"fullName": {"Ada"},
		"age":      {"NaN"},
		"country":  {"zz"},
	}
	result, err := f.Submit(context.Background(), payload, func(context.Context, model.Values) error {
		t.Fatalf("handler must not run")
		return nil
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := validation.Errors{"age": validation.FallbackMessage, "country": validation.FallbackMessage}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if result.Submitted {
		t.Fatalf("expected blocked submission")
	}
}

func TestSubmit_HandlerReceivesCompleteValues(t *testing.T) {
	f := form.New(demoFields(), form.WithInitialValues(model.Values{"country": "jp"}))
	var got model.Values

	payload := url.Values{
		"fullName": {"Ada Lovelace"},
		"age":      {"36"},
		"agree":    {"on"},
		"birthday": {"1815-12-10"},
	}
	result, err := f.Submit(context.Background(), payload, func(_ context.Context, values model.Values) error {
		got = values
		return nil
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Submitted {
		t.Fatalf("expected submitted result, errors: %v", result.Errors)
	}

	want := model.Values{
		"fullName": "Ada Lovelace",
		"age":      float64(36),
		"agree":    true,
		"country":  "",
		"birthday": time.Date(1815, time.December, 10, 0, 0, 0, 0, time.UTC),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("handler values mismatch (-want +got):\n%s", diff)
	}
}

func TestSubmit_HandlerErrorIsWrapped(t *testing.T) {
	sentinel := errors.New("boom")
	f := form.New([]model.Field{{Name: "note", Kind: model.KindText}})

	result, err := f.Submit(context.Background(), url.Values{}, func(context.Context, model.Values) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped sentinel, got %v", err)
	}
	if result.Submitted {
		t.Fatalf("failed handler must not mark the submission as submitted")
	}
	if msg := form.ErrorMessage(err); msg != "form: submit: boom" {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestDefaults_OverlayInitialValues(t *testing.T) {
	fields := []model.Field{
		{Name: "remember", Kind: model.KindCheckbox, Default: true},
		{Name: "email", Kind: model.KindText},
	}
	f := form.New(fields, form.WithInitialValues(model.Values{"email": "user@example.com"}))

	want := model.Values{"remember": true, "email": "user@example.com"}
	if diff := cmp.Diff(want, f.Defaults()); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestModel_CarriesOptions(t *testing.T) {
	f := form.New(demoFields(), form.WithID("demo"), form.WithTitle("Profile"), form.WithAction("PATCH", "/profile"))

	got := f.Model()
	got.Fields = nil
	want := model.FormModel{ID: "demo", Title: "Profile", Method: "PATCH", Action: "/profile"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("model mismatch (-want +got):\n%s", diff)
	}
	if len(f.Model().Fields) != len(demoFields()) {
		t.Fatalf("expected %d fields", len(demoFields()))
	}
}
