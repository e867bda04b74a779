package validation_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgrid/pkg/model"
	"github.com/goliatone/go-formgrid/pkg/validation"
)

func TestValidate_RequiredUsesCustomMessage(t *testing.T) {
	fields := []model.Field{
		{Name: "fullName", Kind: model.KindText, Rules: model.Rules{Required: model.RequiredMessage("Name is required")}},
		{Name: "email", Kind: model.KindText, Rules: model.Rules{Required: model.IsRequired()}},
		{Name: "agree", Kind: model.KindCheckbox, Rules: model.Rules{Required: model.IsRequired()}},
		{Name: "birthday", Kind: model.KindDate, Rules: model.Rules{Required: model.IsRequired()}},
	}
	values := model.Values{"fullName": "", "email": "", "agree": false, "birthday": nil}

	got := validation.Validate(fields, values)
	want := validation.Errors{
		"fullName": "Name is required",
		"email":    validation.FallbackMessage,
		"agree":    validation.FallbackMessage,
		"birthday": validation.FallbackMessage,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_NumberBounds(t *testing.T) {
	age := model.Field{Name: "age", Kind: model.KindNumber, Rules: model.Rules{Min: model.Float(1), Max: model.Float(120)}}

	cases := []struct {
		name  string
		value any
		ok    bool
	}{
		{"within", float64(42), true},
		{"lower bound", float64(1), true},
		{"upper bound", float64(120), true},
		{"too old", float64(150), false},
		{"too young", float64(0), false},
		{"blank skips bounds", nil, true},
		{"unparsable", "old", false},
		{"not a number", math.NaN(), false},
		{"infinite", math.Inf(1), false},
		{"raw NaN", "NaN", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			message, ok := validation.Field(age, tc.value)
			if ok != tc.ok {
				t.Fatalf("Field(%v) ok=%v want %v (message %q)", tc.value, ok, tc.ok, message)
			}
			if !ok && message != validation.FallbackMessage {
				t.Fatalf("expected fallback message, got %q", message)
			}
		})
	}
}

func TestValidate_StringRules(t *testing.T) {
	email := model.Field{Name: "email", Kind: model.KindText, Rules: model.Rules{
		Required: model.RequiredMessage("Email is required"),
		Pattern:  `^[^\s@]+@[^\s@]+\.[^\s@]+$`,
	}}
	password := model.Field{Name: "password", Kind: model.KindPassword, Rules: model.Rules{
		Required:  model.RequiredMessage("Password is required"),
		MinLength: model.Int(6),
		MaxLength: model.Int(12),
	}}

	if msg, ok := validation.Field(email, "not-an-email"); ok || msg != validation.FallbackMessage {
		t.Fatalf("expected pattern violation, got ok=%v msg=%q", ok, msg)
	}
	if _, ok := validation.Field(email, "user@example.com"); !ok {
		t.Fatalf("expected valid email")
	}
	if msg, ok := validation.Field(email, ""); ok || msg != "Email is required" {
		t.Fatalf("expected required message, got ok=%v msg=%q", ok, msg)
	}
	if _, ok := validation.Field(password, "12345"); ok {
		t.Fatalf("expected minLength violation")
	}
	if _, ok := validation.Field(password, "1234567890123"); ok {
		t.Fatalf("expected maxLength violation")
	}
	if _, ok := validation.Field(password, "password"); !ok {
		t.Fatalf("expected valid password")
	}
}

func TestValidate_ChoiceMustMatchOption(t *testing.T) {
	country := model.Field{Name: "country", Kind: model.KindDropdown, Options: []model.Option{
		{Label: "USA", Value: "us"},
		{Label: "Japan", Value: "jp"},
	}}
	rating := model.Field{Name: "rating", Kind: model.KindRadio, Options: []model.Option{
		{Label: "One", Value: float64(1)},
		{Label: "Two", Value: float64(2)},
	}}
	free := model.Field{Name: "free", Kind: model.KindRadio}

	if _, ok := validation.Field(country, "jp"); !ok {
		t.Fatalf("expected listed option to pass")
	}
	if msg, ok := validation.Field(country, "zz"); ok || msg != validation.FallbackMessage {
		t.Fatalf("expected unlisted option to fail, got ok=%v msg=%q", ok, msg)
	}
	if _, ok := validation.Field(country, ""); !ok {
		t.Fatalf("expected empty optional choice to pass")
	}
	if _, ok := validation.Field(rating, "2"); !ok {
		t.Fatalf("expected numeric option matched by string form")
	}
	if _, ok := validation.Field(rating, "3"); ok {
		t.Fatalf("expected unlisted numeric option to fail")
	}
	if _, ok := validation.Field(free, "anything"); !ok {
		t.Fatalf("expected choice without options to pass")
	}
}

func TestValidate_OnlyOffendingFieldsReported(t *testing.T) {
	fields := []model.Field{
		{Name: "fullName", Kind: model.KindText, Rules: model.Rules{Required: model.RequiredMessage("Name is required")}},
		{Name: "age", Kind: model.KindNumber, Rules: model.Rules{Min: model.Float(1), Max: model.Float(120)}},
		{Name: "birthday", Kind: model.KindDate},
		{Name: "mystery", Kind: model.FieldKind("slider"), Rules: model.Rules{Required: model.IsRequired()}},
	}
	values := model.Values{
		"fullName": "Ada",
		"age":      float64(150),
		"birthday": time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
	}

	errs := validation.Validate(fields, values)
	if diff := cmp.Diff([]string{"age"}, errs.Fields()); diff != "" {
		t.Fatalf("failing fields mismatch (-want +got):\n%s", diff)
	}
	if errs.Lists()["age"][0] != validation.FallbackMessage {
		t.Fatalf("unexpected lists: %v", errs.Lists())
	}
}

func TestValidate_NoErrorsReturnsNil(t *testing.T) {
	fields := []model.Field{{Name: "nickname", Kind: model.KindText}}
	if errs := validation.Validate(fields, model.Values{"nickname": ""}); errs != nil || !errs.Empty() {
		t.Fatalf("expected nil errors, got %v", errs)
	}
}
