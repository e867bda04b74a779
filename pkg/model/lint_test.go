package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formgrid/pkg/model"
)

func TestLint_ReportsSchemaViolations(t *testing.T) {
	fields := []model.Field{
		{Name: "country", Kind: model.KindDropdown},
		{Name: "country", Kind: model.KindText},
		{Name: "", Kind: model.KindText},
		{Name: "widget", Kind: model.FieldKind("slider")},
		{Name: "agree", Kind: model.KindCheckbox, Default: "yes please"},
		{Name: "age", Kind: model.KindNumber, Rules: model.Rules{Min: model.Float(10), Max: model.Float(1)}},
		{Name: "code", Kind: model.KindText, Rules: model.Rules{Pattern: "(["}},
		{Name: "gender", Kind: model.KindRadio, Default: "robot", Options: []model.Option{{Label: "Other", Value: "other"}}},
	}

	issues := model.Lint(fields)
	got := make([]string, 0, len(issues))
	for _, issue := range issues {
		got = append(got, issue.Field)
	}
	want := []string{"country", "country", "", "widget", "agree", "age", "code", "gender"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lint fields mismatch (-want +got):\n%s\nissues: %v", diff, issues)
	}
}

func TestLint_CleanSchema(t *testing.T) {
	fields := []model.Field{
		{Name: "fullName", Kind: model.KindText, Rules: model.Rules{Required: model.RequiredMessage("Name is required")}},
		{Name: "age", Kind: model.KindNumber, Default: 18, Rules: model.Rules{Min: model.Float(1), Max: model.Float(120)}},
		{Name: "country", Kind: model.KindDropdown, Default: "us", Options: []model.Option{{Label: "USA", Value: "us"}}},
		{Name: "birthday", Kind: model.KindDate, Default: "2000-01-01"},
	}
	if issues := model.Lint(fields); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}
