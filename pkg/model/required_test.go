package model_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formgrid/pkg/model"
)

func TestRequired_AcceptsBooleanOrMessage(t *testing.T) {
	doc := `
- name: fullName
  kind: text
  validation:
    required: Name is required
- name: email
  kind: text
  validation:
    required: true
- name: nickname
  kind: text
`
	var fields []model.Field
	if err := yaml.Unmarshal([]byte(doc), &fields); err != nil {
		t.Fatalf("unmarshal yaml: %v", err)
	}

	got := []model.Required{fields[0].Rules.Required, fields[1].Rules.Required, fields[2].Rules.Required}
	want := []model.Required{
		{Enabled: true, Message: "Name is required"},
		{Enabled: true},
		{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
}

func TestRequired_JSONRoundTripKeepsMessage(t *testing.T) {
	var rules model.Rules
	if err := json.Unmarshal([]byte(`{"required":"Email is required","minLength":6}`), &rules); err != nil {
		t.Fatalf("unmarshal json: %v", err)
	}
	if !rules.Required.Enabled || rules.Required.Message != "Email is required" {
		t.Fatalf("unexpected required rule: %+v", rules.Required)
	}
	if rules.MinLength == nil || *rules.MinLength != 6 {
		t.Fatalf("expected minLength 6, got %v", rules.MinLength)
	}

	if err := json.Unmarshal([]byte(`{"required":42}`), &rules); err == nil {
		t.Fatalf("expected error for numeric required value")
	}
}

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"fullName":   "Full Name",
		"birth_date": "Birth Date",
		"address2":   "Address 2",
		"email":      "Email",
	}
	for in, want := range cases {
		if got := model.DefaultLabeler(in); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", in, got, want)
		}
	}
}
