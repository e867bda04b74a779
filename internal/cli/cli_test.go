package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
)

const contactSchema = `
id: contact
title: Contact us
fields:
  - name: email
    kind: text
    label: Email
    validation:
      required: true
  - name: topic
    kind: dropdown
    options:
      - {label: Sales, value: sales}
      - {label: Support, value: support}
`

const brokenSchema = `
fields:
  - name: email
    kind: text
  - name: email
    kind: text
  - name: color
    kind: slider
`

const usersTable = `
title: Users
idKey: id
columns:
  - {key: name, header: Name}
  - {key: email, header: Email}
rows:
  - {id: 1, name: Alice, email: alice@example.com}
  - {id: 2, name: Bob, email: bob@example.com}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := newApp("test", &out).Run(context.Background(), append([]string{"formgrid"}, args...))
	return out.String(), err
}

func TestRender_WritesHTML(t *testing.T) {
	path := writeFile(t, "contact.yaml", contactSchema)

	out, err := run(t, "render", "--layout", "stack", "--submit-label", "Send", path)
	gt.NoError(t, err).Required()
	gt.String(t, out).Contains(`<form id="contact"`)
	gt.String(t, out).Contains("fg-form--stack")
	gt.String(t, out).Contains("Send")
	gt.String(t, out).Contains("Support")
}

func TestRender_PresetAndOutputFile(t *testing.T) {
	path := writeFile(t, "contact.yaml", contactSchema)
	preset := writeFile(t, "preset.yaml", "title: Get in touch\nfields:\n  email:\n    label: Work email\n")
	target := filepath.Join(t.TempDir(), "contact.html")

	out, err := run(t, "render", "--preset", preset, "-o", target, path)
	gt.NoError(t, err).Required()
	gt.Value(t, out).Equal("")

	data, err := os.ReadFile(target)
	gt.NoError(t, err).Required()
	gt.String(t, string(data)).Contains("Get in touch")
	gt.String(t, string(data)).Contains("Work email")
}

func TestRender_Errors(t *testing.T) {
	_, err := run(t, "render")
	gt.Bool(t, errors.Is(err, errSchemaRequired)).True()

	_, err = run(t, "render", filepath.Join(t.TempDir(), "missing.yaml"))
	gt.Error(t, err)

	path := writeFile(t, "contact.yaml", contactSchema)
	_, err = run(t, "render", "--renderer", "pdf", path)
	gt.Error(t, err)
}

func TestGrid_TextAndHTML(t *testing.T) {
	path := writeFile(t, "users.yaml", usersTable)

	out, err := run(t, "grid", path)
	gt.NoError(t, err).Required()
	gt.String(t, out).Contains("Users")
	gt.String(t, out).Contains("Alice")
	gt.String(t, out).Contains("bob@example.com")

	out, err = run(t, "grid", "--html", path)
	gt.NoError(t, err).Required()
	gt.String(t, out).Contains("<table")
	gt.String(t, out).Contains("Alice")
	gt.String(t, out).NotContains("Actions")
}

func TestLint(t *testing.T) {
	clean := writeFile(t, "contact.yaml", contactSchema)
	out, err := run(t, "lint", clean)
	gt.NoError(t, err).Required()
	gt.String(t, out).Contains("ok (2 fields)")

	broken := writeFile(t, "broken.yaml", brokenSchema)
	out, err = run(t, "lint", broken)
	gt.Bool(t, errors.Is(err, errLintIssues)).True()
	gt.String(t, out).Contains("email: duplicate field name")
	gt.String(t, out).Contains(`color: unknown kind "slider"`)
}

func TestRootFlags_RejectUnknownLogLevel(t *testing.T) {
	path := writeFile(t, "contact.yaml", contactSchema)
	_, err := run(t, "--log-level", "loud", "lint", path)
	gt.Error(t, err)
}

func TestRender_ServerErrors(t *testing.T) {
	path := writeFile(t, "contact.yaml", contactSchema)
	errs := writeFile(t, "errors.yaml", "email: [Email is already registered]\nbase: [Please fix the highlighted fields]\n")

	out, err := run(t, "render", "--errors", errs, path)
	gt.NoError(t, err).Required()
	gt.String(t, out).Contains("Email is already registered")
	gt.String(t, out).Contains("Please fix the highlighted fields")
}
