package formgrid

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formgrid/pkg/renderers/vanilla"
	"github.com/goliatone/go-formgrid/pkg/schema"
)

func TestGenerateHTMLFromDocument(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromFile("contact.yaml"), []byte(`
id: contact
fields:
  - name: message
    kind: text
    label: Message
`))
	out, err := GenerateHTMLFromDocument(context.Background(), doc, "", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `<form id="contact"`) || !strings.Contains(string(out), "Message") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestEmbeddedFilesystems(t *testing.T) {
	if _, err := fs.ReadFile(AssetsFS(), vanilla.StylesheetName); err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	matches, err := fs.Glob(EmbeddedTemplates(), "templates/*.tmpl")
	if err != nil || len(matches) == 0 {
		t.Fatalf("expected embedded templates, got %v (%v)", matches, err)
	}
}

func TestGenerateHTML_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "newsletter.json")
	schemaJSON := `{"id": "newsletter", "fields": [{"name": "subscribe", "kind": "checkbox", "label": "Subscribe", "defaultValue": true}]}`
	if err := os.WriteFile(path, []byte(schemaJSON), 0o600); err != nil {
		t.Fatalf("write schema: %v", err)
	}

	out, err := GenerateHTML(context.Background(), schema.SourceFromFile(path), "", "vanilla")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `<form id="newsletter"`) || !strings.Contains(string(out), "checked") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
