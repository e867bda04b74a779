package template_test

import (
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formgrid/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formgrid/pkg/testsupport"
)

var templatesFS = fstest.MapFS{
	"hello.tmpl":      {Data: []byte("Hello {{ name }}!")},
	"use-global.tmpl": {Data: []byte("env={{ settings.env }}")},
	"use-func.tmpl":   {Data: []byte("{{ helpers.greet(name) }}")},
	"escape.tmpl":     {Data: []byte("{{ markup }}|{{ markup|safe }}")},
	"struct.tmpl":     {Data: []byte("{{ view.title }}:{% for row in view.rows %}[{{ row }}]{% endfor %}")},
}

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	if want := "Hello Ada!"; result != want || written != want {
		t.Fatalf("render template mismatch\nwant: %q\n got: %q (writer %q)", want, result, written)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "env=staging"; result != want {
		t.Fatalf("want %q, got %q", want, result)
	}
}

func TestGoTemplateEngine_FunctionValues(t *testing.T) {
	engine := newEngine(t)
	greet := func(name string) string { return "Hi " + strings.ToUpper(name) }

	result, err := engine.RenderTemplate("use-func", map[string]any{
		"helpers": map[string]any{"greet": greet},
		"name":    "ada",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "Hi ADA"; result != want {
		t.Fatalf("want %q, got %q", want, result)
	}
}

func TestGoTemplateEngine_EscapesByDefault(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("escape", map[string]any{"markup": "<b>x</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "&lt;b&gt;x&lt;/b&gt;|<b>x</b>"; result != want {
		t.Fatalf("want %q, got %q", want, result)
	}
}

func TestGoTemplateEngine_StructViewData(t *testing.T) {
	type view struct {
		Title string   `json:"title"`
		Rows  []string `json:"rows"`
	}
	engine := newEngine(t)

	result, err := engine.RenderTemplate("struct", map[string]any{"view": view{Title: "Users", Rows: []string{"a", "b"}}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := "Users:[a][b]"; result != want {
		t.Fatalf("want %q, got %q", want, result)
	}
}

func TestCSSVarsRule(t *testing.T) {
	got := gotemplate.CSSVarsRule(map[string]string{
		"color-primary": "#4f46e5",
		"--radius":      "10px",
	})
	want := ":root {\n  --color-primary: #4f46e5;\n  --radius: 10px;\n}"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestNew_RequiresTemplateSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template sources")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
