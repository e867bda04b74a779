// Package pages implements the demo application pages on top of the form
// and grid renderers: page state transitions live here, HTTP plumbing lives
// in the server package.
package pages

import (
	"context"
	"embed"
	"io/fs"

	"github.com/m-mizutani/goerr/v2"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formgrid/pkg/grid"
	"github.com/goliatone/go-formgrid/pkg/model"
	"github.com/goliatone/go-formgrid/pkg/render"
	rendertemplate "github.com/goliatone/go-formgrid/pkg/render/template"
	gotemplate "github.com/goliatone/go-formgrid/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formgrid/pkg/renderers/vanilla"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the page templates.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// Views renders page bodies and the surrounding layout.
type Views struct {
	templates rendertemplate.TemplateRenderer
	forms     render.Renderer
	grids     *grid.HTMLRenderer
	theme     *theme.RendererConfig
	assetURL  func(string) string
}

// ViewsOption configures Views.
type ViewsOption func(*Views)

// WithTheme sets the theme whose CSS variables and partial overrides apply to
// every page.
func WithTheme(cfg *theme.RendererConfig) ViewsOption {
	return func(v *Views) {
		v.theme = cfg
	}
}

// WithFormRenderer replaces the vanilla form renderer.
func WithFormRenderer(r render.Renderer) ViewsOption {
	return func(v *Views) {
		if r != nil {
			v.forms = r
		}
	}
}

// NewViews builds the page views over the embedded templates.
func NewViews(opts ...ViewsOption) (*Views, error) {
	v := &Views{}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}

	engine, err := gotemplate.New(
		gotemplate.WithName("pages"),
		gotemplate.WithFS(TemplatesFS()),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure page templates")
	}
	if v.theme != nil {
		globals := map[string]any{"theme": v.theme.Theme, "variant": v.theme.Variant}
		if len(v.theme.CSSVars) > 0 {
			globals["themeStyle"] = gotemplate.CSSVarsRule(v.theme.CSSVars)
		}
		if err := engine.GlobalContext(globals); err != nil {
			return nil, goerr.Wrap(err, "failed to register theme globals")
		}
	}
	v.templates = engine

	if v.forms == nil {
		forms, err := vanilla.New()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to configure form renderer")
		}
		v.forms = forms
	}
	grids, err := grid.NewHTMLRenderer()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure grid renderer")
	}
	v.grids = grids

	v.assetURL = func(name string) string { return "/assets/" + name }
	if v.theme != nil && v.theme.AssetURL != nil {
		v.assetURL = v.theme.AssetURL
	}
	return v, nil
}

// Page is a rendered body plus the metadata the layout needs.
type Page struct {
	Title   string
	Path    string
	Content string
}

// Layout wraps a page body in the application shell.
func (v *Views) Layout(page Page) (string, error) {
	nav := make([]any, 0, len(Navigation))
	for _, item := range Navigation {
		nav = append(nav, map[string]any{
			"href":   item.Href,
			"label":  item.Label,
			"active": item.Href == page.Path,
		})
	}

	data := map[string]any{
		"title":      page.Title,
		"content":    page.Content,
		"nav":        nav,
		"stylesheet": v.assetURL(vanilla.StylesheetName),
	}
	return v.execute("templates/layout.tmpl", "page", data)
}

// NotFound renders the body of the 404 page.
func (v *Views) NotFound(path string) (string, error) {
	return v.execute("templates/not_found.tmpl", "missing", map[string]any{"path": path})
}

// renderForm renders a form model inside a page. The layout already emits
// the theme CSS variables, so only partial overrides reach the form.
func (v *Views) renderForm(ctx context.Context, form model.FormModel, opts render.RenderOptions) (string, error) {
	if v.theme != nil {
		opts.Theme = &theme.RendererConfig{
			Theme:    v.theme.Theme,
			Variant:  v.theme.Variant,
			Partials: v.theme.Partials,
			Tokens:   v.theme.Tokens,
		}
	}
	out, err := v.forms.Render(ctx, form, opts)
	if err != nil {
		return "", goerr.Wrap(err, "failed to render form", goerr.V("form", form.ID))
	}
	return string(out), nil
}

func (v *Views) execute(name, key string, data map[string]any) (string, error) {
	out, err := v.templates.RenderTemplate(name, map[string]any{key: data})
	if err != nil {
		return "", goerr.Wrap(err, "failed to render page template", goerr.V("template", name))
	}
	return out, nil
}
