package grid

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formgrid/pkg/render"
	rendertemplate "github.com/goliatone/go-formgrid/pkg/render/template"
	gotemplate "github.com/goliatone/go-formgrid/pkg/render/template/gotemplate"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded grid templates.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// HTMLOption configures an HTMLRenderer.
type HTMLOption func(*HTMLRenderer)

// WithPolicy replaces the sanitizer applied to custom cell markup.
func WithPolicy(policy *bluemonday.Policy) HTMLOption {
	return func(r *HTMLRenderer) {
		if policy != nil {
			r.policy = policy
		}
	}
}

// HTMLRenderer turns a View into an HTML table whose actions submit POST
// forms.
type HTMLRenderer struct {
	templates rendertemplate.TemplateRenderer
	policy    *bluemonday.Policy
}

// HTMLOptions carry per-request rendering data.
type HTMLOptions struct {
	ID string
	// ActionPath is the prefix of the action endpoints; actions post to
	// ActionPath + "/add", "/edit" and "/delete". Edit and delete carry the
	// row id in the "id" field.
	ActionPath string
	Hidden     map[string]string
}

// NewHTMLRenderer builds a renderer over the embedded templates with the UGC
// sanitizer policy.
func NewHTMLRenderer(options ...HTMLOption) (*HTMLRenderer, error) {
	r := &HTMLRenderer{policy: bluemonday.UGCPolicy()}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	engine, err := gotemplate.New(
		gotemplate.WithName("grid"),
		gotemplate.WithFS(TemplatesFS()),
	)
	if err != nil {
		return nil, fmt.Errorf("grid: configure template renderer: %w", err)
	}
	r.templates = engine
	return r, nil
}

// ContentType reports the output media type.
func (r *HTMLRenderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the table markup.
func (r *HTMLRenderer) Render(ctx context.Context, view View, opts HTMLOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("grid: %w", err)
	}

	base := strings.TrimRight(strings.TrimSpace(opts.ActionPath), "/")
	rows := make([]any, 0, len(view.Rows))
	for _, row := range view.Rows {
		cells := make([]any, 0, len(row.Cells))
		for _, cell := range row.Cells {
			entry := map[string]any{"text": cell.Text, "raw": cell.Raw}
			if cell.Raw {
				entry["html"] = r.policy.Sanitize(cell.HTML)
			}
			cells = append(cells, entry)
		}
		rows = append(rows, map[string]any{"id": row.ID, "cells": cells})
	}

	headers := make([]any, 0, len(view.Headers))
	for _, header := range view.Headers {
		headers = append(headers, map[string]any{"key": header.Key, "label": header.Label, "width": header.Width})
	}

	hidden := make([]any, 0, len(opts.Hidden))
	for _, field := range render.SortedHiddenFields(opts.Hidden) {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	data := map[string]any{
		"id":           opts.ID,
		"title":        view.Title,
		"headers":      headers,
		"rows":         rows,
		"empty":        view.Empty(),
		"emptyText":    view.EmptyText,
		"colSpan":      view.ColSpan(),
		"showAdd":      view.ShowAdd,
		"showEdit":     view.ShowEdit,
		"showDelete":   view.ShowDelete,
		"hasActions":   view.HasActions,
		"actionsLabel": view.ActionsLabel,
		"actionsWidth": view.ActionsWidth,
		"hidden":       hidden,
		"actions": map[string]any{
			"add":    base + "/" + string(ActionAdd),
			"edit":   base + "/" + string(ActionEdit),
			"delete": base + "/" + string(ActionDelete),
		},
	}

	out, err := r.templates.RenderTemplate("templates/grid.tmpl", map[string]any{"grid": data})
	if err != nil {
		return nil, fmt.Errorf("grid: render template: %w", err)
	}
	return []byte(out), nil
}
