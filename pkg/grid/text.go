package grid

import (
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = bluemonday.StrictPolicy()

// RenderText draws the view as a bordered terminal table. Custom cell markup
// is reduced to its text content. Action buttons have no terminal form; the
// actions column lists the enabled actions instead.
func RenderText(view View) string {
	headers := make([]string, 0, view.ColSpan())
	for _, header := range view.Headers {
		headers = append(headers, header.Label)
	}
	if view.HasActions {
		headers = append(headers, view.ActionsLabel)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)

	if view.Empty() {
		placeholder := make([]string, len(headers))
		if len(placeholder) > 0 {
			placeholder[0] = view.EmptyText
		}
		t = t.Row(placeholder...)
	}
	actions := enabledActions(view)
	for _, row := range view.Rows {
		cells := make([]string, 0, len(headers))
		for _, cell := range row.Cells {
			if cell.Raw {
				cells = append(cells, plainText(cell.HTML))
				continue
			}
			cells = append(cells, cell.Text)
		}
		if view.HasActions {
			cells = append(cells, actions)
		}
		t = t.Row(cells...)
	}

	var b strings.Builder
	if view.Title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(view.Title))
		b.WriteByte('\n')
	}
	b.WriteString(t.String())
	b.WriteByte('\n')
	return b.String()
}

func enabledActions(view View) string {
	var names []string
	if view.ShowEdit {
		names = append(names, "edit")
	}
	if view.ShowDelete {
		names = append(names, "delete")
	}
	return strings.Join(names, "/")
}

func plainText(markup string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(markup)))
}
