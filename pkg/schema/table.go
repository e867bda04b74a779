package schema

import (
	"strings"

	"github.com/goliatone/go-formgrid/pkg/grid"
)

// Table is a static grid definition: columns plus the rows to show.
type Table struct {
	Title        string           `json:"title,omitempty" yaml:"title,omitempty"`
	IDKey        string           `json:"idKey,omitempty" yaml:"idKey,omitempty"`
	ActionsLabel string           `json:"actionsLabel,omitempty" yaml:"actionsLabel,omitempty"`
	Columns      []TableColumn    `json:"columns" yaml:"columns"`
	Rows         []map[string]any `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// TableColumn mirrors grid.Column without the render hook.
type TableColumn struct {
	Key    string `json:"key" yaml:"key"`
	Header string `json:"header,omitempty" yaml:"header,omitempty"`
	Width  int    `json:"width,omitempty" yaml:"width,omitempty"`
}

// DecodeTable parses a table schema document.
func DecodeTable(doc Document) (Table, error) {
	var table Table
	if err := decode(doc, &table); err != nil {
		return Table{}, err
	}
	return table, nil
}

// Grid builds a read-only grid over the table rows. Rows are keyed by the
// IDKey property when set, otherwise by position.
func (t Table) Grid() grid.Grid[map[string]any] {
	columns := make([]grid.Column[map[string]any], 0, len(t.Columns))
	for _, column := range t.Columns {
		columns = append(columns, grid.Column[map[string]any]{
			Key:    column.Key,
			Header: column.Header,
			Width:  column.Width,
		})
	}
	g := grid.Grid[map[string]any]{
		Title:        t.Title,
		Columns:      columns,
		ActionsLabel: t.ActionsLabel,
	}
	if key := strings.TrimSpace(t.IDKey); key != "" {
		g.RowID = func(row map[string]any) string {
			value, _ := grid.Lookup(row, key)
			return grid.FormatCell(value)
		}
	}
	return g
}
