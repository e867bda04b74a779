package grid

import (
	"fmt"
	"reflect"
	"strings"
)

// View is the renderer-independent snapshot of a grid over a set of rows.
type View struct {
	Title        string       `json:"title"`
	Headers      []HeaderView `json:"headers"`
	Rows         []RowView    `json:"rows"`
	ShowAdd      bool         `json:"showAdd"`
	ShowEdit     bool         `json:"showEdit"`
	ShowDelete   bool         `json:"showDelete"`
	HasActions   bool         `json:"hasActions"`
	ActionsLabel string       `json:"actionsLabel"`
	ActionsWidth int          `json:"actionsWidth"`
	EmptyText    string       `json:"emptyText"`
}

// HeaderView is one column header.
type HeaderView struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Width int    `json:"width,omitempty"`
}

// RowView is one body row.
type RowView struct {
	ID    string     `json:"id"`
	Cells []CellView `json:"cells"`
}

// CellView holds either plain text or unsanitized HTML from a column's
// Render function.
type CellView struct {
	Text string `json:"text"`
	HTML string `json:"html,omitempty"`
	Raw  bool   `json:"raw,omitempty"`
}

// Empty reports whether the placeholder row is shown.
func (v View) Empty() bool {
	return len(v.Rows) == 0
}

// ColSpan is the number of cells a full-width row spans.
func (v View) ColSpan() int {
	span := len(v.Headers)
	if v.HasActions {
		span++
	}
	return span
}

// View snapshots the grid over rows, preserving their order.
func (g Grid[T]) View(rows []T) View {
	view := View{
		Title:        strings.TrimSpace(g.Title),
		ShowAdd:      g.OnAdd != nil,
		ShowEdit:     g.OnEdit != nil,
		ShowDelete:   g.OnDelete != nil,
		HasActions:   g.HasActions(),
		ActionsLabel: g.actionsLabel(),
		ActionsWidth: ActionsWidth,
		EmptyText:    g.emptyText(),
		Headers:      make([]HeaderView, 0, len(g.Columns)),
		Rows:         make([]RowView, 0, len(rows)),
	}
	for _, column := range g.Columns {
		label := column.Header
		if strings.TrimSpace(label) == "" {
			label = column.Key
		}
		view.Headers = append(view.Headers, HeaderView{Key: column.Key, Label: label, Width: column.Width})
	}

	for idx, row := range rows {
		id := fmt.Sprint(idx)
		if g.RowID != nil {
			id = g.RowID(row)
		}
		cells := make([]CellView, 0, len(g.Columns))
		for _, column := range g.Columns {
			if column.Render != nil {
				cells = append(cells, CellView{HTML: column.Render(row), Raw: true})
				continue
			}
			value, _ := Lookup(row, column.Key)
			cells = append(cells, CellView{Text: FormatCell(value)})
		}
		view.Rows = append(view.Rows, RowView{ID: id, Cells: cells})
	}
	return view
}

// FormatCell renders a property value as cell text; nil becomes "".
func FormatCell(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(value)
}

// Lookup resolves key on a row. Maps are indexed by key; structs match the
// json tag name first and the field name (case-insensitively) second.
// Pointers are followed.
func Lookup(row any, key string) (any, bool) {
	rv := reflect.ValueOf(row)
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil, false
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		value := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !value.IsValid() {
			return nil, false
		}
		return value.Interface(), true
	case reflect.Struct:
		idx, ok := structFieldIndex(rv.Type(), key)
		if !ok {
			return nil, false
		}
		return rv.Field(idx).Interface(), true
	default:
		return nil, false
	}
}

func structFieldIndex(t reflect.Type, key string) (int, bool) {
	fallback := -1
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		if tag, _, _ := strings.Cut(field.Tag.Get("json"), ","); tag != "" && tag != "-" {
			if tag == key {
				return i, true
			}
		}
		if fallback < 0 && strings.EqualFold(field.Name, key) {
			fallback = i
		}
	}
	return fallback, fallback >= 0
}
