// Package grid renders typed rows as a table with optional add, edit and
// delete affordances. The grid never owns or mutates rows: callers pass the
// current rows on every View and Dispatch and react to actions in their
// callbacks.
package grid

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultActionsLabel heads the actions column.
	DefaultActionsLabel = "Actions"
	// DefaultEmptyText fills the placeholder row of an empty grid.
	DefaultEmptyText = "No data"
	// ActionsWidth is the width of the actions column in pixels.
	ActionsWidth = 140
)

// Action names a grid affordance.
type Action string

const (
	ActionAdd    Action = "add"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

var (
	// ErrUnknownAction is returned by ParseAction and Dispatch for names other
	// than add, edit and delete.
	ErrUnknownAction = errors.New("grid: unknown action")
	// ErrActionDisabled is returned when the grid has no callback for an action.
	ErrActionDisabled = errors.New("grid: action not enabled")
	// ErrRowNotFound is returned when no row carries the requested id.
	ErrRowNotFound = errors.New("grid: row not found")
)

// ParseAction validates an action name.
func ParseAction(raw string) (Action, error) {
	switch action := Action(strings.ToLower(strings.TrimSpace(raw))); action {
	case ActionAdd, ActionEdit, ActionDelete:
		return action, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, raw)
	}
}

// Column describes one table column. Render, when set, returns HTML for the
// cell; it is sanitized before display. Otherwise the row property named by
// Key is shown as text.
type Column[T any] struct {
	Key    string
	Header string
	Width  int
	Render func(row T) string
}

// Grid configures a table over rows of type T.
type Grid[T any] struct {
	Title   string
	Columns []Column[T]
	// RowID returns the stable identity of a row. It keys rows in markup
	// and action targets, never display.
	RowID func(row T) string

	OnAdd    func(ctx context.Context) error
	OnEdit   func(ctx context.Context, row T) error
	OnDelete func(ctx context.Context, row T) error

	// ActionsLabel defaults to DefaultActionsLabel.
	ActionsLabel string
	// EmptyText defaults to DefaultEmptyText.
	EmptyText string
}

// HasActions reports whether rows carry an actions cell.
func (g Grid[T]) HasActions() bool {
	return g.OnEdit != nil || g.OnDelete != nil
}

// Dispatch routes an action to its callback. Edit and delete locate the row
// by id and pass the full row; rows itself is never modified.
func (g Grid[T]) Dispatch(ctx context.Context, action Action, id string, rows []T) error {
	switch action {
	case ActionAdd:
		if g.OnAdd == nil {
			return fmt.Errorf("%w: %s", ErrActionDisabled, action)
		}
		return g.OnAdd(ctx)
	case ActionEdit, ActionDelete:
		handler := g.OnEdit
		if action == ActionDelete {
			handler = g.OnDelete
		}
		if handler == nil {
			return fmt.Errorf("%w: %s", ErrActionDisabled, action)
		}
		row, ok := g.Find(id, rows)
		if !ok {
			return fmt.Errorf("%w: %q", ErrRowNotFound, id)
		}
		return handler(ctx, row)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

// Find returns the first row whose id matches.
func (g Grid[T]) Find(id string, rows []T) (T, bool) {
	var zero T
	if g.RowID == nil {
		return zero, false
	}
	for _, row := range rows {
		if g.RowID(row) == id {
			return row, true
		}
	}
	return zero, false
}

func (g Grid[T]) actionsLabel() string {
	if label := strings.TrimSpace(g.ActionsLabel); label != "" {
		return label
	}
	return DefaultActionsLabel
}

func (g Grid[T]) emptyText() string {
	if text := strings.TrimSpace(g.EmptyText); text != "" {
		return text
	}
	return DefaultEmptyText
}
