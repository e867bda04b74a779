package pages

import (
	"context"
	"fmt"
	"strconv"

	"github.com/m-mizutani/goerr/v2"

	"github.com/goliatone/go-formgrid/pkg/grid"
)

// User is a row of the data grid demo.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SeedUsers returns the rows every new session starts with.
func SeedUsers() []User {
	return []User{
		{ID: 1, Name: "Alice", Email: "alice@example.com"},
		{ID: 2, Name: "Bob", Email: "bob@example.com"},
	}
}

// UsersGrid configures the demo grid over the rows held in *rows. The grid
// only reads rows; the callbacks replace *rows with the updated collection.
func UsersGrid(rows *[]User) grid.Grid[User] {
	return grid.Grid[User]{
		Title: "Users",
		Columns: []grid.Column[User]{
			{Key: "name", Header: "Name"},
			{Key: "email", Header: "Email"},
		},
		RowID: func(u User) string { return strconv.Itoa(u.ID) },
		OnAdd: func(context.Context) error {
			next := 1
			if n := len(*rows); n > 0 {
				next = (*rows)[n-1].ID + 1
			}
			*rows = append(append([]User(nil), *rows...), User{
				ID:    next,
				Name:  fmt.Sprintf("User %d", next),
				Email: fmt.Sprintf("user%d@example.com", next),
			})
			return nil
		},
		OnEdit: func(_ context.Context, row User) error {
			updated := make([]User, 0, len(*rows))
			for _, u := range *rows {
				if u.ID == row.ID {
					u.Name = row.Name + " (edited)"
				}
				updated = append(updated, u)
			}
			*rows = updated
			return nil
		},
		OnDelete: func(_ context.Context, row User) error {
			kept := make([]User, 0, len(*rows))
			for _, u := range *rows {
				if u.ID != row.ID {
					kept = append(kept, u)
				}
			}
			*rows = kept
			return nil
		},
	}
}

// DispatchUsers applies a grid action to the rows held in *rows.
func DispatchUsers(ctx context.Context, rows *[]User, action grid.Action, id string) error {
	g := UsersGrid(rows)
	if err := g.Dispatch(ctx, action, id, *rows); err != nil {
		return goerr.Wrap(err, "grid action failed", goerr.V("action", action), goerr.V("id", id))
	}
	return nil
}

// DataGrid renders the data grid demo body.
func (v *Views) DataGrid(ctx context.Context, rows []User, hidden map[string]string) (string, error) {
	g := UsersGrid(&rows)
	markup, err := v.grids.Render(ctx, g.View(rows), grid.HTMLOptions{
		ID:         "users",
		ActionPath: PathDataGrid,
		Hidden:     hidden,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to render grid")
	}
	return v.execute("templates/datagrid.tmpl", "demo", map[string]any{
		"heading": "DataGrid Demo",
		"grid":    string(markup),
	})
}
