// Package add provides the runner that records new todos.
package add

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/state"
)

// Add records a todo on a date, or in the backlog when Backlog is set.
type Add struct {
	Store    *state.Store
	Date     string
	Text     string
	Backlog  bool
	Priority int
	ShowID   bool
	Out      io.Writer
}

// Do adds the todo and reprints the list it landed in.
func (n *Add) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not add, no state store")
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}

	if n.Backlog {
		if _, err := n.Store.AddBacklogTodo(n.Text, n.Priority); err != nil {
			return err
		}
		pp.Backlog(n.Store.BacklogTodos())
		return nil
	}

	if _, err := n.Store.AddTodoForDate(n.Date, n.Text); err != nil {
		return err
	}
	pp.Title(n.Date)
	pp.Todos(n.Store.GetTodosForDate(n.Date)...)
	return nil
}
