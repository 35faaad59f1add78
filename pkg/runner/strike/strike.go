// Package strike removes todos that are no longer relevant.
package strike

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/state"
)

// Strike deletes a todo from a date, or from the backlog when Date is empty.
type Strike struct {
	Store *state.Store
	Date  string
	ID    string
	Out   io.Writer
}

func (n *Strike) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not strike, no state store")
	}
	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}

	if n.Date == "" {
		if err := n.Store.DeleteBacklogTodo(n.ID); err != nil {
			return err
		}
		pp.Backlog(n.Store.BacklogTodos())
		return nil
	}

	if err := n.Store.DeleteTodoForDate(n.Date, n.ID); err != nil {
		return err
	}
	pp.Title(n.Date)
	pp.Todos(n.Store.GetTodosForDate(n.Date)...)
	return nil
}
