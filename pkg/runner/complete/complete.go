// Package complete provides the runner logic for marking todos complete.
package complete

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/state"
)

// Complete marks a todo of a date as completed, or open again with Undo.
type Complete struct {
	Store *state.Store
	Date  string
	ID    string
	Undo  bool
	Out   io.Writer
}

// Do executes the completion for the configured todo.
func (n *Complete) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not complete, no state store")
	}
	done := !n.Undo
	if err := n.Store.UpdateTodoPropertyForDate(n.Date, n.ID, state.TodoUpdate{Completed: &done}); err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true, Out: n.Out}
	pp.NewLine()
	pp.Title(n.Date)
	pp.Todos(n.Store.GetTodosForDate(n.Date)...)
	return nil
}
