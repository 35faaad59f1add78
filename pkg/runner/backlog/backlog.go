// Package backlog contains runners for the unscheduled todo list.
package backlog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/state"
)

// Backlog edits or lists the backlog of the resident year.
type Backlog struct {
	Store    *state.Store
	Action   Action
	ID       string
	Text     string
	Priority int
	Date     string
	Order    []string
	ShowID   bool
	Out      io.Writer
}

// Action is a backlog command.
type Action string

const (
	List     Action = "list"
	Add      Action = "add"
	Edit     Action = "edit"
	Priority Action = "priority"
	Move     Action = "move"
	Delete   Action = "delete"
	Reorder  Action = "reorder"
)

func (b *Backlog) Do(ctx context.Context) error {
	if b.Store == nil {
		return errors.New("backlog: no state store")
	}
	pp := printers.PrettyPrint{ShowID: b.ShowID, Out: b.Out}

	switch b.Action {
	case "", List:
	case Add:
		if _, err := b.Store.AddBacklogTodo(b.Text, b.Priority); err != nil {
			return err
		}
	case Edit:
		if err := b.Store.UpdateBacklogTodoText(b.ID, b.Text); err != nil {
			return err
		}
	case Priority:
		if err := b.Store.UpdateBacklogTodoPriority(b.ID, b.Priority); err != nil {
			return err
		}
	case Reorder:
		if err := b.Store.ReorderBacklogTodos(b.Order); err != nil {
			return err
		}
	case Delete:
		if err := b.Store.DeleteBacklogTodo(b.ID); err != nil {
			return err
		}
	case Move:
		if _, err := b.Store.MoveBacklogTodoToCalendar(b.ID, b.Date); err != nil {
			return err
		}
		pp.Title(b.Date)
		pp.Todos(b.Store.GetTodosForDate(b.Date)...)
	default:
		return fmt.Errorf("backlog: unknown action %q", b.Action)
	}

	pp.Backlog(b.Store.BacklogTodos())
	return nil
}
