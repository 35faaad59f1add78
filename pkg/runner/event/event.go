// Package event contains runners for project event commands.
package event

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/state"
)

// Event adds, moves, deletes or lists project events.
type Event struct {
	Store   *state.Store
	Action  Action
	ID      string
	LabelID string
	Start   string
	End     string
	// On limits List to events covering a date.
	On     string
	ShowID bool
	Out    io.Writer
}

// Action is an event command.
type Action string

const (
	List   Action = "list"
	Add    Action = "add"
	Move   Action = "move"
	Delete Action = "delete"
)

func (e *Event) Do(ctx context.Context) error {
	if e.Store == nil {
		return errors.New("event: no state store")
	}
	end := e.End
	if end == "" {
		end = e.Start
	}

	switch e.Action {
	case "", List:
	case Add:
		if _, err := e.Store.AddEvent(model.ProjectEvent{LabelID: e.LabelID, StartDate: e.Start, EndDate: end}); err != nil {
			return err
		}
	case Move:
		if err := e.Store.UpdateEventDates(e.ID, e.Start, end); err != nil {
			return err
		}
	case Delete:
		if err := e.Store.DeleteEvent(e.ID); err != nil {
			return err
		}
	default:
		return fmt.Errorf("event: unknown action %q", e.Action)
	}

	yearly := e.Store.GetState().Yearly
	events := yearly.Events
	if e.On != "" {
		events = e.Store.EventsOn(e.On)
	}
	pp := printers.PrettyPrint{ShowID: e.ShowID, Out: e.Out}
	pp.Events(events, yearly.Labels)
	return nil
}
