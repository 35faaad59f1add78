package get

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/state"
)

// Get prints one day, or the backlog when Backlog is set.
type Get struct {
	Store   *state.Store
	Date    string
	Backlog bool
	ShowID  bool
	Out     io.Writer
}

func (n *Get) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not get, no state store")
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}

	if n.Backlog {
		pp.Backlog(n.Store.BacklogTodos())
		return nil
	}

	pp.Day(n.Date, n.Store.GetDay(n.Date))
	if evs := n.Store.EventsOn(n.Date); len(evs) > 0 {
		pp.Events(evs, n.Store.GetState().Yearly.Labels)
	}
	return nil
}
