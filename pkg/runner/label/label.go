// Package label contains runners for label management commands.
package label

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/state"
)

// Label configures the label commands. Action selects what Do performs.
type Label struct {
	Store  *state.Store
	Action Action
	ID     string
	Name   string
	Color  string
	Order  []string
	ShowID bool
	Out    io.Writer
}

// Action is a label command.
type Action string

const (
	List    Action = "list"
	Add     Action = "add"
	Rename  Action = "rename"
	Recolor Action = "color"
	Delete  Action = "delete"
	Reorder Action = "reorder"
)

func (l *Label) Do(ctx context.Context) error {
	if l.Store == nil {
		return errors.New("label: no state store")
	}
	pp := printers.PrettyPrint{ShowID: l.ShowID, Out: l.Out}

	switch l.Action {
	case "", List:
	case Add:
		if _, err := l.Store.AddLabel(model.Label{Name: l.Name, Color: l.Color}); err != nil {
			return err
		}
	case Rename:
		if err := l.Store.UpdateLabelName(l.ID, l.Name); err != nil {
			return err
		}
	case Recolor:
		if err := l.Store.UpdateLabelColor(l.ID, l.Color); err != nil {
			return err
		}
	case Reorder:
		if err := l.Store.ReorderLabels(l.Order); err != nil {
			return err
		}
	case Delete:
		n, err := l.Store.DeleteLabelAndAssociatedEvents(l.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			out := l.Out
			if out == nil {
				out = color.Output
			}
			_, _ = color.New(color.Faint).Fprintf(out, "removed %d events\n", n)
		}
	default:
		return fmt.Errorf("label: unknown action %q", l.Action)
	}

	yearly := l.Store.GetState().Yearly
	pp.Labels(yearly.Labels, yearly.Events)
	return nil
}
