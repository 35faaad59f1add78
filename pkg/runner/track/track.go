// Package track provides runners that annotate calendar days with marks.
package track

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/state"
)

// Track sets the cell mark of a date. "none" or "" clears it.
type Track struct {
	Store *state.Store
	Date  string
	Mark  string
	Out   io.Writer
}

// Do writes the mark and reprints the month around it.
func (n *Track) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not track, no state store")
	}
	if err := n.Store.SetCellMark(n.Date, n.Mark); err != nil {
		return err
	}
	on, err := model.ParseDate(n.Date)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	pp.PrintMonth(on, func(date string) (string, int) {
		return n.Store.GetCellMark(date), len(n.Store.GetTodosForDate(date))
	})
	return nil
}
