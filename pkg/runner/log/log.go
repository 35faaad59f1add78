package log

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/printers"
	"tableflip.dev/planner/pkg/state"
)

// Log prints calendar views around On.
type Log struct {
	Store *state.Store
	Week  bool
	Month bool
	Year  bool
	On    time.Time
	Out   io.Writer
}

func (n *Log) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not log, no state store")
	}
	pp := printers.PrettyPrint{Out: n.Out}

	marks := func(date string) (string, int) {
		return n.Store.GetCellMark(date), len(n.Store.GetTodosForDate(date))
	}

	// Year view.
	if n.Year {
		pp.Title(n.On.Format("2006"))
		pp.PrintYear(n.On.Year(), marks)
	}

	// Calendar view.
	if n.Month {
		pp.Title(n.On.Format("January, 2006"))
		pp.PrintMonth(n.On, marks)
	}

	// Week view, the default.
	if n.Week || (!n.Month && !n.Year) {
		start := model.MondayOf(n.On)
		pp.Title("Week of " + model.FormatDate(start))
		pp.Week(start, n.Store.GetDay)
	}
	return nil
}
