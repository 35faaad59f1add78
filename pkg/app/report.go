package app

import (
	"time"

	"tableflip.dev/planner/pkg/model"
)

// ReportDay captures the todos recorded on one date.
type ReportDay struct {
	Date      string
	Completed []model.DayTodo
	Open      []model.DayTodo
	Mark      string
}

// ReportResult encapsulates a todo report for a window of days.
type ReportResult struct {
	Since time.Time
	Until time.Time
	Days  []ReportDay
	Total int
	Done  int
}

// Report walks the resident year from since to until, inclusive, and
// groups each day's todos by completion. Days without todos or a mark are
// skipped. Dates outside the resident year read as empty.
func (s *Service) Report(since, until time.Time) ReportResult {
	since, until = midnight(since), midnight(until)
	if since.After(until) {
		since, until = until, since
	}
	res := ReportResult{Since: since, Until: until}
	for d := since; !d.After(until); d = d.AddDate(0, 0, 1) {
		date := model.FormatDate(d)
		day := s.Store.GetDay(date)
		rd := ReportDay{Date: date, Mark: s.Store.GetCellMark(date)}
		for _, t := range day.Todos {
			if t.Completed {
				rd.Completed = append(rd.Completed, t)
			} else {
				rd.Open = append(rd.Open, t)
			}
		}
		if len(day.Todos) == 0 && rd.Mark == "" {
			continue
		}
		res.Total += len(day.Todos)
		res.Done += len(rd.Completed)
		res.Days = append(res.Days, rd)
	}
	return res
}

// Week reports the seven days starting at the resident week cursor.
func (s *Service) Week() ReportResult {
	start := s.Store.WeekStart()
	return s.Report(start, start.AddDate(0, 0, 6))
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
