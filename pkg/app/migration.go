package app

import (
	"time"

	"tableflip.dev/planner/pkg/model"
)

// MigrationCandidate is an open todo left behind on an earlier day.
type MigrationCandidate struct {
	Date string
	Todo model.DayTodo
}

// MigrationCandidates lists open todos recorded after since and before
// until, oldest day first. A zero since starts at January 1st of the
// resident year.
func (s *Service) MigrationCandidates(since, until time.Time) []MigrationCandidate {
	year := s.Store.Year()
	if since.IsZero() {
		since = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	until = midnight(until)
	out := []MigrationCandidate{}
	for d := midnight(since); d.Before(until); d = d.AddDate(0, 0, 1) {
		if d.Year() != year {
			continue
		}
		date := model.FormatDate(d)
		for _, t := range s.Store.GetTodosForDate(date) {
			if !t.Completed {
				out = append(out, MigrationCandidate{Date: date, Todo: t})
			}
		}
	}
	return out
}

// Migrate carries every open todo from days before to onto to, and returns
// how many moved.
func (s *Service) Migrate(since, to time.Time) (int, error) {
	dates := map[string]bool{}
	var order []string
	for _, c := range s.MigrationCandidates(since, to) {
		if !dates[c.Date] {
			dates[c.Date] = true
			order = append(order, c.Date)
		}
	}
	target := model.FormatDate(to)
	moved := 0
	for _, date := range order {
		todos, err := s.Store.CarryOverTodos(date, target)
		if err != nil {
			return moved, err
		}
		moved += len(todos)
	}
	return moved, nil
}
