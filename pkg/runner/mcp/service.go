package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/state"
)

// DaySummary is the MCP view of one date.
type DaySummary = app.DaySummary

// Service adapts the state store to MCP tools and resources. Mutations are
// followed by Save so a long-running server never sits on unsaved changes.
type Service struct {
	Store *state.Store
	Save  func(ctx context.Context) error
	Now   func() time.Time
}

// NewService constructs a Service. A nil save leaves changes in the dirty
// cache.
func NewService(st *state.Store, save func(ctx context.Context) error) *Service {
	return &Service{Store: st, Save: save, Now: time.Now}
}

// Date resolves a tool's date argument.
func (s *Service) Date(input string) (string, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return ParseDate(input, now())
}

func (s *Service) commit(ctx context.Context) error {
	if s.Save == nil {
		return nil
	}
	return s.Save(ctx)
}

// State returns the resident snapshot.
func (s *Service) State() state.State {
	return s.Store.GetState()
}

// LoadYear makes year resident.
func (s *Service) LoadYear(ctx context.Context, year int) (state.State, error) {
	if err := s.Store.LoadDataForYear(ctx, year); err != nil {
		return state.State{}, err
	}
	return s.Store.GetState(), s.commit(ctx)
}

// Day summarises date.
func (s *Service) Day(date string) (DaySummary, error) {
	return app.Summarize(s.Store, date)
}

// Week summarises the seven days from the Monday of date, or of the week
// cursor when date is empty.
func (s *Service) Week(date string) ([]DaySummary, error) {
	start := s.Store.WeekStart()
	if strings.TrimSpace(date) != "" {
		t, err := model.ParseDate(strings.TrimSpace(date))
		if err != nil {
			return nil, err
		}
		start = model.MondayOf(t)
	}
	if start.IsZero() {
		return nil, state.ErrNoYear
	}
	days := make([]DaySummary, 0, 7)
	for i := 0; i < 7; i++ {
		d, err := s.Day(model.FormatDate(start.AddDate(0, 0, i)))
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

// AddLabel creates a label.
func (s *Service) AddLabel(ctx context.Context, name, color string) (model.Label, error) {
	l, err := s.Store.AddLabel(model.Label{Name: name, Color: color})
	if err != nil {
		return l, err
	}
	return l, s.commit(ctx)
}

// DeleteLabel removes a label and its events.
func (s *Service) DeleteLabel(ctx context.Context, id string) (int, error) {
	n, err := s.Store.DeleteLabelAndAssociatedEvents(id)
	if err != nil {
		return 0, err
	}
	return n, s.commit(ctx)
}

// AddEvent creates a project event. An empty end date makes a one-day event.
func (s *Service) AddEvent(ctx context.Context, labelID, start, end string) (model.ProjectEvent, error) {
	if end == "" {
		end = start
	}
	ev, err := s.Store.AddEvent(model.ProjectEvent{LabelID: labelID, StartDate: start, EndDate: end})
	if err != nil {
		return ev, err
	}
	return ev, s.commit(ctx)
}

// DeleteEvent removes a project event.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	if err := s.Store.DeleteEvent(id); err != nil {
		return err
	}
	return s.commit(ctx)
}

// AddBacklogTodo adds an unscheduled todo.
func (s *Service) AddBacklogTodo(ctx context.Context, text string, priority int) (model.BacklogTodo, error) {
	b, err := s.Store.AddBacklogTodo(text, priority)
	if err != nil {
		return b, err
	}
	return b, s.commit(ctx)
}

// MoveBacklogTodo schedules a backlog todo on date.
func (s *Service) MoveBacklogTodo(ctx context.Context, id, date string) (model.DayTodo, error) {
	t, err := s.Store.MoveBacklogTodoToCalendar(id, date)
	if err != nil {
		return t, err
	}
	return t, s.commit(ctx)
}

// AddTodo appends a todo to date.
func (s *Service) AddTodo(ctx context.Context, date, text string) (model.DayTodo, error) {
	t, err := s.Store.AddTodoForDate(date, text)
	if err != nil {
		return t, err
	}
	return t, s.commit(ctx)
}

// SetTodoCompleted marks a todo done or open.
func (s *Service) SetTodoCompleted(ctx context.Context, date, id string, done bool) error {
	if err := s.Store.UpdateTodoPropertyForDate(date, id, state.TodoUpdate{Completed: &done}); err != nil {
		return err
	}
	return s.commit(ctx)
}

// DeleteTodo removes a todo from date.
func (s *Service) DeleteTodo(ctx context.Context, date, id string) error {
	if err := s.Store.DeleteTodoForDate(date, id); err != nil {
		return err
	}
	return s.commit(ctx)
}

// SetCellMark sets or clears the mark of date.
func (s *Service) SetCellMark(ctx context.Context, date, mark string) error {
	if err := s.Store.SetCellMark(date, mark); err != nil {
		return err
	}
	return s.commit(ctx)
}

// UpdateDiary replaces the diary of date.
func (s *Service) UpdateDiary(ctx context.Context, date string, d model.Diary) error {
	if err := s.Store.UpdateDiary(date, d); err != nil {
		return err
	}
	return s.commit(ctx)
}

// ParseDate accepts "YYYY-MM-DD", "today" or "tomorrow" relative to now.
func ParseDate(input string, now time.Time) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(input)); v {
	case "":
		return "", errors.New("date is required")
	case "today":
		return model.FormatDate(now), nil
	case "tomorrow":
		return model.FormatDate(now.AddDate(0, 0, 1)), nil
	default:
		t, err := model.ParseDate(v)
		if err != nil {
			return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", input)
		}
		return model.FormatDate(t), nil
	}
}
