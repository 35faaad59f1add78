package state

import (
	"fmt"
	"slices"

	"tableflip.dev/planner/pkg/events"
	"tableflip.dev/planner/pkg/model"
)

func checkPriority(p int) error {
	if p < 0 || p > model.MaxPriority {
		return fmt.Errorf("%w: %d", ErrInvalidPriority, p)
	}
	return nil
}

// AddBacklogTodo appends an unscheduled todo. Its colour follows priority.
func (s *Store) AddBacklogTodo(text string, priority int) (model.BacklogTodo, error) {
	text, err := requireText(text)
	if err != nil {
		return model.BacklogTodo{}, err
	}
	if err := checkPriority(priority); err != nil {
		return model.BacklogTodo{}, err
	}

	s.mu.Lock()
	if err := s.requireYearLocked(); err != nil {
		s.mu.Unlock()
		return model.BacklogTodo{}, err
	}
	todo := model.BacklogTodo{
		ID:       s.newID(),
		Text:     text,
		Priority: priority,
		Color:    model.PriorityColor(priority),
	}
	s.yearly.BacklogTodos = append(s.yearly.BacklogTodos, todo)
	err = s.markYearLocked()
	s.mu.Unlock()
	if err != nil {
		return model.BacklogTodo{}, err
	}
	s.publish(events.BacklogChanged{Action: events.ChangeCreate, TodoID: todo.ID})
	return todo, nil
}

// BacklogTodos lists the backlog in display order.
func (s *Store) BacklogTodos() []model.BacklogTodo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.BacklogTodo{}, s.yearly.BacklogTodos...)
}

// DeleteBacklogTodo removes a backlog todo.
func (s *Store) DeleteBacklogTodo(id string) error {
	s.mu.Lock()
	i := indexOf(s.yearly.BacklogTodos, id, backlogID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: backlog todo %q", ErrNotFound, id)
	}
	s.yearly.BacklogTodos = slices.Delete(slices.Clone(s.yearly.BacklogTodos), i, i+1)
	err := s.markYearLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(events.BacklogChanged{Action: events.ChangeDelete, TodoID: id})
	return nil
}

// UpdateBacklogTodoText edits a backlog todo's text.
func (s *Store) UpdateBacklogTodoText(id, text string) error {
	text, err := requireText(text)
	if err != nil {
		return err
	}
	return s.updateBacklog(id, func(t *model.BacklogTodo) { t.Text = text })
}

// UpdateBacklogTodoPriority changes priority and the derived colour.
func (s *Store) UpdateBacklogTodoPriority(id string, priority int) error {
	if err := checkPriority(priority); err != nil {
		return err
	}
	return s.updateBacklog(id, func(t *model.BacklogTodo) {
		t.Priority = priority
		t.Color = model.PriorityColor(priority)
	})
}

func (s *Store) updateBacklog(id string, fn func(*model.BacklogTodo)) error {
	s.mu.Lock()
	i := indexOf(s.yearly.BacklogTodos, id, backlogID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: backlog todo %q", ErrNotFound, id)
	}
	fn(&s.yearly.BacklogTodos[i])
	err := s.markYearLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(events.BacklogChanged{Action: events.ChangeUpdate, TodoID: id})
	return nil
}

// ReorderBacklogTodos arranges the backlog in the order of ids.
func (s *Store) ReorderBacklogTodos(ids []string) error {
	s.mu.Lock()
	if err := s.requireYearLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	todos, err := reorder(s.yearly.BacklogTodos, ids, backlogID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.yearly.BacklogTodos = todos
	err = s.markYearLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(events.BacklogChanged{Action: events.ChangeReorder})
	return nil
}

// MoveBacklogTodoToCalendar schedules a backlog todo on date. The todo
// leaves the backlog and lands on the day under a fresh id that remembers
// where it came from. Both sides change together or not at all.
func (s *Store) MoveBacklogTodoToCalendar(id, date string) (model.DayTodo, error) {
	s.mu.Lock()
	ym, err := s.checkDateLocked(date)
	if err != nil {
		s.mu.Unlock()
		return model.DayTodo{}, err
	}
	i := indexOf(s.yearly.BacklogTodos, id, backlogID)
	if i < 0 {
		s.mu.Unlock()
		return model.DayTodo{}, fmt.Errorf("%w: backlog todo %q", ErrNotFound, id)
	}
	src := s.yearly.BacklogTodos[i]
	moved := model.DayTodo{
		ID:                s.newID(),
		Text:              src.Text,
		Color:             src.Color,
		OriginalBacklogID: src.ID,
	}

	backlog := slices.Delete(slices.Clone(s.yearly.BacklogTodos), i, i+1)
	month, ok := s.months[ym]
	if ok {
		cloned := month.Clone()
		month = &cloned
	} else {
		m := model.NewMonthRecord(ym)
		month = &m
	}
	day, ok := month.DailyData[date]
	if !ok {
		day = model.NewDayRecord()
	}
	day.Normalize()
	day.Todos = append(slices.Clone(day.Todos), moved)
	month.DailyData[date] = day

	s.yearly.BacklogTodos = backlog
	s.months[ym] = month
	err = s.markYearLocked()
	if err == nil {
		err = s.markMonthLocked(ym)
	}
	s.mu.Unlock()
	if err != nil {
		return model.DayTodo{}, err
	}
	s.publish(events.BacklogChanged{Action: events.ChangeMove, TodoID: id, Date: date})
	return moved, nil
}
