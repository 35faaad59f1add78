package state

import (
	"fmt"
	"slices"
	"strings"

	"tableflip.dev/planner/pkg/events"
	"tableflip.dev/planner/pkg/model"
)

// TodoUpdate carries the properties UpdateTodoPropertyForDate changes; nil
// fields are left alone.
type TodoUpdate struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	Color     *string `json:"color,omitempty"`
}

// GetDay returns a copy of everything recorded on date. Unknown dates yield
// an empty record.
func (s *Store) GetDay(date string) model.DayRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	day, ok := s.dayLocked(date)
	if !ok {
		return model.NewDayRecord()
	}
	day = day.Clone()
	day.Normalize()
	return day
}

// GetTodosForDate lists the todos of date, never nil.
func (s *Store) GetTodosForDate(date string) []model.DayTodo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	day, _ := s.dayLocked(date)
	return append([]model.DayTodo{}, day.Todos...)
}

// AddTodoForDate appends an open todo to date.
func (s *Store) AddTodoForDate(date, text string) (model.DayTodo, error) {
	text, err := requireText(text)
	if err != nil {
		return model.DayTodo{}, err
	}
	s.mu.Lock()
	todo := model.DayTodo{ID: s.newID(), Text: text}
	err = s.updateDay(date, func(d *model.DayRecord) error {
		d.Todos = append(d.Todos, todo)
		return nil
	})
	s.mu.Unlock()
	if err != nil {
		return model.DayTodo{}, err
	}
	s.publish(events.DayChanged{Date: date, Part: events.PartTodos, Action: events.ChangeCreate, ID: todo.ID})
	return todo, nil
}

// DeleteTodoForDate removes a todo from date.
func (s *Store) DeleteTodoForDate(date, id string) error {
	s.mu.Lock()
	err := s.updateDay(date, func(d *model.DayRecord) error {
		i := indexOf(d.Todos, id, todoID)
		if i < 0 {
			return fmt.Errorf("%w: todo %q on %s", ErrNotFound, id, date)
		}
		d.Todos = slices.Delete(slices.Clone(d.Todos), i, i+1)
		return nil
	})
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(events.DayChanged{Date: date, Part: events.PartTodos, Action: events.ChangeDelete, ID: id})
	return nil
}

// UpdateTodoPropertyForDate applies u to a todo on date.
func (s *Store) UpdateTodoPropertyForDate(date, id string, u TodoUpdate) error {
	if u.Text != nil {
		text, err := requireText(*u.Text)
		if err != nil {
			return err
		}
		u.Text = &text
	}
	if u.Color != nil && *u.Color != "" {
		if err := validColor(*u.Color); err != nil {
			return err
		}
	}
	s.mu.Lock()
	err := s.updateDay(date, func(d *model.DayRecord) error {
		i := indexOf(d.Todos, id, todoID)
		if i < 0 {
			return fmt.Errorf("%w: todo %q on %s", ErrNotFound, id, date)
		}
		t := &d.Todos[i]
		if u.Text != nil {
			t.Text = *u.Text
		}
		if u.Completed != nil {
			t.Completed = *u.Completed
		}
		if u.Color != nil {
			t.Color = *u.Color
		}
		return nil
	})
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(events.DayChanged{Date: date, Part: events.PartTodos, Action: events.ChangeUpdate, ID: id})
	return nil
}

// CarryOverTodos moves every open todo of from onto to, keeping ids and
// order. Completed todos stay behind. Both days change together.
func (s *Store) CarryOverTodos(from, to string) ([]model.DayTodo, error) {
	if from == to {
		return nil, fmt.Errorf("%w: carry over onto the same day %s", ErrInvalidRange, from)
	}
	s.mu.Lock()
	fromYM, err := s.checkDateLocked(from)
	if err == nil {
		var toYM string
		toYM, err = s.checkDateLocked(to)
		if err == nil {
			var moved []model.DayTodo
			moved, err = s.carryOverLocked(from, fromYM, to, toYM)
			s.mu.Unlock()
			if err != nil || len(moved) == 0 {
				return moved, err
			}
			s.publish(events.DayChanged{Date: to, Part: events.PartTodos, Action: events.ChangeMove})
			return moved, nil
		}
	}
	s.mu.Unlock()
	return nil, err
}

func (s *Store) carryOverLocked(from, fromYM, to, toYM string) ([]model.DayTodo, error) {
	src, ok := s.months[fromYM]
	if !ok {
		return []model.DayTodo{}, nil
	}
	day, ok := src.DailyData[from]
	if !ok {
		return []model.DayTodo{}, nil
	}
	var moved, kept []model.DayTodo
	for _, t := range day.Todos {
		if t.Completed {
			kept = append(kept, t)
		} else {
			moved = append(moved, t)
		}
	}
	if len(moved) == 0 {
		return []model.DayTodo{}, nil
	}

	fromMonth := src.Clone()
	toMonth := &fromMonth
	if toYM != fromYM {
		if m, ok := s.months[toYM]; ok {
			c := m.Clone()
			toMonth = &c
		} else {
			c := model.NewMonthRecord(toYM)
			toMonth = &c
		}
	}
	day = fromMonth.DailyData[from]
	day.Todos = append([]model.DayTodo{}, kept...)
	fromMonth.DailyData[from] = day

	target, ok := toMonth.DailyData[to]
	if !ok {
		target = model.NewDayRecord()
	}
	target.Normalize()
	target.Todos = append(slices.Clone(target.Todos), moved...)
	toMonth.DailyData[to] = target

	s.months[fromYM] = &fromMonth
	if toYM != fromYM {
		s.months[toYM] = toMonth
	}
	if err := s.markMonthLocked(fromYM); err != nil {
		return nil, err
	}
	if toYM != fromYM {
		if err := s.markMonthLocked(toYM); err != nil {
			return nil, err
		}
	}
	return moved, nil
}

// ReorderTodosForDate arranges the todos of date in the order of ids.
func (s *Store) ReorderTodosForDate(date string, ids []string) error {
	s.mu.Lock()
	err := s.updateDay(date, func(d *model.DayRecord) error {
		todos, err := reorder(d.Todos, ids, todoID)
		if err != nil {
			return err
		}
		d.Todos = todos
		return nil
	})
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(events.DayChanged{Date: date, Part: events.PartTodos, Action: events.ChangeReorder})
	return nil
}

// GetCellMark returns the mark of date, or "" when none is set.
func (s *Store) GetCellMark(date string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	day, _ := s.dayLocked(date)
	if day.CellMark == nil {
		return ""
	}
	return *day.CellMark
}

// SetCellMark annotates date. "none" and "" clear the mark.
func (s *Store) SetCellMark(date, mark string) error {
	mark = strings.TrimSpace(mark)
	var value *string
	if mark != "" && mark != "none" {
		value = &mark
	}
	s.mu.Lock()
	err := s.updateDay(date, func(d *model.DayRecord) error {
		d.CellMark = value
		return nil
	})
	s.mu.Unlock()
	if err != nil {
		return err
	}
	action := events.ChangeUpdate
	if value == nil {
		action = events.ChangeDelete
	}
	s.publish(events.DayChanged{Date: date, Part: events.PartCellMark, Action: action})
	return nil
}

// GetDiary returns the diary of date.
func (s *Store) GetDiary(date string) model.Diary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	day, _ := s.dayLocked(date)
	return day.Diary
}

// UpdateDiary replaces the diary of date.
func (s *Store) UpdateDiary(date string, diary model.Diary) error {
	s.mu.Lock()
	err := s.updateDay(date, func(d *model.DayRecord) error {
		d.Diary = diary
		return nil
	})
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(events.DayChanged{Date: date, Part: events.PartDiary, Action: events.ChangeUpdate})
	return nil
}

// AddProject starts a named todo list on date.
func (s *Store) AddProject(date, name string) (model.Project, error) {
	name, err := requireText(name)
	if err != nil {
		return model.Project{}, err
	}
	s.mu.Lock()
	p := model.Project{ID: s.newID(), Name: name, Todos: []model.ProjectTodo{}}
	err = s.updateDay(date, func(d *model.DayRecord) error {
		d.ProjectTodos = append(d.ProjectTodos, p)
		return nil
	})
	s.mu.Unlock()
	if err != nil {
		return model.Project{}, err
	}
	s.publish(events.DayChanged{Date: date, Part: events.PartProjects, Action: events.ChangeCreate, ID: p.ID})
	return p, nil
}

// RenameProject renames a project on date.
func (s *Store) RenameProject(date, id, name string) error {
	name, err := requireText(name)
	if err != nil {
		return err
	}
	return s.updateProject(date, id, func(p *model.Project) error {
		p.Name = name
		return nil
	})
}

// DeleteProject removes a project and its todos from date.
func (s *Store) DeleteProject(date, id string) error {
	s.mu.Lock()
	err := s.updateDay(date, func(d *model.DayRecord) error {
		i := indexOf(d.ProjectTodos, id, projectID)
		if i < 0 {
			return fmt.Errorf("%w: project %q on %s", ErrNotFound, id, date)
		}
		d.ProjectTodos = slices.Delete(slices.Clone(d.ProjectTodos), i, i+1)
		return nil
	})
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(events.DayChanged{Date: date, Part: events.PartProjects, Action: events.ChangeDelete, ID: id})
	return nil
}

// AddProjectTodo appends an item to a project.
func (s *Store) AddProjectTodo(date, project, text string) (model.ProjectTodo, error) {
	text, err := requireText(text)
	if err != nil {
		return model.ProjectTodo{}, err
	}
	todo := model.ProjectTodo{ID: s.newID(), Text: text}
	err = s.updateProject(date, project, func(p *model.Project) error {
		p.Todos = append(slices.Clone(p.Todos), todo)
		return nil
	})
	if err != nil {
		return model.ProjectTodo{}, err
	}
	return todo, nil
}

// ToggleProjectTodo flips an item's completion and returns the new value.
func (s *Store) ToggleProjectTodo(date, project, id string) (bool, error) {
	var done bool
	err := s.updateProject(date, project, func(p *model.Project) error {
		i := indexOf(p.Todos, id, projectTodoID)
		if i < 0 {
			return fmt.Errorf("%w: project todo %q", ErrNotFound, id)
		}
		todos := slices.Clone(p.Todos)
		todos[i].Completed = !todos[i].Completed
		done = todos[i].Completed
		p.Todos = todos
		return nil
	})
	return done, err
}

// DeleteProjectTodo removes an item from a project.
func (s *Store) DeleteProjectTodo(date, project, id string) error {
	return s.updateProject(date, project, func(p *model.Project) error {
		i := indexOf(p.Todos, id, projectTodoID)
		if i < 0 {
			return fmt.Errorf("%w: project todo %q", ErrNotFound, id)
		}
		p.Todos = slices.Delete(slices.Clone(p.Todos), i, i+1)
		return nil
	})
}

func (s *Store) updateProject(date, id string, fn func(*model.Project) error) error {
	s.mu.Lock()
	err := s.updateDay(date, func(d *model.DayRecord) error {
		i := indexOf(d.ProjectTodos, id, projectID)
		if i < 0 {
			return fmt.Errorf("%w: project %q on %s", ErrNotFound, id, date)
		}
		p := d.ProjectTodos[i]
		if err := fn(&p); err != nil {
			return err
		}
		projects := slices.Clone(d.ProjectTodos)
		projects[i] = p
		d.ProjectTodos = projects
		return nil
	})
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(events.DayChanged{Date: date, Part: events.PartProjects, Action: events.ChangeUpdate, ID: id})
	return nil
}
