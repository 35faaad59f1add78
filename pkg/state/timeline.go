package state

import (
	"fmt"
	"slices"
	"strings"

	"tableflip.dev/planner/pkg/events"
	"tableflip.dev/planner/pkg/model"
)

// Grid selects one of the two block grids of a day.
type Grid string

const (
	GridTime Grid = "time"
	GridGoal Grid = "goal"
)

func (g Grid) part() (events.DayPart, error) {
	switch g {
	case GridTime:
		return events.PartTimeline, nil
	case GridGoal:
		return events.PartGoals, nil
	default:
		return "", fmt.Errorf("%w: grid %q", ErrInvalidCell, g)
	}
}

func (g Grid) cells(d *model.DayRecord) map[string]model.BlockCell {
	if g == GridGoal {
		return d.GoalBlocks
	}
	return d.TimeBlocks
}

// blockInteraction remembers the colours cells had when a continuous paint
// gesture started.
type blockInteraction struct {
	date  string
	grid  Grid
	start map[string]string
}

// BeginBlockInteraction starts a paint gesture on one grid of date. Any
// gesture already in progress is ended.
func (s *Store) BeginBlockInteraction(date string, grid Grid) error {
	if _, err := grid.part(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.checkDateLocked(date); err != nil {
		return err
	}
	start := map[string]string{}
	if day, ok := s.dayLocked(date); ok {
		for key, cell := range grid.cells(&day) {
			start[key] = cell.Color
		}
	}
	s.interaction = &blockInteraction{date: date, grid: grid, start: start}
	return nil
}

// EndBlockInteraction forgets the gesture's starting colours.
func (s *Store) EndBlockInteraction() {
	s.mu.Lock()
	s.interaction = nil
	s.mu.Unlock()
}

// PaintBlocks sets the colour of keys; an empty colour erases it. Inside a
// gesture a cell whose colour ends up different from where it started keeps
// the starting colour as PreviousColor.
func (s *Store) PaintBlocks(date string, grid Grid, keys []string, color string) error {
	part, err := grid.part()
	if err != nil {
		return err
	}
	if color != "" {
		if err := validColor(color); err != nil {
			return err
		}
	}
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("%w: empty block key", ErrInvalidCell)
		}
	}

	s.mu.Lock()
	var start map[string]string
	if in := s.interaction; in != nil && in.date == date && in.grid == grid {
		start = in.start
	}
	err = s.updateDay(date, func(d *model.DayRecord) error {
		cells := grid.cells(d)
		for _, k := range keys {
			cell := cells[k]
			cell.Color = color
			if start != nil {
				if before := start[k]; before != color {
					cell.PreviousColor = before
				} else {
					cell.PreviousColor = ""
				}
			}
			if cell == (model.BlockCell{}) {
				delete(cells, k)
				continue
			}
			cells[k] = cell
		}
		return nil
	})
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(events.DayChanged{Date: date, Part: part, Action: events.ChangeUpdate})
	return nil
}

// SetBlockText writes the text of a single block.
func (s *Store) SetBlockText(date string, grid Grid, key, text string) error {
	part, err := grid.part()
	if err != nil {
		return err
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: empty block key", ErrInvalidCell)
	}
	s.mu.Lock()
	err = s.updateDay(date, func(d *model.DayRecord) error {
		cells := grid.cells(d)
		cell := cells[key]
		cell.Text = text
		if cell == (model.BlockCell{}) {
			delete(cells, key)
		} else {
			cells[key] = cell
		}
		return nil
	})
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(events.DayChanged{Date: date, Part: part, Action: events.ChangeUpdate, ID: key})
	return nil
}

// ClearBlockMarkers drops every PreviousColor on one grid of date.
func (s *Store) ClearBlockMarkers(date string, grid Grid) error {
	part, err := grid.part()
	if err != nil {
		return err
	}
	s.mu.Lock()
	err = s.updateDay(date, func(d *model.DayRecord) error {
		cells := grid.cells(d)
		for k, cell := range cells {
			if cell.PreviousColor == "" {
				continue
			}
			cell.PreviousColor = ""
			if cell == (model.BlockCell{}) {
				delete(cells, k)
			} else {
				cells[k] = cell
			}
		}
		return nil
	})
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(events.DayChanged{Date: date, Part: part, Action: events.ChangeDelete})
	return nil
}

// AddScheduledTask lays a task over a span of timeline blocks.
func (s *Store) AddScheduledTask(date string, task model.ScheduledTask) (model.ScheduledTask, error) {
	text, err := requireText(task.Text)
	if err != nil {
		return model.ScheduledTask{}, err
	}
	task.Text = text
	if task.StartBlock == "" {
		return model.ScheduledTask{}, fmt.Errorf("%w: start block required", ErrInvalidCell)
	}
	if task.EndBlock == "" {
		task.EndBlock = task.StartBlock
	}
	if task.EndBlock < task.StartBlock {
		return model.ScheduledTask{}, fmt.Errorf("%w: %s..%s", ErrInvalidRange, task.StartBlock, task.EndBlock)
	}
	if task.Color != "" {
		if err := validColor(task.Color); err != nil {
			return model.ScheduledTask{}, err
		}
	}

	s.mu.Lock()
	if task.ID == "" {
		task.ID = s.newID()
	}
	err = s.updateDay(date, func(d *model.DayRecord) error {
		if indexOf(d.ScheduledTimelineTasks, task.ID, taskID) >= 0 {
			return fmt.Errorf("%w: task %q", ErrDuplicateID, task.ID)
		}
		d.ScheduledTimelineTasks = append(d.ScheduledTimelineTasks, task)
		return nil
	})
	s.mu.Unlock()
	if err != nil {
		return model.ScheduledTask{}, err
	}
	s.publish(events.DayChanged{Date: date, Part: events.PartScheduled, Action: events.ChangeCreate, ID: task.ID})
	return task, nil
}

// DeleteScheduledTask removes a scheduled task from date.
func (s *Store) DeleteScheduledTask(date, id string) error {
	s.mu.Lock()
	err := s.updateDay(date, func(d *model.DayRecord) error {
		i := indexOf(d.ScheduledTimelineTasks, id, taskID)
		if i < 0 {
			return fmt.Errorf("%w: task %q on %s", ErrNotFound, id, date)
		}
		d.ScheduledTimelineTasks = slices.Delete(slices.Clone(d.ScheduledTimelineTasks), i, i+1)
		return nil
	})
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(events.DayChanged{Date: date, Part: events.PartScheduled, Action: events.ChangeDelete, ID: id})
	return nil
}
