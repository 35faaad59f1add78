package state

import (
	"fmt"
	"slices"

	"tableflip.dev/planner/pkg/events"
	"tableflip.dev/planner/pkg/model"
)

// Month returns a copy of the record for ym, or an empty one.
func (s *Store) Month(ym string) model.MonthRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.months[ym]; ok {
		return m.Clone()
	}
	return model.NewMonthRecord(ym)
}

// UpdateMonthPalette sets the palette that overrides the settings palette
// while ym is displayed. An empty palette falls back to settings again.
func (s *Store) UpdateMonthPalette(ym string, palette []model.ColorEntry) error {
	if err := validPalette(palette); err != nil {
		return err
	}
	s.mu.Lock()
	if err := s.checkMonthLocked(ym); err != nil {
		s.mu.Unlock()
		return err
	}
	err := s.updateMonth(ym, func(m *model.MonthRecord) error {
		m.ColorPalette = append([]model.ColorEntry{}, palette...)
		return nil
	})
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(events.MonthChanged{YearMonth: ym, Action: events.ChangeUpdate})
	return nil
}

// AddRoutine appends a recurring item to ym.
func (s *Store) AddRoutine(ym, name, color string) (model.Routine, error) {
	name, err := requireText(name)
	if err != nil {
		return model.Routine{}, err
	}
	if color != "" {
		if err := validColor(color); err != nil {
			return model.Routine{}, err
		}
	}
	r := model.Routine{ID: s.newID(), Name: name, Color: color}
	s.mu.Lock()
	if err := s.checkMonthLocked(ym); err != nil {
		s.mu.Unlock()
		return model.Routine{}, err
	}
	err = s.updateMonth(ym, func(m *model.MonthRecord) error {
		m.Routines = append(m.Routines, r)
		return nil
	})
	s.mu.Unlock()
	if err != nil {
		return model.Routine{}, err
	}
	s.publish(events.MonthChanged{YearMonth: ym, Action: events.ChangeCreate})
	return r, nil
}

// DeleteRoutine removes a routine from ym.
func (s *Store) DeleteRoutine(ym, id string) error {
	s.mu.Lock()
	if err := s.checkMonthLocked(ym); err != nil {
		s.mu.Unlock()
		return err
	}
	err := s.updateMonth(ym, func(m *model.MonthRecord) error {
		i := indexOf(m.Routines, id, routineID)
		if i < 0 {
			return fmt.Errorf("%w: routine %q", ErrNotFound, id)
		}
		m.Routines = slices.Delete(slices.Clone(m.Routines), i, i+1)
		return nil
	})
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(events.MonthChanged{YearMonth: ym, Action: events.ChangeDelete})
	return nil
}

// UpdateSettings replaces the global settings. A zero LastOpenedYear keeps
// the current one.
func (s *Store) UpdateSettings(settings model.Settings) error {
	if err := validPalette(settings.ColorPalette); err != nil {
		return err
	}
	settings = settings.Clone()
	settings.Normalize()
	s.mu.Lock()
	if settings.LastOpenedYear == 0 {
		settings.LastOpenedYear = s.settings.LastOpenedYear
	}
	s.settings = settings
	err := s.markSettingsLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(events.SettingsChanged{})
	return nil
}
