package state

import (
	"fmt"
	"slices"

	"tableflip.dev/planner/pkg/events"
	"tableflip.dev/planner/pkg/model"
)

// Mandala returns a copy of the mandala chart document.
func (s *Store) Mandala() model.MandalDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mandal.Clone()
}

// AddMandalArt creates an empty chart and makes it active.
func (s *Store) AddMandalArt(name string) (model.MandalArt, error) {
	name, err := requireText(name)
	if err != nil {
		return model.MandalArt{}, err
	}
	chart := model.MandalArt{ID: s.newID(), Name: name, Type: model.MandalTypeNine}
	s.mu.Lock()
	s.mandal.MandalArts = append(slices.Clone(s.mandal.MandalArts), chart)
	s.mandal.ActiveMandalArtID = chart.ID
	err = s.markMandalLocked()
	s.mu.Unlock()
	if err != nil {
		return model.MandalArt{}, err
	}
	s.publish(events.MandalChanged{Action: events.ChangeCreate, ChartID: chart.ID, Cell: -1})
	return chart, nil
}

// SelectMandalArt makes a chart active.
func (s *Store) SelectMandalArt(id string) error {
	return s.updateMandal(id, events.ChangeUpdate, -1, func(i int) error {
		s.mandal.ActiveMandalArtID = id
		return nil
	})
}

// RenameMandalArt renames a chart.
func (s *Store) RenameMandalArt(id, name string) error {
	name, err := requireText(name)
	if err != nil {
		return err
	}
	return s.updateMandal(id, events.ChangeUpdate, -1, func(i int) error {
		s.mandal.MandalArts[i].Name = name
		return nil
	})
}

// DeleteMandalArt removes a chart. Deleting the active chart activates the
// first remaining one.
func (s *Store) DeleteMandalArt(id string) error {
	return s.updateMandal(id, events.ChangeDelete, -1, func(i int) error {
		s.mandal.MandalArts = slices.Delete(slices.Clone(s.mandal.MandalArts), i, i+1)
		if s.mandal.ActiveMandalArtID == id {
			s.mandal.ActiveMandalArtID = ""
			if len(s.mandal.MandalArts) > 0 {
				s.mandal.ActiveMandalArtID = s.mandal.MandalArts[0].ID
			}
		}
		return nil
	})
}

// UpdateMandalCell writes one cell. Sub-goals around the centre and the
// centres of their outer blocks mirror each other, so both are written.
func (s *Store) UpdateMandalCell(id string, index int, text string) error {
	if index < 0 || index >= model.MandalCells {
		return fmt.Errorf("%w: index %d", ErrInvalidCell, index)
	}
	return s.updateMandal(id, events.ChangeUpdate, index, func(i int) error {
		chart := &s.mandal.MandalArts[i]
		chart.Cells[index] = text
		if mirror, ok := model.MandalMirror(index); ok {
			chart.Cells[mirror] = text
		}
		return nil
	})
}

func (s *Store) updateMandal(id string, action events.ChangeType, cell int, fn func(i int) error) error {
	s.mu.Lock()
	i, ok := s.mandal.Find(id)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: mandal chart %q", ErrNotFound, id)
	}
	if err := fn(i); err != nil {
		s.mu.Unlock()
		return err
	}
	err := s.markMandalLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(events.MandalChanged{Action: action, ChartID: id, Cell: cell})
	return nil
}
