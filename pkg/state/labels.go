package state

import (
	"fmt"
	"slices"
	"strings"

	"tableflip.dev/planner/pkg/events"
	"tableflip.dev/planner/pkg/model"
)

// AddLabel appends a label to the resident year. An empty ID is generated.
func (s *Store) AddLabel(l model.Label) (model.Label, error) {
	name, err := requireText(l.Name)
	if err != nil {
		return model.Label{}, err
	}
	if err := validColor(l.Color); err != nil {
		return model.Label{}, err
	}
	l.Name = name

	s.mu.Lock()
	if err := s.requireYearLocked(); err != nil {
		s.mu.Unlock()
		return model.Label{}, err
	}
	if l.ID == "" {
		l.ID = s.newID()
	}
	if indexOf(s.yearly.Labels, l.ID, labelID) >= 0 {
		s.mu.Unlock()
		return model.Label{}, fmt.Errorf("%w: label %q", ErrDuplicateID, l.ID)
	}
	s.yearly.Labels = append(s.yearly.Labels, l)
	err = s.markYearLocked()
	s.mu.Unlock()
	if err != nil {
		return model.Label{}, err
	}
	s.publish(events.LabelsChanged{Action: events.ChangeCreate, LabelID: l.ID})
	return l, nil
}

// Label returns the label with id.
func (s *Store) Label(id string) (model.Label, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.yearly.Labels, id, labelID); i >= 0 {
		return s.yearly.Labels[i], true
	}
	return model.Label{}, false
}

// ReorderLabels arranges the labels in the order of ids.
func (s *Store) ReorderLabels(ids []string) error {
	s.mu.Lock()
	if err := s.requireYearLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	labels, err := reorder(s.yearly.Labels, ids, labelID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.yearly.Labels = labels
	err = s.markYearLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(events.LabelsChanged{Action: events.ChangeReorder})
	return nil
}

// UpdateLabelName renames a label.
func (s *Store) UpdateLabelName(id, name string) error {
	name, err := requireText(name)
	if err != nil {
		return err
	}
	return s.updateLabel(id, func(l *model.Label) { l.Name = name })
}

// UpdateLabelColor recolours a label.
func (s *Store) UpdateLabelColor(id, color string) error {
	if err := validColor(color); err != nil {
		return err
	}
	return s.updateLabel(id, func(l *model.Label) { l.Color = color })
}

func (s *Store) updateLabel(id string, fn func(*model.Label)) error {
	s.mu.Lock()
	if err := s.requireYearLocked(); err != nil {
		s.mu.Unlock()
		return err
	}
	i := indexOf(s.yearly.Labels, id, labelID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: label %q", ErrNotFound, id)
	}
	fn(&s.yearly.Labels[i])
	err := s.markYearLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(events.LabelsChanged{Action: events.ChangeUpdate, LabelID: id})
	return nil
}

// DeleteLabelAndAssociatedEvents removes a label together with every event
// that references it and returns the number of events removed. The selected
// label is cleared if it was the one deleted.
func (s *Store) DeleteLabelAndAssociatedEvents(id string) (int, error) {
	s.mu.Lock()
	if err := s.requireYearLocked(); err != nil {
		s.mu.Unlock()
		return 0, err
	}
	i := indexOf(s.yearly.Labels, id, labelID)
	if i < 0 {
		s.mu.Unlock()
		return 0, fmt.Errorf("%w: label %q", ErrNotFound, id)
	}
	kept := make([]model.ProjectEvent, 0, len(s.yearly.Events))
	for _, ev := range s.yearly.Events {
		if ev.LabelID != id {
			kept = append(kept, ev)
		}
	}
	removed := len(s.yearly.Events) - len(kept)
	s.yearly.Labels = slices.Delete(slices.Clone(s.yearly.Labels), i, i+1)
	s.yearly.Events = kept
	if s.selectedLabel == id {
		s.selectedLabel = ""
	}
	err := s.markYearLocked()
	s.mu.Unlock()
	if err != nil {
		return removed, err
	}
	s.publish(events.LabelsChanged{Action: events.ChangeDelete, LabelID: id, RemovedEvents: removed})
	return removed, nil
}

// SelectLabel marks the label new events are drawn with. An empty id clears
// the selection.
func (s *Store) SelectLabel(id string) error {
	s.mu.Lock()
	if id != "" && indexOf(s.yearly.Labels, id, labelID) < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownLabel, id)
	}
	s.selectedLabel = id
	s.mu.Unlock()
	s.publish(events.LabelsChanged{Action: events.ChangeUpdate, LabelID: id})
	return nil
}

// IsDuplicateEvent reports whether an event with the same label and range
// already exists.
func (s *Store) IsDuplicateEvent(labelID, startDate, endDate string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.duplicateEventLocked(labelID, startDate, endDate, "")
}

func (s *Store) duplicateEventLocked(labelID, startDate, endDate, except string) bool {
	for _, ev := range s.yearly.Events {
		if ev.ID == except {
			continue
		}
		if ev.LabelID == labelID && ev.StartDate == startDate && ev.EndDate == endDate {
			return true
		}
	}
	return false
}

// checkRangeLocked validates an inclusive event range that starts in the
// resident year. Caller holds mu.
func (s *Store) checkRangeLocked(startDate, endDate string) error {
	if _, err := s.checkDateLocked(startDate); err != nil {
		return err
	}
	end, err := model.ParseDate(endDate)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, endDate)
	}
	start, _ := model.ParseDate(startDate)
	if end.Before(start) {
		return fmt.Errorf("%w: %s..%s", ErrInvalidRange, startDate, endDate)
	}
	return nil
}

// AddEvent records a labelled date range. Unknown labels, inverted ranges and
// exact duplicates are rejected.
func (s *Store) AddEvent(ev model.ProjectEvent) (model.ProjectEvent, error) {
	ev.StartDate = strings.TrimSpace(ev.StartDate)
	ev.EndDate = strings.TrimSpace(ev.EndDate)
	if ev.EndDate == "" {
		ev.EndDate = ev.StartDate
	}

	s.mu.Lock()
	if err := s.checkRangeLocked(ev.StartDate, ev.EndDate); err != nil {
		s.mu.Unlock()
		return model.ProjectEvent{}, err
	}
	if indexOf(s.yearly.Labels, ev.LabelID, labelID) < 0 {
		s.mu.Unlock()
		return model.ProjectEvent{}, fmt.Errorf("%w: %q", ErrUnknownLabel, ev.LabelID)
	}
	if s.duplicateEventLocked(ev.LabelID, ev.StartDate, ev.EndDate, "") {
		s.mu.Unlock()
		return model.ProjectEvent{}, ErrDuplicateEvent
	}
	if ev.ID == "" {
		ev.ID = s.newID()
	}
	if indexOf(s.yearly.Events, ev.ID, eventID) >= 0 {
		s.mu.Unlock()
		return model.ProjectEvent{}, fmt.Errorf("%w: event %q", ErrDuplicateID, ev.ID)
	}
	s.yearly.Events = append(s.yearly.Events, ev)
	err := s.markYearLocked()
	s.mu.Unlock()
	if err != nil {
		return model.ProjectEvent{}, err
	}
	s.publish(events.ProjectEventsChanged{Action: events.ChangeCreate, EventID: ev.ID})
	return ev, nil
}

// DeleteEvent removes an event.
func (s *Store) DeleteEvent(id string) error {
	s.mu.Lock()
	i := indexOf(s.yearly.Events, id, eventID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: event %q", ErrNotFound, id)
	}
	s.yearly.Events = slices.Delete(slices.Clone(s.yearly.Events), i, i+1)
	err := s.markYearLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(events.ProjectEventsChanged{Action: events.ChangeDelete, EventID: id})
	return nil
}

// UpdateEventDates moves an event to a new range.
func (s *Store) UpdateEventDates(id, startDate, endDate string) error {
	s.mu.Lock()
	i := indexOf(s.yearly.Events, id, eventID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: event %q", ErrNotFound, id)
	}
	if err := s.checkRangeLocked(startDate, endDate); err != nil {
		s.mu.Unlock()
		return err
	}
	if s.duplicateEventLocked(s.yearly.Events[i].LabelID, startDate, endDate, id) {
		s.mu.Unlock()
		return ErrDuplicateEvent
	}
	s.yearly.Events[i].StartDate = startDate
	s.yearly.Events[i].EndDate = endDate
	err := s.markYearLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.publish(events.ProjectEventsChanged{Action: events.ChangeUpdate, EventID: id})
	return nil
}

// EventsOn lists the events whose range covers date.
func (s *Store) EventsOn(date string) []model.ProjectEvent {
	out := []model.ProjectEvent{}
	if _, err := model.ParseDate(date); err != nil {
		return out
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ev := range s.yearly.Events {
		if ev.StartDate <= date && date <= ev.EndDate {
			out = append(out, ev)
		}
	}
	return out
}
