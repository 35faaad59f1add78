package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"tableflip.dev/planner/pkg/events"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/schema"
)

// GetCurrentYearDataForSave assembles the full document set of the resident
// year: the yearly record, every month with data and the mandala document.
func (s *Store) GetCurrentYearDataForSave() ([]model.FileData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.requireYearLocked(); err != nil {
		return nil, err
	}
	months := make([]model.MonthRecord, 0, len(s.months))
	for _, m := range s.months {
		months = append(months, s.monthPayload(m))
	}
	return assemble(s.yearly, months, s.mandal)
}

// GetSpecificYearDataForSave is GetCurrentYearDataForSave for any year. A
// year that is not resident is read from the dirty cache and storage without
// disturbing the resident one.
func (s *Store) GetSpecificYearDataForSave(ctx context.Context, year int) ([]model.FileData, error) {
	if s.Year() == year {
		return s.GetCurrentYearDataForSave()
	}
	yearly, byKey, err := s.readYear(ctx, year)
	if err != nil {
		return nil, err
	}
	months := make([]model.MonthRecord, 0, len(byKey))
	for _, m := range byKey {
		months = append(months, s.monthPayload(m))
	}
	s.mu.RLock()
	mandal := s.mandal.Clone()
	s.mu.RUnlock()
	return assemble(yearly, months, mandal)
}

func assemble(yearly model.YearlyRecord, months []model.MonthRecord, mandal model.MandalDocument) ([]model.FileData, error) {
	sort.Slice(months, func(i, j int) bool { return months[i].YearMonth < months[j].YearMonth })
	out := make([]model.FileData, 0, len(months)+2)
	add := func(name string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("state: encode %s: %w", name, err)
		}
		out = append(out, model.FileData{FilenameInZip: name, Data: data})
		return nil
	}
	if err := add(model.YearFile(yearly.Year), yearly); err != nil {
		return nil, err
	}
	for _, m := range months {
		if err := add(model.MonthFile(m.YearMonth), m); err != nil {
			return nil, err
		}
	}
	if err := add(model.MandalFile, mandal); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadYearFromBackup replaces year with the documents of an imported backup.
// Every document is validated before anything changes; on failure an
// ImportError is returned and the resident state is untouched. Accepted
// documents are marked dirty and a single BackupRestored is published.
func (s *Store) LoadYearFromBackup(year int, files []model.FileData) error {
	if year < 1 || year > 9999 {
		return fmt.Errorf("%w: year %d", ErrInvalidDate, year)
	}
	yearly := model.NewYearlyRecord(year)
	months := map[string]*model.MonthRecord{}
	var mandal *model.MandalDocument
	accepted := 0

	for _, f := range files {
		info := model.ClassifyFile(f.FilenameInZip)
		switch info.Kind {
		case model.KindYear, model.KindMonth:
			if info.Year != year {
				return &ImportError{File: f.FilenameInZip, Err: fmt.Errorf("belongs to %d, not %d", info.Year, year)}
			}
		case model.KindMandal:
		default:
			s.logger.Debug("skipping backup member", "file", f.FilenameInZip)
			continue
		}
		if err := schema.Validate(info.Kind, f.Data); err != nil {
			return &ImportError{File: f.FilenameInZip, Err: err}
		}

		switch info.Kind {
		case model.KindYear:
			if err := json.Unmarshal(f.Data, &yearly); err != nil {
				return &ImportError{File: f.FilenameInZip, Err: err}
			}
			if yearly.Year != year {
				return &ImportError{File: f.FilenameInZip, Err: fmt.Errorf("record is for year %d", yearly.Year)}
			}
			yearly.Normalize()
		case model.KindMonth:
			var m model.MonthRecord
			if err := json.Unmarshal(f.Data, &m); err != nil {
				return &ImportError{File: f.FilenameInZip, Err: err}
			}
			if m.YearMonth != info.YearMonth {
				return &ImportError{File: f.FilenameInZip, Err: fmt.Errorf("record is for month %s", m.YearMonth)}
			}
			if err := checkMonthDays(m); err != nil {
				return &ImportError{File: f.FilenameInZip, Err: err}
			}
			m.Normalize()
			months[m.YearMonth] = &m
		case model.KindMandal:
			var doc model.MandalDocument
			if err := json.Unmarshal(f.Data, &doc); err != nil {
				return &ImportError{File: f.FilenameInZip, Err: err}
			}
			if doc.MandalArts == nil {
				doc.MandalArts = []model.MandalArt{}
			}
			mandal = &doc
		}
		accepted++
	}
	if accepted == 0 {
		return &ImportError{Err: errors.New("backup holds no planner documents")}
	}

	s.mu.Lock()
	s.loadSeq++
	s.year = year
	s.yearly = yearly
	s.months = months
	s.weekStart = initialWeekStart(year, s.now())
	s.defaulted = false
	s.selectedLabel = ""
	s.interaction = nil
	if mandal != nil {
		s.mandal = *mandal
	}
	err := s.markYearLocked()
	if err == nil && s.settings.LastOpenedYear != year {
		s.settings.LastOpenedYear = year
		err = s.markSettingsLocked()
	}
	for ym := range months {
		if err != nil {
			break
		}
		err = s.markMonthLocked(ym)
	}
	if err == nil && mandal != nil {
		err = s.markMandalLocked()
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.logger.Info("backup restored", "year", year, "files", accepted)
	s.publish(events.BackupRestored{Year: year, Files: accepted})
	return nil
}

// checkMonthDays rejects day keys that belong to another month; such days
// could never be read back.
func checkMonthDays(m model.MonthRecord) error {
	for date := range m.DailyData {
		ym, err := model.YearMonthOf(date)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDate, date)
		}
		if ym != m.YearMonth {
			return fmt.Errorf("day %s is not in %s", date, m.YearMonth)
		}
	}
	return nil
}
