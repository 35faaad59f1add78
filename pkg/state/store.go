// Package state owns the planner's in-memory data tree. Every mutation goes
// through a named method that updates the tree, marks the owning document
// dirty and publishes a change event on the bus.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"tableflip.dev/planner/pkg/dirty"
	"tableflip.dev/planner/pkg/events"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/store"
)

// PreviousColorPolicy decides whether BlockCell.PreviousColor survives a save.
type PreviousColorPolicy string

const (
	// PreviousColorKeep persists the marker everywhere.
	PreviousColorKeep PreviousColorPolicy = "keep"
	// PreviousColorStripGoals drops the marker from goal blocks when saving.
	PreviousColorStripGoals PreviousColorPolicy = "strip-goals"
)

// ParsePreviousColorPolicy accepts the configuration spelling of a policy.
func ParsePreviousColorPolicy(s string) (PreviousColorPolicy, error) {
	switch PreviousColorPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PreviousColorKeep:
		return PreviousColorKeep, nil
	case PreviousColorStripGoals:
		return PreviousColorStripGoals, nil
	default:
		return "", fmt.Errorf("state: unknown previous color policy %q", s)
	}
}

// Options configures a Store. Zero values get working defaults.
type Options struct {
	Documents     store.Documents
	Bus           *events.Bus
	Dirty         *dirty.Service
	Logger        *log.Logger
	Now           func() time.Time
	NewID         func() string
	PreviousColor PreviousColorPolicy
}

// Store is the single source of truth for planner data. It is safe for
// concurrent use; events are dispatched after the lock is released so
// handlers may call back into the store.
type Store struct {
	docs          store.Documents
	bus           *events.Bus
	dirty         *dirty.Service
	logger        *log.Logger
	now           func() time.Time
	newID         func() string
	previousColor PreviousColorPolicy

	mu            sync.RWMutex
	loadSeq       uint64
	settings      model.Settings
	mandal        model.MandalDocument
	year          int
	defaulted     bool
	yearly        model.YearlyRecord
	months        map[string]*model.MonthRecord
	weekStart     time.Time
	selectedLabel string
	interaction   *blockInteraction
}

// New builds a Store holding an empty record for the current year. Nothing
// is read until LoadDataForYear, which reads that year even though it is
// already resident.
func New(opts Options) *Store {
	s := &Store{
		docs:          opts.Documents,
		bus:           opts.Bus,
		dirty:         opts.Dirty,
		logger:        opts.Logger,
		now:           opts.Now,
		newID:         opts.NewID,
		previousColor: opts.PreviousColor,
		settings:      model.Settings{ColorPalette: []model.ColorEntry{}},
		mandal:        model.MandalDocument{MandalArts: []model.MandalArt{}},
		months:        map[string]*model.MonthRecord{},
	}
	if s.docs == nil {
		s.docs = store.NewMemory()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.logger = s.logger.WithPrefix("state")
	if s.bus == nil {
		s.bus = events.NewBus(s.logger)
	}
	if s.dirty == nil {
		s.dirty = dirty.New()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.previousColor == "" {
		s.previousColor = PreviousColorKeep
	}
	now := s.now()
	s.year = now.Year()
	s.defaulted = true
	s.yearly = model.NewYearlyRecord(s.year)
	s.weekStart = initialWeekStart(s.year, now)
	return s
}

// Bus is the bus change events are published on.
func (s *Store) Bus() *events.Bus { return s.bus }

// Dirty is the tracker unsaved documents are recorded in.
func (s *Store) Dirty() *dirty.Service { return s.dirty }

// Documents is the backing persistence.
func (s *Store) Documents() store.Documents { return s.docs }

// Init loads the global settings and mandala documents.
func (s *Store) Init(ctx context.Context) error {
	var settings model.Settings
	found, err := s.readDocument(ctx, model.SettingsFile, &settings)
	if err != nil {
		return err
	}
	if !found {
		settings = model.Settings{}
	}
	settings.Normalize()

	var mandal model.MandalDocument
	if _, err := s.readDocument(ctx, model.MandalFile, &mandal); err != nil {
		return err
	}
	if mandal.MandalArts == nil {
		mandal.MandalArts = []model.MandalArt{}
	}

	s.mu.Lock()
	s.settings = settings
	s.mandal = mandal
	s.mu.Unlock()
	s.logger.Debug("initialised", "palette", len(settings.ColorPalette), "charts", len(mandal.MandalArts))
	return nil
}

// readDocument decodes name from the dirty cache, falling back to storage.
// A missing document is reported as found=false, not an error.
func (s *Store) readDocument(ctx context.Context, name string, v any) (bool, error) {
	if data, ok := s.dirty.Get(name); ok {
		if err := json.Unmarshal(data, v); err != nil {
			return false, &ImportError{File: name, Err: err}
		}
		return true, nil
	}
	data, err := s.docs.ReadDocument(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("state: read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, &ImportError{File: name, Err: err}
	}
	return true, nil
}

// LoadDataForYear makes year resident. If it already is, nothing is read and
// a YearLoaded event with AlreadyLoaded set is published instead.
func (s *Store) LoadDataForYear(ctx context.Context, year int) error {
	return s.load(ctx, year, false)
}

// Reload re-reads the resident year even though it is loaded, keeping
// unsaved changes from the dirty cache.
func (s *Store) Reload(ctx context.Context) error {
	s.mu.RLock()
	year := s.year
	s.mu.RUnlock()
	if year == 0 {
		return ErrNoYear
	}
	return s.load(ctx, year, true)
}

func (s *Store) load(ctx context.Context, year int, force bool) error {
	if year < 1 || year > 9999 {
		return fmt.Errorf("%w: year %d", ErrInvalidDate, year)
	}

	s.mu.Lock()
	s.loadSeq++
	token := s.loadSeq
	if !force && !s.defaulted && s.year == year {
		week := model.FormatDate(s.weekStart)
		s.mu.Unlock()
		s.publish(events.YearLoaded{Year: year, WeekStart: week, AlreadyLoaded: true})
		return nil
	}
	s.mu.Unlock()

	yearly, months, err := s.readYear(ctx, year)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if token != s.loadSeq {
		s.mu.Unlock()
		s.logger.Debug("discarding stale load", "year", year)
		return ErrLoadSuperseded
	}
	s.year = year
	s.defaulted = false
	s.yearly = yearly
	s.months = months
	if !force || s.weekStart.Year() != year {
		s.weekStart = initialWeekStart(year, s.now())
	}
	s.selectedLabel = ""
	s.interaction = nil
	var markErr error
	if s.settings.LastOpenedYear != year {
		s.settings.LastOpenedYear = year
		markErr = s.markSettingsLocked()
	}
	week := model.FormatDate(s.weekStart)
	s.mu.Unlock()
	if markErr != nil {
		return markErr
	}

	s.logger.Debug("year loaded", "year", year, "months", len(months))
	s.publish(events.YearLoaded{Year: year, WeekStart: week})
	return nil
}

func (s *Store) readYear(ctx context.Context, year int) (model.YearlyRecord, map[string]*model.MonthRecord, error) {
	name := model.YearFile(year)
	var yearly model.YearlyRecord
	found, err := s.readDocument(ctx, name, &yearly)
	if err != nil {
		return yearly, nil, err
	}
	if !found {
		yearly = model.NewYearlyRecord(year)
	}
	if yearly.Year != year {
		return yearly, nil, &ImportError{File: name, Err: fmt.Errorf("record is for year %d", yearly.Year)}
	}
	yearly.Normalize()

	months := map[string]*model.MonthRecord{}
	for m := time.January; m <= time.December; m++ {
		if err := ctx.Err(); err != nil {
			return yearly, nil, err
		}
		ym := model.MonthKey(year, m)
		name := model.MonthFile(ym)
		var month model.MonthRecord
		found, err := s.readDocument(ctx, name, &month)
		if err != nil {
			return yearly, nil, err
		}
		if !found {
			continue
		}
		if month.YearMonth == "" {
			month.YearMonth = ym
		}
		if month.YearMonth != ym {
			return yearly, nil, &ImportError{File: name, Err: fmt.Errorf("record is for month %s", month.YearMonth)}
		}
		if err := checkMonthDays(month); err != nil {
			return yearly, nil, &ImportError{File: name, Err: err}
		}
		month.Normalize()
		months[ym] = &month
	}
	return yearly, months, nil
}

// initialWeekStart is the Monday of today's week when today falls in year,
// otherwise the Monday of the week holding January 1st.
func initialWeekStart(year int, now time.Time) time.Time {
	if now.Year() == year {
		return model.MondayOf(now)
	}
	return model.MondayOf(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
}

// State is a read-only snapshot of what a view needs to render.
type State struct {
	Settings      model.Settings     `json:"settings"`
	Year          int                `json:"currentDisplayYear"`
	Yearly        model.YearlyRecord `json:"yearlyData"`
	WeekStart     string             `json:"currentWeeklyViewStartDate"`
	SelectedLabel string             `json:"selectedLabel"`
	ColorPalette  []model.ColorEntry `json:"colorPalette"`
	Routines      []model.Routine    `json:"routines"`
}

// GetState returns a deep copy of the resident state. The palette and
// routines are those of the month holding the week start.
func (s *Store) GetState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := State{
		Settings:      s.settings.Clone(),
		Year:          s.year,
		Yearly:        s.yearly.Clone(),
		SelectedLabel: s.selectedLabel,
		Routines:      []model.Routine{},
	}
	if s.year != 0 {
		st.WeekStart = model.FormatDate(s.weekStart)
	}
	month := s.months[s.weekStart.Format(model.LayoutYearMonth)]
	st.ColorPalette = model.ActivePalette(month, s.settings)
	if month != nil {
		st.Routines = append(st.Routines, month.Routines...)
	}
	return st
}

// Year is the resident year.
func (s *Store) Year() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.year
}

// WeekStart is the Monday the weekly view starts on.
func (s *Store) WeekStart() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.weekStart
}

// SetWeeklyViewStart moves the cursor to the Monday of date's week. No data
// is reloaded.
func (s *Store) SetWeeklyViewStart(date time.Time) {
	monday := model.MondayOf(date)
	s.mu.Lock()
	s.weekStart = monday
	s.mu.Unlock()
	s.publish(events.CursorMoved{WeekStart: model.FormatDate(monday)})
}

// ShiftWeek moves the cursor by n weeks.
func (s *Store) ShiftWeek(n int) time.Time {
	s.mu.Lock()
	if s.weekStart.IsZero() {
		s.weekStart = model.MondayOf(s.now())
	}
	s.weekStart = s.weekStart.AddDate(0, 0, 7*n)
	monday := s.weekStart
	s.mu.Unlock()
	s.publish(events.CursorMoved{WeekStart: model.FormatDate(monday)})
	return monday
}

// Save writes every dirty document to storage.
func (s *Store) Save(ctx context.Context) (dirty.Report, error) {
	report, err := s.dirty.TriggerPartialSave(ctx, s.docs)
	if err != nil {
		s.logger.Error("save failed", "err", err)
		return report, err
	}
	s.logger.Debug("saved", "files", len(report.Written))
	return report, nil
}

// SaveYear writes the full document set of year, dirty or not.
func (s *Store) SaveYear(ctx context.Context, year int) (dirty.Report, error) {
	data, err := s.GetSpecificYearDataForSave(ctx, year)
	if err != nil {
		return dirty.Report{}, err
	}
	files := make([]dirty.File, 0, len(data))
	for _, f := range data {
		files = append(files, dirty.File{Name: f.FilenameInZip, Data: f.Data})
	}
	return s.dirty.TriggerFullYearSave(ctx, year, files, s.docs)
}

func (s *Store) publish(ev events.Event) {
	s.logger.Debug(events.DataChanged, "source", ev.Source(), "detail", ev.Describe())
	s.bus.Dispatch(events.DataChanged, ev)
}

// requireYearLocked fails when no year is resident. Caller holds mu.
func (s *Store) requireYearLocked() error {
	if s.year == 0 {
		return ErrNoYear
	}
	return nil
}

// checkDateLocked validates date and returns its month key. Caller holds mu.
func (s *Store) checkDateLocked(date string) (string, error) {
	if err := s.requireYearLocked(); err != nil {
		return "", err
	}
	t, err := model.ParseDate(date)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if t.Year() != s.year {
		return "", fmt.Errorf("%w: %s not in %d", ErrDateOutsideYear, date, s.year)
	}
	return t.Format(model.LayoutYearMonth), nil
}

// checkMonthLocked validates a "YYYY-MM" key. Caller holds mu.
func (s *Store) checkMonthLocked(ym string) error {
	if err := s.requireYearLocked(); err != nil {
		return err
	}
	t, err := time.Parse(model.LayoutYearMonth, ym)
	if err != nil {
		return fmt.Errorf("%w: month %q", ErrInvalidDate, ym)
	}
	if t.Year() != s.year {
		return fmt.Errorf("%w: %s not in %d", ErrDateOutsideYear, ym, s.year)
	}
	return nil
}

// updateMonth runs fn against the month ym, creating it if needed. The month
// is only published into the tree when fn succeeds. Caller holds mu.
func (s *Store) updateMonth(ym string, fn func(*model.MonthRecord) error) error {
	month, ok := s.months[ym]
	if !ok {
		m := model.NewMonthRecord(ym)
		month = &m
	}
	if err := fn(month); err != nil {
		return err
	}
	s.months[ym] = month
	return s.markMonthLocked(ym)
}

// updateDay runs fn against the day record of date, creating the month and
// day on demand. fn must validate before it mutates. Caller holds mu.
func (s *Store) updateDay(date string, fn func(*model.DayRecord) error) error {
	ym, err := s.checkDateLocked(date)
	if err != nil {
		return err
	}
	return s.updateMonth(ym, func(m *model.MonthRecord) error {
		day, ok := m.DailyData[date]
		if !ok {
			day = model.NewDayRecord()
		}
		day.Normalize()
		if err := fn(&day); err != nil {
			return err
		}
		m.DailyData[date] = day
		return nil
	})
}

// dayLocked returns the stored day for date, if any. Caller holds mu.
func (s *Store) dayLocked(date string) (model.DayRecord, bool) {
	t, err := model.ParseDate(date)
	if err != nil {
		return model.DayRecord{}, false
	}
	month, ok := s.months[t.Format(model.LayoutYearMonth)]
	if !ok {
		return model.DayRecord{}, false
	}
	day, ok := month.DailyData[date]
	return day, ok
}

func (s *Store) markYearLocked() error {
	return s.dirty.MarkDirty(model.YearFile(s.year), s.yearly)
}

func (s *Store) markMonthLocked(ym string) error {
	month, ok := s.months[ym]
	if !ok {
		return nil
	}
	return s.dirty.MarkDirty(model.MonthFile(ym), s.monthPayload(month))
}

func (s *Store) markSettingsLocked() error {
	return s.dirty.MarkDirty(model.SettingsFile, s.settings)
}

func (s *Store) markMandalLocked() error {
	return s.dirty.MarkDirty(model.MandalFile, s.mandal)
}

// monthPayload applies the previous colour policy to a month about to be
// persisted. The live record is never modified.
func (s *Store) monthPayload(month *model.MonthRecord) model.MonthRecord {
	if s.previousColor != PreviousColorStripGoals {
		return *month
	}
	out := month.Clone()
	for date, day := range out.DailyData {
		for key, cell := range day.GoalBlocks {
			cell.PreviousColor = ""
			day.GoalBlocks[key] = cell
		}
		out.DailyData[date] = day
	}
	return out
}
