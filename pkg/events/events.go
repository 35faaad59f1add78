// Package events defines the change notifications the state store publishes
// and the bus that delivers them.
package events

import "fmt"

// DataChanged is the event name every state mutation is published under.
const DataChanged = "dataChanged"

// Source is the tag identifying which mutation fired.
type Source string

const (
	SourceYearChange        Source = "yearChange"
	SourceYearAlreadyLoaded Source = "yearAlreadyLoaded"
	SourceWeekChange        Source = "weekChange"
	SourceSettings          Source = "settings"
	SourceLabels            Source = "labels"
	SourceEvents            Source = "events"
	SourceBacklog           Source = "backlog"
	SourceDay               Source = "day"
	SourceMonth             Source = "month"
	SourceMandal            Source = "mandalArt"
	SourceBackup            Source = "backupRestore"
)

// ChangeType enumerates supported change actions.
type ChangeType string

const (
	// ChangeCreate indicates a new resource was created.
	ChangeCreate ChangeType = "create"
	// ChangeUpdate indicates an existing resource changed.
	ChangeUpdate ChangeType = "update"
	// ChangeDelete indicates a resource was removed.
	ChangeDelete ChangeType = "delete"
	// ChangeReorder indicates a collection was re-sorted.
	ChangeReorder ChangeType = "reorder"
	// ChangeMove indicates a resource moved between collections.
	ChangeMove ChangeType = "move"
)

// Event is the closed set of change notifications. Subscribers type-switch on
// the concrete variants.
type Event interface {
	Source() Source
	Describe() string
	isEvent()
}

// YearLoaded announces that a year became resident, or that it already was.
type YearLoaded struct {
	Year          int
	WeekStart     string
	AlreadyLoaded bool
}

// CursorMoved announces a new weekly view start.
type CursorMoved struct {
	WeekStart string
}

// SettingsChanged announces a settings.json update.
type SettingsChanged struct{}

// LabelsChanged announces a label mutation.
type LabelsChanged struct {
	Action  ChangeType
	LabelID string
	// RemovedEvents counts events dropped by a cascading delete.
	RemovedEvents int
}

// ProjectEventsChanged announces a yearly calendar event mutation.
type ProjectEventsChanged struct {
	Action  ChangeType
	EventID string
}

// BacklogChanged announces a backlog mutation. For ChangeMove, Date names the
// day the todo landed on.
type BacklogChanged struct {
	Action ChangeType
	TodoID string
	Date   string
}

// DayPart names the section of a DayRecord that changed.
type DayPart string

const (
	PartTodos     DayPart = "todos"
	PartCellMark  DayPart = "cellMark"
	PartDiary     DayPart = "diary"
	PartProjects  DayPart = "projectTodos"
	PartTimeline  DayPart = "timeBlocks"
	PartGoals     DayPart = "goalBlocks"
	PartScheduled DayPart = "scheduledTimelineTasks"
)

// DayChanged announces a mutation inside one DayRecord.
type DayChanged struct {
	Date   string
	Part   DayPart
	Action ChangeType
	ID     string
}

// MonthChanged announces a month-level palette or routine mutation.
type MonthChanged struct {
	YearMonth string
	Action    ChangeType
}

// MandalChanged announces a mandala chart mutation.
type MandalChanged struct {
	Action  ChangeType
	ChartID string
	Cell    int
}

// BackupRestored announces a bulk import.
type BackupRestored struct {
	Year  int
	Files int
}

func (YearLoaded) isEvent()           {}
func (CursorMoved) isEvent()          {}
func (SettingsChanged) isEvent()      {}
func (LabelsChanged) isEvent()        {}
func (ProjectEventsChanged) isEvent() {}
func (BacklogChanged) isEvent()       {}
func (DayChanged) isEvent()           {}
func (MonthChanged) isEvent()         {}
func (MandalChanged) isEvent()        {}
func (BackupRestored) isEvent()       {}

// Source implements Event.
func (e YearLoaded) Source() Source {
	if e.AlreadyLoaded {
		return SourceYearAlreadyLoaded
	}
	return SourceYearChange
}

func (CursorMoved) Source() Source          { return SourceWeekChange }
func (SettingsChanged) Source() Source      { return SourceSettings }
func (LabelsChanged) Source() Source        { return SourceLabels }
func (ProjectEventsChanged) Source() Source { return SourceEvents }
func (BacklogChanged) Source() Source       { return SourceBacklog }
func (DayChanged) Source() Source           { return SourceDay }
func (MonthChanged) Source() Source         { return SourceMonth }
func (MandalChanged) Source() Source        { return SourceMandal }
func (BackupRestored) Source() Source       { return SourceBackup }

// Describe renders the event in a human-friendly format for logs.
func (e YearLoaded) Describe() string {
	return fmt.Sprintf(`year:%d week:%q already:%t`, e.Year, e.WeekStart, e.AlreadyLoaded)
}

func (e CursorMoved) Describe() string { return fmt.Sprintf(`week:%q`, e.WeekStart) }

func (SettingsChanged) Describe() string { return "settings" }

func (e LabelsChanged) Describe() string {
	return fmt.Sprintf(`action:%q label:%q removed:%d`, e.Action, e.LabelID, e.RemovedEvents)
}

func (e ProjectEventsChanged) Describe() string {
	return fmt.Sprintf(`action:%q event:%q`, e.Action, e.EventID)
}

func (e BacklogChanged) Describe() string {
	return fmt.Sprintf(`action:%q todo:%q date:%q`, e.Action, e.TodoID, e.Date)
}

func (e DayChanged) Describe() string {
	return fmt.Sprintf(`date:%q part:%q action:%q id:%q`, e.Date, e.Part, e.Action, e.ID)
}

func (e MonthChanged) Describe() string {
	return fmt.Sprintf(`month:%q action:%q`, e.YearMonth, e.Action)
}

func (e MandalChanged) Describe() string {
	return fmt.Sprintf(`action:%q chart:%q cell:%d`, e.Action, e.ChartID, e.Cell)
}

func (e BackupRestored) Describe() string {
	return fmt.Sprintf(`year:%d files:%d`, e.Year, e.Files)
}
