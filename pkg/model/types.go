// Package model defines the planner's entities and the JSON documents they
// are persisted in.
package model

import "encoding/json"

// ColorEntry is one swatch of a colour palette.
type ColorEntry struct {
	Color string `json:"color"`
	Label string `json:"label,omitempty"`
}

// Settings is the global settings.json document.
type Settings struct {
	ColorPalette   []ColorEntry `json:"colorPalette"`
	LastOpenedYear int          `json:"lastOpenedYear"`
}

// Label groups project events on the yearly calendar.
type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ProjectEvent is an inclusive date range attached to a label.
type ProjectEvent struct {
	ID        string `json:"id"`
	LabelID   string `json:"labelId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// BacklogTodo is an unscheduled todo. Color follows Priority.
type BacklogTodo struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Priority int    `json:"priority"`
	Color    string `json:"color"`
}

// YearlyRecord is the {year}/{year}.json document.
type YearlyRecord struct {
	Year         int            `json:"year"`
	Labels       []Label        `json:"labels"`
	Events       []ProjectEvent `json:"events"`
	BacklogTodos []BacklogTodo  `json:"backlogTodos"`
}

// Routine is a recurring item shown for every day of a month.
type Routine struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// MonthRecord is the {year}/{year}-{MM}.json document.
type MonthRecord struct {
	YearMonth    string               `json:"yearMonth"`
	Routines     []Routine            `json:"routines"`
	ColorPalette []ColorEntry         `json:"colorPalette"`
	DailyData    map[string]DayRecord `json:"dailyData"`
}

// BlockCell is one cell of the daily timeline or goal grid.
type BlockCell struct {
	Text          string `json:"text,omitempty"`
	Color         string `json:"color,omitempty"`
	PreviousColor string `json:"previousColor,omitempty"`
}

// ScheduledTask is a task laid over a span of timeline blocks.
type ScheduledTask struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Color      string `json:"color,omitempty"`
	StartBlock string `json:"startBlock"`
	EndBlock   string `json:"endBlock"`
}

// DayTodo is a todo scheduled on a date.
type DayTodo struct {
	ID                string `json:"id"`
	Text              string `json:"text"`
	Completed         bool   `json:"completed"`
	Color             string `json:"color,omitempty"`
	OriginalBacklogID string `json:"originalBacklogId,omitempty"`
}

// ProjectTodo is an item of a daily project list.
type ProjectTodo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Project is a named todo list kept on a single day.
type Project struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Todos []ProjectTodo `json:"todos"`
}

// Diary is the keep/problem/try retrospective of a day.
type Diary struct {
	Keep    string `json:"keep"`
	Problem string `json:"problem"`
	Try     string `json:"try"`
}

// DayRecord holds everything recorded for one date.
type DayRecord struct {
	TimeBlocks             map[string]BlockCell `json:"timeBlocks"`
	GoalBlocks             map[string]BlockCell `json:"goalBlocks"`
	ScheduledTimelineTasks []ScheduledTask      `json:"scheduledTimelineTasks"`
	Todos                  []DayTodo            `json:"todos"`
	ProjectTodos           []Project            `json:"projectTodos"`
	Diary                  Diary                `json:"diary"`
	CellMark               *string              `json:"cellMark"`
}

// FileData is one document of an export set.
type FileData struct {
	FilenameInZip string          `json:"filenameInZip"`
	Data          json.RawMessage `json:"data"`
}

// NewYearlyRecord returns an empty record for year.
func NewYearlyRecord(year int) YearlyRecord {
	return YearlyRecord{
		Year:         year,
		Labels:       []Label{},
		Events:       []ProjectEvent{},
		BacklogTodos: []BacklogTodo{},
	}
}

// NewMonthRecord returns an empty record for yearMonth ("YYYY-MM").
func NewMonthRecord(yearMonth string) MonthRecord {
	return MonthRecord{
		YearMonth:    yearMonth,
		Routines:     []Routine{},
		ColorPalette: []ColorEntry{},
		DailyData:    map[string]DayRecord{},
	}
}

// NewDayRecord returns an empty day.
func NewDayRecord() DayRecord {
	return DayRecord{
		TimeBlocks:             map[string]BlockCell{},
		GoalBlocks:             map[string]BlockCell{},
		ScheduledTimelineTasks: []ScheduledTask{},
		Todos:                  []DayTodo{},
		ProjectTodos:           []Project{},
	}
}

// Normalize fills nil collections left by sparse JSON documents.
func (y *YearlyRecord) Normalize() {
	if y.Labels == nil {
		y.Labels = []Label{}
	}
	if y.Events == nil {
		y.Events = []ProjectEvent{}
	}
	if y.BacklogTodos == nil {
		y.BacklogTodos = []BacklogTodo{}
	}
}

// Normalize fills nil collections left by sparse JSON documents.
func (m *MonthRecord) Normalize() {
	if m.Routines == nil {
		m.Routines = []Routine{}
	}
	if m.ColorPalette == nil {
		m.ColorPalette = []ColorEntry{}
	}
	if m.DailyData == nil {
		m.DailyData = map[string]DayRecord{}
	}
	for k, d := range m.DailyData {
		d.Normalize()
		m.DailyData[k] = d
	}
}

// Normalize fills nil collections left by sparse JSON documents.
func (d *DayRecord) Normalize() {
	if d.TimeBlocks == nil {
		d.TimeBlocks = map[string]BlockCell{}
	}
	if d.GoalBlocks == nil {
		d.GoalBlocks = map[string]BlockCell{}
	}
	if d.ScheduledTimelineTasks == nil {
		d.ScheduledTimelineTasks = []ScheduledTask{}
	}
	if d.Todos == nil {
		d.Todos = []DayTodo{}
	}
	if d.ProjectTodos == nil {
		d.ProjectTodos = []Project{}
	}
	for i := range d.ProjectTodos {
		if d.ProjectTodos[i].Todos == nil {
			d.ProjectTodos[i].Todos = []ProjectTodo{}
		}
	}
}

// Normalize fills a nil palette.
func (s *Settings) Normalize() {
	if s.ColorPalette == nil {
		s.ColorPalette = []ColorEntry{}
	}
}
