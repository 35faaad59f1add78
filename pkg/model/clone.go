package model

import (
	"maps"
	"slices"
)

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	s.ColorPalette = cloneSlice(s.ColorPalette)
	return s
}

// Clone returns a deep copy.
func (y YearlyRecord) Clone() YearlyRecord {
	y.Labels = cloneSlice(y.Labels)
	y.Events = cloneSlice(y.Events)
	y.BacklogTodos = cloneSlice(y.BacklogTodos)
	return y
}

// Clone returns a deep copy.
func (m MonthRecord) Clone() MonthRecord {
	m.Routines = cloneSlice(m.Routines)
	m.ColorPalette = cloneSlice(m.ColorPalette)
	days := make(map[string]DayRecord, len(m.DailyData))
	for k, d := range m.DailyData {
		days[k] = d.Clone()
	}
	m.DailyData = days
	return m
}

// Clone returns a deep copy.
func (d DayRecord) Clone() DayRecord {
	d.TimeBlocks = cloneMap(d.TimeBlocks)
	d.GoalBlocks = cloneMap(d.GoalBlocks)
	d.ScheduledTimelineTasks = cloneSlice(d.ScheduledTimelineTasks)
	d.Todos = cloneSlice(d.Todos)
	projects := make([]Project, len(d.ProjectTodos))
	for i, p := range d.ProjectTodos {
		p.Todos = cloneSlice(p.Todos)
		projects[i] = p
	}
	d.ProjectTodos = projects
	if d.CellMark != nil {
		mark := *d.CellMark
		d.CellMark = &mark
	}
	return d
}

// IsEmpty reports whether the day carries no data at all.
func (d DayRecord) IsEmpty() bool {
	return len(d.TimeBlocks) == 0 &&
		len(d.GoalBlocks) == 0 &&
		len(d.ScheduledTimelineTasks) == 0 &&
		len(d.Todos) == 0 &&
		len(d.ProjectTodos) == 0 &&
		d.Diary == (Diary{}) &&
		d.CellMark == nil
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return slices.Clone(in)
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	if in == nil {
		return map[K]V{}
	}
	return maps.Clone(in)
}
