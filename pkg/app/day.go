package app

import (
	"strings"

	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/state"
)

// DaySummary is everything recorded on one date, for JSON consumers.
type DaySummary struct {
	Date      string                `json:"date"`
	Weekday   string                `json:"weekday"`
	CellMark  string                `json:"cellMark,omitempty"`
	Todos     []model.DayTodo       `json:"todos"`
	Projects  []model.Project       `json:"projects,omitempty"`
	Diary     *model.Diary          `json:"diary,omitempty"`
	Events    []model.ProjectEvent  `json:"events,omitempty"`
	Scheduled []model.ScheduledTask `json:"scheduled,omitempty"`
}

// Summarize collects the day record, mark and covering events of date.
func Summarize(st *state.Store, date string) (DaySummary, error) {
	t, err := model.ParseDate(strings.TrimSpace(date))
	if err != nil {
		return DaySummary{}, err
	}
	date = model.FormatDate(t)
	day := st.GetDay(date)
	out := DaySummary{
		Date:      date,
		Weekday:   t.Weekday().String(),
		CellMark:  st.GetCellMark(date),
		Todos:     day.Todos,
		Projects:  day.ProjectTodos,
		Events:    st.EventsOn(date),
		Scheduled: day.ScheduledTimelineTasks,
	}
	if out.Todos == nil {
		out.Todos = []model.DayTodo{}
	}
	if day.Diary != (model.Diary{}) {
		d := day.Diary
		out.Diary = &d
	}
	return out, nil
}
