package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/planner/pkg/glyph"
	"tableflip.dev/planner/pkg/model"
)

// PrettyPrint renders planner records for a terminal.
type PrettyPrint struct {
	ShowID bool
	Width  int
	Out    io.Writer
}

var (
	spacing = strings.Repeat(" ", len("0f1e2d3c  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return 80
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.out(), "s")
	}
	_, _ = c.Fprintln(pp.out(), "")
}

// JSON writes v indented, for --json output.
func (pp *PrettyPrint) JSON(v any) error {
	enc := json.NewEncoder(pp.out())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

func (pp *PrettyPrint) id(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return id
}

// swatch paints a block in the given hex colour, or leaves it plain when the
// colour does not parse.
func swatch(hex string) string {
	r, g, b, ok := rgb(hex)
	if !ok {
		return "■"
	}
	return color.RGB(r, g, b).Sprint("■")
}

// Labels prints a table of labels with how many events each holds.
func (pp *PrettyPrint) Labels(labels []model.Label, events []model.ProjectEvent) {
	pp.TitleWithCount("Labels", len(labels), "label")
	if len(labels) == 0 {
		pp.none()
		return
	}
	count := map[string]int{}
	for _, e := range events {
		count[e.LabelID]++
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, l := range labels {
		row := []any{swatch(l.Color), l.Name, fmt.Sprintf("%d events", count[l.ID])}
		if pp.ShowID {
			row = append([]any{color.New(color.FgHiYellow, color.Faint).Sprint(l.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Events prints project events with the label they belong to.
func (pp *PrettyPrint) Events(events []model.ProjectEvent, labels []model.Label) {
	pp.TitleWithCount("Events", len(events), "event")
	if len(events) == 0 {
		pp.none()
		return
	}
	byID := map[string]model.Label{}
	for _, l := range labels {
		byID[l.ID] = l
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, e := range events {
		l := byID[e.LabelID]
		span := e.StartDate
		if e.EndDate != e.StartDate {
			span += " → " + e.EndDate
		}
		row := []any{swatch(l.Color), span, l.Name}
		if pp.ShowID {
			row = append([]any{color.New(color.FgHiYellow, color.Faint).Sprint(e.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Backlog prints the unscheduled todos, highest priority colour first in
// the order they are stored.
func (pp *PrettyPrint) Backlog(todos []model.BacklogTodo) {
	pp.TitleWithCount("Backlog", len(todos), "todo")
	if len(todos) == 0 {
		pp.none()
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = uint(pp.width() - 20)
	tbl.Wrap = true
	for _, t := range todos {
		row := []any{swatch(t.Color), fmt.Sprintf("p%d", t.Priority), t.Text}
		if pp.ShowID {
			row = append([]any{color.New(color.FgHiYellow, color.Faint).Sprint(t.ID)}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Todos prints the todos of one day.
func (pp *PrettyPrint) Todos(todos ...model.DayTodo) {
	if len(todos) == 0 {
		pp.none()
		return
	}

	t := color.New()
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	f := color.New(color.Faint)

	for _, e := range todos {
		if pp.ShowID {
			id := pp.id(e.ID)
			_, _ = y.Fprint(pp.out(), id)
			_, _ = y.Fprint(pp.out(), strings.Repeat(" ", len(spacing)-len(id)))
		}
		text := e.Text
		if e.Completed {
			_, _ = f.Fprintf(pp.out(), "%s %s\n", glyph.Todo(true), glyph.Strike(text))
			continue
		}
		_, _ = t.Fprintf(pp.out(), "%s %s\n", glyph.Todo(false), text)
	}
	_, _ = t.Fprintln(pp.out(), "")
}

// Day prints a full day: mark, todos, projects and diary.
func (pp *PrettyPrint) Day(date string, day model.DayRecord) {
	mark := ""
	if day.CellMark != nil {
		mark = " " + glyph.Mark(*day.CellMark)
	}
	pp.Title(date + mark)
	pp.Todos(day.Todos...)

	for _, p := range day.ProjectTodos {
		_, _ = color.New(color.Bold).Fprintln(pp.out(), p.Name)
		for _, t := range p.Todos {
			_, _ = fmt.Fprintf(pp.out(), "  %s %s\n", glyph.Todo(t.Completed), t.Text)
		}
	}

	d := day.Diary
	if d != (model.Diary{}) {
		i := color.New(color.Italic)
		for _, part := range []struct{ name, text string }{{"Keep", d.Keep}, {"Problem", d.Problem}, {"Try", d.Try}} {
			if part.text == "" {
				continue
			}
			_, _ = i.Fprintln(pp.out(), part.name)
			_, _ = fmt.Fprintln(pp.out(), indent.String(wordwrap.String(part.text, pp.width()-2), 2))
		}
		pp.NewLine()
	}
}

// Marks prints the legend of known cell marks.
func (pp *PrettyPrint) Marks() {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Mark"), bold.Sprint("Name"), bold.Sprint("Meaning"))
	for _, g := range glyph.SortedMarks() {
		tbl.AddRow(g.Symbol, g.Key, g.Meaning)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
