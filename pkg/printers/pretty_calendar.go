package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/planner/pkg/glyph"
	"tableflip.dev/planner/pkg/model"
)

const width = len(" 1  2  3  4  5  6  7 ") // an example week

// DayMarks answers the cell mark and todo count of a date.
type DayMarks func(date string) (mark string, todos int)

// PrintMonth prints a Monday-first calendar for the month of then. Days with
// todos are bold; marked days show their glyph instead of the number.
func (pp *PrettyPrint) PrintMonth(then time.Time, marks DayMarks) {
	w := pp.out()
	tf := color.New(color.FgWhite, color.Italic)

	m := then.Month().String()
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))
	_, _ = color.New(color.Faint).Fprintln(w, " Mo Tu We Th Fr Sa Su")

	first := time.Date(then.Year(), then.Month(), 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) + 6) % 7
	_, _ = fmt.Fprint(w, strings.Repeat("   ", offset))

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)
	mk := color.New(color.FgHiYellow)

	days := DaysIn(then)
	for i := 0; i < days; i++ {
		date := model.FormatDate(first.AddDate(0, 0, i))
		mark, todos := "", 0
		if marks != nil {
			mark, todos = marks(date)
		}
		switch {
		case mark != "":
			_, _ = mk.Fprintf(w, "%3s", glyph.Mark(mark))
		case todos > 0:
			_, _ = l2.Fprintf(w, "%3d", i+1)
		default:
			_, _ = l1.Fprintf(w, "%3d", i+1)
		}
		if (offset+i+1)%7 == 0 {
			_, _ = fmt.Fprint(w, "\n")
		}
	}
	_, _ = fmt.Fprint(w, "\n\n")
}

// PrintYear prints the twelve months of year.
func (pp *PrettyPrint) PrintYear(year int, marks DayMarks) {
	then := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		pp.PrintMonth(then, marks)
		then = NextMonth(then)
	}
}

// Week prints seven days from start, one block per day.
func (pp *PrettyPrint) Week(start time.Time, day func(date string) model.DayRecord) {
	b := color.New(color.Bold)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		date := model.FormatDate(d)
		rec := day(date)
		mark := ""
		if rec.CellMark != nil {
			mark = " " + glyph.Mark(*rec.CellMark)
		}
		_, _ = b.Fprintf(pp.out(), "%s %s%s\n", d.Weekday().String()[0:3], date, mark)
		pp.Todos(rec.Todos...)
	}
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 0, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func rgb(hex string) (r, g, b int, ok bool) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, 0, 0, false
	}
	r8, g8, b8 := c.RGB255()
	return int(r8), int(g8), int(b8), true
}
