package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/planner/pkg/model"
)

func init() {
	color.NoColor = true
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		month time.Time
		want  int
	}{
		{time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC), 29},
		{time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), 28},
		{time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), 31},
	}
	for _, tt := range tests {
		if got := DaysIn(tt.month); got != tt.want {
			t.Errorf("DaysIn(%s) = %d, want %d", tt.month.Format("2006-01"), got, tt.want)
		}
	}
}

func TestPrintMonth(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.PrintMonth(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), func(date string) (string, int) {
		if date == "2025-03-05" {
			return "star", 0
		}
		return "", 0
	})
	out := buf.String()
	if !strings.Contains(out, "March") || !strings.Contains(out, "★") {
		t.Fatalf("unexpected calendar:\n%s", out)
	}
	// March 2025 starts on a Saturday: five blanks then 1 and 2.
	lines := strings.Split(out, "\n")
	if got := lines[2]; got != strings.Repeat("   ", 5)+"  1  2" {
		t.Fatalf("first week = %q", got)
	}
}

func TestTodosAndBacklog(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf, ShowID: true}
	pp.Todos(model.DayTodo{ID: "0123456789", Text: "Buy milk"}, model.DayTodo{ID: "b", Text: "Walk", Completed: true})
	pp.Backlog([]model.BacklogTodo{{ID: "x", Text: "Taxes", Priority: 3, Color: "#f44336"}})
	out := buf.String()
	for _, want := range []string{"01234567", "● Buy milk", "✘", "Backlog - 1 todo", "p3", "Taxes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDayDiaryWraps(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf, Width: 20}
	mark := "heart"
	pp.Day("2025-03-05", model.DayRecord{
		CellMark: &mark,
		Diary:    model.Diary{Keep: "long walks along the river every morning"},
	})
	out := buf.String()
	if !strings.Contains(out, "2025-03-05 ♥") {
		t.Fatalf("missing title:\n%s", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "  ") && len(line) > 20 {
			t.Fatalf("diary line not wrapped: %q", line)
		}
	}
}
