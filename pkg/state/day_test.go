package state

import (
	"errors"
	"testing"

	"tableflip.dev/planner/pkg/events"
	"tableflip.dev/planner/pkg/model"
)

func TestTodoScenario(t *testing.T) {
	f := loadedFixture(t, 2025)
	s := f.store
	if _, err := s.AddTodoForDate("2025-03-05", "Buy milk"); err != nil {
		t.Fatal(err)
	}
	todos := s.GetTodosForDate("2025-03-05")
	if len(todos) != 1 || todos[0].Text != "Buy milk" || todos[0].Completed {
		t.Fatalf("unexpected todos %v", todos)
	}
	untouched := s.GetTodosForDate("2025-03-06")
	if untouched == nil || len(untouched) != 0 {
		t.Fatalf("untouched date should give an empty list, got %#v", untouched)
	}
	if got := s.GetTodosForDate("not a date"); len(got) != 0 {
		t.Fatalf("invalid date should give an empty list, got %v", got)
	}
}

func TestTodoMutations(t *testing.T) {
	f := loadedFixture(t, 2025)
	s := f.store
	const date = "2025-03-05"
	a, _ := s.AddTodoForDate(date, "a")
	b, _ := s.AddTodoForDate(date, "b")
	c, _ := s.AddTodoForDate(date, "c")

	done := true
	if err := s.UpdateTodoPropertyForDate(date, b.ID, TodoUpdate{Completed: &done}); err != nil {
		t.Fatal(err)
	}
	text := "bee"
	if err := s.UpdateTodoPropertyForDate(date, b.ID, TodoUpdate{Text: &text}); err != nil {
		t.Fatal(err)
	}
	empty := " "
	if err := s.UpdateTodoPropertyForDate(date, b.ID, TodoUpdate{Text: &empty}); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if err := s.ReorderTodosForDate(date, []string{c.ID, b.ID, a.ID}); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteTodoForDate(date, a.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteTodoForDate(date, a.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	todos := s.GetTodosForDate(date)
	if len(todos) != 2 || todos[0].ID != c.ID || todos[1].Text != "bee" || !todos[1].Completed {
		t.Fatalf("unexpected todos %v", todos)
	}

	var month model.MonthRecord
	if ok, err := s.Dirty().Decode("2025/2025-03.json", &month); !ok || err != nil {
		t.Fatalf("month not dirty: %v %v", ok, err)
	}
	if got := month.DailyData[date].Todos; len(got) != 2 {
		t.Fatalf("dirty payload out of date: %v", got)
	}
	ev, ok := f.rec.last().(events.DayChanged)
	if !ok || ev.Part != events.PartTodos || ev.Action != events.ChangeDelete {
		t.Fatalf("unexpected event %#v", f.rec.last())
	}
}

func TestWritesOutsideYearAreRejected(t *testing.T) {
	f := loadedFixture(t, 2025)
	s := f.store
	if _, err := s.AddTodoForDate("2024-12-31", "late"); !errors.Is(err, ErrDateOutsideYear) {
		t.Fatalf("expected ErrDateOutsideYear, got %v", err)
	}
	if err := s.SetCellMark("2025-02-30", "star"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if s.Dirty().Len() != 1 {
		t.Fatalf("rejected writes dirtied files: %v", s.Dirty().Files())
	}
}

func TestFailedDayWriteCreatesNothing(t *testing.T) {
	f := loadedFixture(t, 2025)
	s := f.store
	if err := s.DeleteTodoForDate("2025-08-01", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, ok := s.Dirty().Get("2025/2025-08.json"); ok {
		t.Fatal("failed mutation marked the month dirty")
	}
	data, err := s.GetCurrentYearDataForSave()
	if err != nil {
		t.Fatal(err)
	}
	for _, fd := range data {
		if fd.FilenameInZip == "2025/2025-08.json" {
			t.Fatal("failed mutation created a month record")
		}
	}
}

func TestCellMark(t *testing.T) {
	f := loadedFixture(t, 2025)
	s := f.store
	const date = "2025-04-01"
	if got := s.GetCellMark(date); got != "" {
		t.Fatalf("unset mark = %q", got)
	}
	if err := s.SetCellMark(date, "star"); err != nil {
		t.Fatal(err)
	}
	if got := s.GetCellMark(date); got != "star" {
		t.Fatalf("mark = %q", got)
	}
	for _, clear := range []string{"none", ""} {
		if err := s.SetCellMark(date, "star"); err != nil {
			t.Fatal(err)
		}
		if err := s.SetCellMark(date, clear); err != nil {
			t.Fatal(err)
		}
		if got := s.GetCellMark(date); got != "" {
			t.Fatalf("SetCellMark(%q) left %q", clear, got)
		}
		if s.GetDay(date).CellMark != nil {
			t.Fatalf("SetCellMark(%q) should store null", clear)
		}
	}
}

func TestDiary(t *testing.T) {
	f := loadedFixture(t, 2025)
	s := f.store
	d := model.Diary{Keep: "walks", Problem: "sleep", Try: "earlier"}
	if err := s.UpdateDiary("2025-05-05", d); err != nil {
		t.Fatal(err)
	}
	if got := s.GetDiary("2025-05-05"); got != d {
		t.Fatalf("diary = %+v", got)
	}
	if got := s.GetDiary("2025-05-06"); got != (model.Diary{}) {
		t.Fatalf("untouched diary = %+v", got)
	}
}

func TestProjects(t *testing.T) {
	f := loadedFixture(t, 2025)
	s := f.store
	const date = "2025-06-01"
	p, err := s.AddProject(date, "Garden")
	if err != nil {
		t.Fatal(err)
	}
	item, err := s.AddProjectTodo(date, p.ID, "Dig")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddProjectTodo(date, "nope", "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	done, err := s.ToggleProjectTodo(date, p.ID, item.ID)
	if err != nil || !done {
		t.Fatalf("toggle = %v, %v", done, err)
	}
	if err := s.RenameProject(date, p.ID, "Yard"); err != nil {
		t.Fatal(err)
	}
	day := s.GetDay(date)
	if len(day.ProjectTodos) != 1 || day.ProjectTodos[0].Name != "Yard" || !day.ProjectTodos[0].Todos[0].Completed {
		t.Fatalf("unexpected projects %+v", day.ProjectTodos)
	}
	if err := s.DeleteProjectTodo(date, p.ID, item.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteProject(date, p.ID); err != nil {
		t.Fatal(err)
	}
	if got := s.GetDay(date).ProjectTodos; len(got) != 0 {
		t.Fatalf("projects left: %v", got)
	}
}

func TestGetDayIsACopy(t *testing.T) {
	f := loadedFixture(t, 2025)
	s := f.store
	if _, err := s.AddTodoForDate("2025-03-05", "a"); err != nil {
		t.Fatal(err)
	}
	day := s.GetDay("2025-03-05")
	day.Todos[0].Text = "changed"
	if got := s.GetTodosForDate("2025-03-05")[0].Text; got != "a" {
		t.Fatalf("GetDay aliased the store: %q", got)
	}
}

func TestCarryOverTodos(t *testing.T) {
	f := loadedFixture(t, 2025)
	s := f.store
	open, _ := s.AddTodoForDate("2025-03-31", "open")
	done, _ := s.AddTodoForDate("2025-03-31", "done")
	completed := true
	if err := s.UpdateTodoPropertyForDate("2025-03-31", done.ID, TodoUpdate{Completed: &completed}); err != nil {
		t.Fatal(err)
	}
	f.rec.reset()

	moved, err := s.CarryOverTodos("2025-03-31", "2025-04-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(moved) != 1 || moved[0].ID != open.ID {
		t.Fatalf("moved = %v", moved)
	}
	if got := s.GetTodosForDate("2025-03-31"); len(got) != 1 || got[0].ID != done.ID {
		t.Fatalf("source day = %v", got)
	}
	if got := s.GetTodosForDate("2025-04-01"); len(got) != 1 || got[0].Text != "open" {
		t.Fatalf("target day = %v", got)
	}
	for _, name := range []string{"2025/2025-03.json", "2025/2025-04.json"} {
		if _, ok := s.Dirty().Get(name); !ok {
			t.Fatalf("%s not dirty", name)
		}
	}
	if n := len(f.rec.all()); n != 1 {
		t.Fatalf("expected one event, got %d", n)
	}

	if _, err := s.CarryOverTodos("2025-04-01", "2026-01-01"); !errors.Is(err, ErrDateOutsideYear) {
		t.Fatalf("expected ErrDateOutsideYear, got %v", err)
	}
	if got := s.GetTodosForDate("2025-04-01"); len(got) != 1 {
		t.Fatal("failed carry over changed the source day")
	}
	if _, err := s.CarryOverTodos("2025-04-01", "2025-04-01"); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}
