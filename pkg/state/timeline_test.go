package state

import (
	"encoding/json"
	"errors"
	"testing"

	"tableflip.dev/planner/pkg/model"
)

func TestPaintBlocksInsideInteraction(t *testing.T) {
	f := loadedFixture(t, 2025)
	s := f.store
	const date = "2025-03-05"
	if err := s.PaintBlocks(date, GridTime, []string{"09:00"}, "#ff0000"); err != nil {
		t.Fatal(err)
	}
	if got := s.GetDay(date).TimeBlocks["09:00"]; got.PreviousColor != "" {
		t.Fatalf("painting outside a gesture set previousColor %q", got.PreviousColor)
	}

	if err := s.BeginBlockInteraction(date, GridTime); err != nil {
		t.Fatal(err)
	}
	if err := s.PaintBlocks(date, GridTime, []string{"09:00", "09:30"}, "#00ff00"); err != nil {
		t.Fatal(err)
	}
	// Dragging back over 09:30 with its original (empty) colour drops the marker.
	if err := s.PaintBlocks(date, GridTime, []string{"09:30"}, ""); err != nil {
		t.Fatal(err)
	}
	s.EndBlockInteraction()

	blocks := s.GetDay(date).TimeBlocks
	if got := blocks["09:00"]; got.Color != "#00ff00" || got.PreviousColor != "#ff0000" {
		t.Fatalf("09:00 = %+v", got)
	}
	if _, ok := blocks["09:30"]; ok {
		t.Fatalf("09:30 should be erased, got %+v", blocks["09:30"])
	}

	if err := s.ClearBlockMarkers(date, GridTime); err != nil {
		t.Fatal(err)
	}
	if got := s.GetDay(date).TimeBlocks["09:00"]; got.PreviousColor != "" || got.Color != "#00ff00" {
		t.Fatalf("after clear 09:00 = %+v", got)
	}
}

func TestBlockValidation(t *testing.T) {
	f := loadedFixture(t, 2025)
	s := f.store
	if err := s.PaintBlocks("2025-03-05", Grid("other"), []string{"a"}, "#fff"); !errors.Is(err, ErrInvalidCell) {
		t.Fatalf("expected ErrInvalidCell, got %v", err)
	}
	if err := s.PaintBlocks("2025-03-05", GridGoal, []string{""}, "#fff"); !errors.Is(err, ErrInvalidCell) {
		t.Fatalf("expected ErrInvalidCell, got %v", err)
	}
	if err := s.PaintBlocks("2025-03-05", GridGoal, []string{"a"}, "blue"); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("expected ErrInvalidColor, got %v", err)
	}
	if err := s.BeginBlockInteraction("2024-03-05", GridGoal); !errors.Is(err, ErrDateOutsideYear) {
		t.Fatalf("expected ErrDateOutsideYear, got %v", err)
	}
}

func TestSetBlockText(t *testing.T) {
	f := loadedFixture(t, 2025)
	s := f.store
	if err := s.SetBlockText("2025-03-05", GridGoal, "g1", "Ship it"); err != nil {
		t.Fatal(err)
	}
	if got := s.GetDay("2025-03-05").GoalBlocks["g1"].Text; got != "Ship it" {
		t.Fatalf("text = %q", got)
	}
	if err := s.SetBlockText("2025-03-05", GridGoal, "g1", ""); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.GetDay("2025-03-05").GoalBlocks["g1"]; ok {
		t.Fatal("empty cell should be removed")
	}
}

func TestPreviousColorPolicy(t *testing.T) {
	paint := func(t *testing.T, s *Store) {
		t.Helper()
		for _, g := range []Grid{GridTime, GridGoal} {
			if err := s.BeginBlockInteraction("2025-03-05", g); err != nil {
				t.Fatal(err)
			}
			if err := s.PaintBlocks("2025-03-05", g, []string{"k"}, "#123456"); err != nil {
				t.Fatal(err)
			}
			s.EndBlockInteraction()
		}
	}
	blocks := func(t *testing.T, s *Store) (time, goal model.BlockCell) {
		t.Helper()
		raw, ok := s.Dirty().Get("2025/2025-03.json")
		if !ok {
			t.Fatal("month not dirty")
		}
		var m model.MonthRecord
		if err := json.Unmarshal(raw, &m); err != nil {
			t.Fatal(err)
		}
		day := m.DailyData["2025-03-05"]
		return day.TimeBlocks["k"], day.GoalBlocks["k"]
	}

	t.Run("keep", func(t *testing.T) {
		f := loadedFixture(t, 2025)
		if err := f.store.BeginBlockInteraction("2025-03-05", GridGoal); err != nil {
			t.Fatal(err)
		}
		if err := f.store.PaintBlocks("2025-03-05", GridGoal, []string{"k"}, "#654321"); err != nil {
			t.Fatal(err)
		}
		f.store.EndBlockInteraction()
		paint(t, f.store)
		_, goal := blocks(t, f.store)
		if goal.PreviousColor != "#654321" {
			t.Fatalf("goal marker not kept: %+v", goal)
		}
	})

	t.Run("strip goals", func(t *testing.T) {
		f := newFixture(t, Options{PreviousColor: PreviousColorStripGoals})
		if err := f.store.LoadDataForYear(t.Context(), 2025); err != nil {
			t.Fatal(err)
		}
		if err := f.store.PaintBlocks("2025-03-05", GridTime, []string{"k"}, "#654321"); err != nil {
			t.Fatal(err)
		}
		if err := f.store.PaintBlocks("2025-03-05", GridGoal, []string{"k"}, "#654321"); err != nil {
			t.Fatal(err)
		}
		paint(t, f.store)
		timeCell, goal := blocks(t, f.store)
		if timeCell.PreviousColor != "#654321" {
			t.Fatalf("time marker should persist: %+v", timeCell)
		}
		if goal.PreviousColor != "" || goal.Color != "#123456" {
			t.Fatalf("goal marker should be stripped: %+v", goal)
		}
		if live := f.store.GetDay("2025-03-05").GoalBlocks["k"]; live.PreviousColor != "#654321" {
			t.Fatalf("stripping must not touch the live record: %+v", live)
		}
	})
}

func TestScheduledTasks(t *testing.T) {
	f := loadedFixture(t, 2025)
	s := f.store
	task, err := s.AddScheduledTask("2025-03-05", model.ScheduledTask{Text: "Standup", StartBlock: "09:00", EndBlock: "09:30", Color: "#00f"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddScheduledTask("2025-03-05", model.ScheduledTask{Text: "x", StartBlock: "10:00", EndBlock: "09:00"}); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if _, err := s.AddScheduledTask("2025-03-05", model.ScheduledTask{Text: "x"}); !errors.Is(err, ErrInvalidCell) {
		t.Fatalf("expected ErrInvalidCell, got %v", err)
	}
	if got := s.GetDay("2025-03-05").ScheduledTimelineTasks; len(got) != 1 || got[0].ID != task.ID {
		t.Fatalf("tasks = %v", got)
	}
	if err := s.DeleteScheduledTask("2025-03-05", task.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteScheduledTask("2025-03-05", task.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
