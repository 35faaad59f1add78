package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/state"
	"tableflip.dev/planner/pkg/store"
)

var testNow = time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)

func memoryConfig() store.FileConfig {
	return store.FileConfig{Store: store.BackendMemory, Level: "error"}
}

func openTest(t *testing.T, docs store.Documents) *Service {
	t.Helper()
	svc, err := Open(context.Background(), Options{
		Config:    memoryConfig(),
		Documents: docs,
		LogOutput: io.Discard,
		Now:       func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestOpenRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  store.FileConfig
	}{
		{"log level", store.FileConfig{Store: store.BackendMemory, Level: "chatty"}},
		{"policy", store.FileConfig{Store: store.BackendMemory, Markers: "sometimes"}},
		{"backend", store.FileConfig{Store: "paper"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(context.Background(), Options{Config: tt.cfg, LogOutput: io.Discard})
			if err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestDefaultYear(t *testing.T) {
	docs := store.NewMemory()
	svc := openTest(t, docs)
	if got := svc.DefaultYear(testNow); got != 2025 {
		t.Fatalf("first run default = %d", got)
	}

	settings, _ := json.Marshal(model.Settings{LastOpenedYear: 2023})
	if err := docs.WriteDocument(context.Background(), model.SettingsFile, settings); err != nil {
		t.Fatal(err)
	}
	svc = openTest(t, docs)
	if got := svc.DefaultYear(testNow); got != 2023 {
		t.Fatalf("default = %d, want last opened year", got)
	}
}

func TestDoSavesOnSuccess(t *testing.T) {
	ctx := context.Background()
	docs := store.NewMemory()
	opts := Options{Config: memoryConfig(), Documents: docs, LogOutput: io.Discard}

	err := Do(ctx, opts, 2025, func(svc *Service) error {
		_, err := svc.Store.AddBacklogTodo("Taxes", 2)
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := docs.ReadDocument(ctx, "2025/2025.json"); err != nil {
		t.Fatalf("yearly document not saved: %v", err)
	}

	boom := errors.New("boom")
	err = Do(ctx, opts, 2026, func(svc *Service) error {
		if _, err := svc.Store.AddBacklogTodo("Lost", 0); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, err := docs.ReadDocument(ctx, "2026/2026.json"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("failed run saved anyway: %v", err)
	}
}

func TestReport(t *testing.T) {
	svc := openTest(t, nil)
	if err := svc.LoadYear(context.Background(), 2025); err != nil {
		t.Fatal(err)
	}
	s := svc.Store
	a, _ := s.AddTodoForDate("2025-03-03", "a")
	if _, err := s.AddTodoForDate("2025-03-03", "b"); err != nil {
		t.Fatal(err)
	}
	done := true
	if err := s.UpdateTodoPropertyForDate("2025-03-03", a.ID, state.TodoUpdate{Completed: &done}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetCellMark("2025-03-07", "star"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddTodoForDate("2025-03-10", "next week"); err != nil {
		t.Fatal(err)
	}

	week := svc.Week()
	if week.Total != 2 || week.Done != 1 || len(week.Days) != 2 {
		t.Fatalf("unexpected week %+v", week)
	}
	if week.Days[1].Date != "2025-03-07" || week.Days[1].Mark != "star" {
		t.Fatalf("mark day = %+v", week.Days[1])
	}

	reversed := svc.Report(time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC), time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))
	if reversed.Total != 3 || len(reversed.Days) != 3 {
		t.Fatalf("reversed window = %+v", reversed)
	}
}

func TestMigrate(t *testing.T) {
	svc := openTest(t, nil)
	if err := svc.LoadYear(context.Background(), 2025); err != nil {
		t.Fatal(err)
	}
	s := svc.Store
	for _, d := range []string{"2025-02-27", "2025-03-03", "2025-03-04"} {
		if _, err := s.AddTodoForDate(d, "todo "+d); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.AddTodoForDate("2025-03-05", "today"); err != nil {
		t.Fatal(err)
	}

	since := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if got := svc.MigrationCandidates(since, testNow); len(got) != 2 {
		t.Fatalf("candidates = %v", got)
	}
	moved, err := svc.Migrate(since, testNow)
	if err != nil {
		t.Fatal(err)
	}
	if moved != 2 {
		t.Fatalf("moved = %d", moved)
	}
	if got := s.GetTodosForDate("2025-03-05"); len(got) != 3 || got[0].Text != "today" {
		t.Fatalf("today = %v", got)
	}
	if got := s.GetTodosForDate("2025-02-27"); len(got) != 1 {
		t.Fatal("todo outside the window moved")
	}
}
