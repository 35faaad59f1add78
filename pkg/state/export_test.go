package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"tableflip.dev/planner/pkg/backup"
	"tableflip.dev/planner/pkg/events"
	"tableflip.dev/planner/pkg/model"
	"tableflip.dev/planner/pkg/schema"
)

func populate(t *testing.T, s *Store) {
	t.Helper()
	if _, err := s.AddLabel(model.Label{ID: "l1", Name: "Work", Color: "#f00"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddEvent(model.ProjectEvent{LabelID: "l1", StartDate: "2025-01-01", EndDate: "2025-01-03"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddBacklogTodo("Taxes", 3); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddTodoForDate("2025-03-05", "Buy milk"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetCellMark("2025-07-04", "star"); err != nil {
		t.Fatal(err)
	}
	if err := s.PaintBlocks("2025-07-04", GridTime, []string{"08:00"}, "#336699"); err != nil {
		t.Fatal(err)
	}
	chart, err := s.AddMandalArt("Year goals")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateMandalCell(chart.ID, 40, "Balance"); err != nil {
		t.Fatal(err)
	}
}

func TestSaveDataRoundTrip(t *testing.T) {
	src := loadedFixture(t, 2025)
	populate(t, src.store)

	files, err := src.store.GetCurrentYearDataForSave()
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.FilenameInZip)
		if err := schema.ValidateFile(f.FilenameInZip, f.Data); err != nil {
			t.Fatalf("exported %s fails its schema: %v", f.FilenameInZip, err)
		}
	}
	want := []string{"2025/2025.json", "2025/2025-03.json", "2025/2025-07.json", "mandal-art.json"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("files = %v, want %v", names, want)
	}

	var mandal map[string]any
	if err := json.Unmarshal(files[3].Data, &mandal); err != nil {
		t.Fatal(err)
	}
	cells := mandal["mandalArts"].([]any)[0].(map[string]any)["cells"].(map[string]any)
	if len(cells) != 1 || cells["40"] != "Balance" {
		t.Fatalf("mandala cells not stored sparsely: %v", cells)
	}

	dst := newFixture(t, Options{})
	if err := dst.store.LoadYearFromBackup(2025, files); err != nil {
		t.Fatalf("restore: %v", err)
	}
	a, b := src.store.GetState(), dst.store.GetState()
	if !reflect.DeepEqual(a.Yearly, b.Yearly) {
		t.Fatalf("yearly differs:\n%+v\n%+v", a.Yearly, b.Yearly)
	}
	for _, ym := range []string{"2025-03", "2025-07"} {
		if !reflect.DeepEqual(src.store.Month(ym), dst.store.Month(ym)) {
			t.Fatalf("month %s differs:\n%+v\n%+v", ym, src.store.Month(ym), dst.store.Month(ym))
		}
	}
	if !reflect.DeepEqual(src.store.Mandala(), dst.store.Mandala()) {
		t.Fatal("mandala differs after restore")
	}
}

func TestLoadYearFromBackupThroughZip(t *testing.T) {
	src := loadedFixture(t, 2025)
	populate(t, src.store)
	files, err := src.store.GetCurrentYearDataForSave()
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := backup.Write(&buf, files); err != nil {
		t.Fatal(err)
	}
	read, err := backup.ReadBytes(buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}

	dst := loadedFixture(t, 2024)
	if err := dst.store.LoadYearFromBackup(2025, read); err != nil {
		t.Fatal(err)
	}
	if dst.store.Year() != 2025 {
		t.Fatalf("year = %d", dst.store.Year())
	}
	evs := dst.rec.all()
	if len(evs) != 1 {
		t.Fatalf("expected one event for the whole import, got %d", len(evs))
	}
	ev, ok := evs[0].(events.BackupRestored)
	if !ok || ev.Year != 2025 || ev.Files != 4 {
		t.Fatalf("unexpected event %#v", evs[0])
	}
	for _, name := range []string{"2025/2025.json", "2025/2025-03.json", "2025/2025-07.json", "mandal-art.json"} {
		if _, ok := dst.store.Dirty().Get(name); !ok {
			t.Fatalf("%s not marked dirty", name)
		}
	}
	if got := dst.store.GetTodosForDate("2025-03-05"); len(got) != 1 {
		t.Fatalf("todos = %v", got)
	}
	if got := dst.store.GetState().Settings.LastOpenedYear; got != 2025 {
		t.Fatalf("last opened year = %d", got)
	}
	if _, ok := dst.store.Dirty().Get(model.SettingsFile); !ok {
		t.Fatal("settings not marked dirty")
	}
}

func TestLoadYearFromBackupRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		files []model.FileData
	}{
		{"bad json", []model.FileData{
			{FilenameInZip: "2025/2025.json", Data: json.RawMessage(`{"year":2025}`)},
			{FilenameInZip: "2025/2025-02.json", Data: json.RawMessage(`{"yearMonth":`)},
		}},
		{"schema", []model.FileData{
			{FilenameInZip: "2025/2025.json", Data: json.RawMessage(`{"year":2025,"backlogTodos":[{"id":"b","text":"x","priority":9}]}`)},
		}},
		{"other year", []model.FileData{
			{FilenameInZip: "2024/2024.json", Data: json.RawMessage(`{"year":2024}`)},
		}},
		{"month key", []model.FileData{
			{FilenameInZip: "2025/2025-02.json", Data: json.RawMessage(`{"yearMonth":"2025-03"}`)},
		}},
		{"day in another month", []model.FileData{
			{FilenameInZip: "2025/2025-03.json", Data: json.RawMessage(`{"yearMonth":"2025-03","dailyData":{"2025-04-10":{"todos":[{"id":"t1","text":"lost","completed":false}]}}}`)},
		}},
		{"empty", []model.FileData{
			{FilenameInZip: "notes.txt", Data: json.RawMessage(`hello`)},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := loadedFixture(t, 2024)
			if _, err := f.store.AddLabel(model.Label{ID: "keep", Name: "Keep", Color: "#000"}); err != nil {
				t.Fatal(err)
			}
			f.rec.reset()

			err := f.store.LoadYearFromBackup(2025, tt.files)
			var ie *ImportError
			if !errors.As(err, &ie) {
				t.Fatalf("expected ImportError, got %v", err)
			}
			st := f.store.GetState()
			if st.Year != 2024 || len(st.Yearly.Labels) != 1 {
				t.Fatalf("prior state not retained: %+v", st)
			}
			if len(f.rec.all()) != 0 {
				t.Fatal("failed import published events")
			}
		})
	}
}

func TestGetSpecificYearDataForSave(t *testing.T) {
	ctx := context.Background()
	f := loadedFixture(t, 2024)
	if _, err := f.store.AddBacklogTodo("old", 0); err != nil {
		t.Fatal(err)
	}
	if err := f.store.LoadDataForYear(ctx, 2025); err != nil {
		t.Fatal(err)
	}

	files, err := f.store.GetSpecificYearDataForSave(ctx, 2024)
	if err != nil {
		t.Fatal(err)
	}
	var yearly model.YearlyRecord
	if err := json.Unmarshal(files[0].Data, &yearly); err != nil {
		t.Fatal(err)
	}
	if yearly.Year != 2024 || len(yearly.BacklogTodos) != 1 {
		t.Fatalf("unexpected 2024 record %+v", yearly)
	}
	if f.store.Year() != 2025 {
		t.Fatal("exporting another year changed the resident one")
	}
}
