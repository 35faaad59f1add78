package state

import (
	"errors"
	"testing"

	"tableflip.dev/planner/pkg/events"
)

func TestMandalCharts(t *testing.T) {
	f := loadedFixture(t, 2025)
	s := f.store
	a, err := s.AddMandalArt("Health")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := s.AddMandalArt("Career")
	if got := s.Mandala().ActiveMandalArtID; got != b.ID {
		t.Fatalf("new chart should be active, got %q", got)
	}
	if err := s.SelectMandalArt(a.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.RenameMandalArt(a.ID, "Fitness"); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectMandalArt("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteMandalArt(a.ID); err != nil {
		t.Fatal(err)
	}
	doc := s.Mandala()
	if len(doc.MandalArts) != 1 || doc.ActiveMandalArtID != b.ID {
		t.Fatalf("after delete: %+v", doc)
	}
	if _, ok := s.Dirty().Get("mandal-art.json"); !ok {
		t.Fatal("mandala document not dirty")
	}
}

func TestUpdateMandalCellMirrors(t *testing.T) {
	f := loadedFixture(t, 2025)
	s := f.store
	chart, _ := s.AddMandalArt("Goals")

	// Cell 30 is the top-left sub-goal of the centre block; it heads block 0,
	// whose centre is cell 10.
	if err := s.UpdateMandalCell(chart.ID, 30, "Sleep"); err != nil {
		t.Fatal(err)
	}
	cells := s.Mandala().MandalArts[0].Cells
	if cells[30] != "Sleep" || cells[10] != "Sleep" {
		t.Fatalf("cells 30/10 = %q/%q", cells[30], cells[10])
	}
	if err := s.UpdateMandalCell(chart.ID, 10, "Rest"); err != nil {
		t.Fatal(err)
	}
	cells = s.Mandala().MandalArts[0].Cells
	if cells[30] != "Rest" {
		t.Fatalf("mirror not updated from the outer block: %q", cells[30])
	}
	// The grand centre and ordinary cells have no mirror.
	if err := s.UpdateMandalCell(chart.ID, 40, "Life"); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateMandalCell(chart.ID, 0, "corner"); err != nil {
		t.Fatal(err)
	}
	filled := s.Mandala().MandalArts[0].FilledCells()
	if len(filled) != 4 {
		t.Fatalf("filled cells = %v", filled)
	}
	if err := s.UpdateMandalCell(chart.ID, 81, "x"); !errors.Is(err, ErrInvalidCell) {
		t.Fatalf("expected ErrInvalidCell, got %v", err)
	}
	ev, ok := f.rec.last().(events.MandalChanged)
	if !ok || ev.Cell != 0 {
		t.Fatalf("unexpected event %#v", f.rec.last())
	}
}
