package events

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func quietBus() *Bus {
	return NewBus(log.New(io.Discard))
}

func TestBusDispatchOrder(t *testing.T) {
	b := quietBus()
	var got []int
	b.On(DataChanged, func(Event) { got = append(got, 1) })
	b.On(DataChanged, func(Event) { got = append(got, 2) })
	b.On("other", func(Event) { got = append(got, 99) })

	b.Dispatch(DataChanged, SettingsChanged{})

	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("unexpected dispatch order: %v", got)
	}
}

func TestBusPanicIsolation(t *testing.T) {
	b := quietBus()
	ran := false
	b.On(DataChanged, func(Event) { panic("boom") })
	b.On(DataChanged, func(Event) { ran = true })

	b.Dispatch(DataChanged, CursorMoved{WeekStart: "2025-03-03"})

	if !ran {
		t.Fatal("second handler did not run after first panicked")
	}
}

func TestBusOff(t *testing.T) {
	b := quietBus()
	calls := 0
	h := func(Event) { calls++ }
	first := b.On(DataChanged, h)
	b.On(DataChanged, h)

	if !b.Off(DataChanged, first) {
		t.Fatal("expected Off to remove registration")
	}
	if b.Off(DataChanged, first) {
		t.Fatal("second Off with the same token should report false")
	}
	b.Dispatch(DataChanged, SettingsChanged{})
	if calls != 1 {
		t.Fatalf("expected 1 call after Off, got %d", calls)
	}
	if b.Len(DataChanged) != 1 {
		t.Fatalf("expected 1 registration, got %d", b.Len(DataChanged))
	}
}

func TestBusHandlerMaySubscribeDuringDispatch(t *testing.T) {
	b := quietBus()
	b.On(DataChanged, func(Event) {
		b.On(DataChanged, func(Event) {})
	})
	b.Dispatch(DataChanged, SettingsChanged{})
	if b.Len(DataChanged) != 2 {
		t.Fatalf("expected 2 registrations, got %d", b.Len(DataChanged))
	}
}

func TestEventSources(t *testing.T) {
	tests := []struct {
		ev   Event
		want Source
	}{
		{YearLoaded{Year: 2025}, SourceYearChange},
		{YearLoaded{Year: 2025, AlreadyLoaded: true}, SourceYearAlreadyLoaded},
		{CursorMoved{}, SourceWeekChange},
		{LabelsChanged{}, SourceLabels},
		{ProjectEventsChanged{}, SourceEvents},
		{BacklogChanged{}, SourceBacklog},
		{DayChanged{}, SourceDay},
		{MonthChanged{}, SourceMonth},
		{MandalChanged{}, SourceMandal},
		{BackupRestored{}, SourceBackup},
		{SettingsChanged{}, SourceSettings},
	}
	for _, tt := range tests {
		if got := tt.ev.Source(); got != tt.want {
			t.Errorf("%T.Source() = %q, want %q", tt.ev, got, tt.want)
		}
		if tt.ev.Describe() == "" {
			t.Errorf("%T.Describe() is empty", tt.ev)
		}
	}
}
