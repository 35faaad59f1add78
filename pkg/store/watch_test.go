package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestDiskvWatchEmitsDocumentChanges(t *testing.T) {
	base := t.TempDir()
	p, err := NewDiskv(base)
	if err != nil {
		t.Fatalf("new diskv: %v", err)
	}

	// Pre-create the year folder so the write below is a plain file event.
	if err := p.WriteDocument(context.Background(), "2025/2025.json", []byte(`{}`)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before writing.
	time.Sleep(50 * time.Millisecond)

	if err := p.WriteDocument(context.Background(), "2025/2025-03.json", []byte(`{"yearMonth":"2025-03"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventCatalogInvalidated {
				return
			}
			if evt.Type == EventDocumentChanged {
				if evt.Document != "2025/2025-03.json" {
					t.Fatalf("expected document 2025/2025-03.json, got %q", evt.Document)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for document change event")
		}
	}
}

func TestEventTypeString(t *testing.T) {
	if EventDocumentChanged.String() != "document" || EventCatalogInvalidated.String() != "catalog" {
		t.Fatal("unexpected event type names")
	}
}

func TestThrottleCoalesces(t *testing.T) {
	th := newEventThrottle(time.Hour)
	defer th.Stop()
	var got []Event
	send := func(ev Event) { got = append(got, ev) }

	th.Enqueue(Event{Type: EventDocumentChanged, Document: "2025/2025-03.json"}, send)
	th.Enqueue(Event{Type: EventDocumentChanged, Document: "2025/2025.json"}, send)
	th.Enqueue(Event{Type: EventDocumentChanged, Document: "2025/2025-03.json"}, send)
	th.flush(send)
	if len(got) != 2 || got[0].Document != "2025/2025-03.json" || got[1].Document != "2025/2025.json" {
		t.Fatalf("flush = %+v", got)
	}

	got = nil
	th.Enqueue(Event{Type: EventDocumentChanged, Document: "settings.json"}, send)
	th.Enqueue(Event{Type: EventCatalogInvalidated}, send)
	th.flush(send)
	if len(got) != 1 || got[0].Type != EventCatalogInvalidated {
		t.Fatalf("catalog should swallow document events, got %+v", got)
	}
}

func TestDocumentForPath(t *testing.T) {
	base := t.TempDir()
	p, err := NewDiskv(base)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{filepath.Join(base, "2025", "2025-03.json"), "2025/2025-03.json", true},
		{filepath.Join(base, "settings.json"), "settings.json", true},
		{filepath.Join(base, "2025", ".2025.json.swp"), "", true},
		{filepath.Join(base, "2025", "diskv-123"), "", true},
		{filepath.Join(filepath.Dir(base), "elsewhere.json"), "", false},
	}
	for _, tt := range tests {
		got, ok := p.documentForPath(tt.path)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("documentForPath(%s) = %q, %v", tt.path, got, ok)
		}
	}
}
