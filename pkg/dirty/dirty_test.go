package dirty

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type memorySink struct {
	docs map[string][]byte
	fail map[string]bool
}

func newMemorySink() *memorySink {
	return &memorySink{docs: map[string][]byte{}, fail: map[string]bool{}}
}

func (m *memorySink) WriteDocument(_ context.Context, name string, data []byte) error {
	if m.fail[name] {
		return errors.New("disk full")
	}
	m.docs[name] = append([]byte(nil), data...)
	return nil
}

type payload struct {
	Items []string `json:"items"`
}

func TestMarkDirtyCopiesPayload(t *testing.T) {
	s := New()
	p := &payload{Items: []string{"a"}}
	if err := s.MarkDirty("2025/2025.json", p); err != nil {
		t.Fatalf("mark: %v", err)
	}
	p.Items[0] = "mutated"
	p.Items = append(p.Items, "b")

	var got payload
	ok, err := s.Decode("2025/2025.json", &got)
	if err != nil || !ok {
		t.Fatalf("decode: ok=%v err=%v", ok, err)
	}
	if len(got.Items) != 1 || got.Items[0] != "a" {
		t.Fatalf("payload aliased caller value: %+v", got)
	}
}

func TestLaterMarkWins(t *testing.T) {
	s := New()
	_ = s.MarkDirty("f", payload{Items: []string{"first"}})
	_ = s.MarkDirty("f", payload{Items: []string{"second"}})
	data, ok := s.Get("f")
	if !ok {
		t.Fatal("expected dirty file")
	}
	if string(data) != `{"items":["second"]}` {
		t.Fatalf("unexpected payload %s", data)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 file, got %d", s.Len())
	}
}

func TestClear(t *testing.T) {
	s := New()
	_ = s.MarkDirty("f", payload{})
	s.Clear("f")
	if _, ok := s.Get("f"); ok {
		t.Fatal("expected file to be clean")
	}
	if ok, err := s.Decode("f", &payload{}); ok || err != nil {
		t.Fatalf("decode on clean file: ok=%v err=%v", ok, err)
	}
}

func TestMarkDirtyRequiresID(t *testing.T) {
	if err := New().MarkDirty("", payload{}); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestMarkDirtyRawMessage(t *testing.T) {
	s := New()
	raw := json.RawMessage(`{"items":["x"]}`)
	_ = s.MarkDirty("f", raw)
	raw[2] = 'X'
	data, _ := s.Get("f")
	if string(data) != `{"items":["x"]}` {
		t.Fatalf("raw payload aliased: %s", data)
	}
}

func TestTriggerPartialSave(t *testing.T) {
	s := New()
	_ = s.MarkDirty("a.json", payload{Items: []string{"a"}})
	_ = s.MarkDirty("b.json", payload{Items: []string{"b"}})
	sink := newMemorySink()
	sink.fail["b.json"] = true

	report, err := s.TriggerPartialSave(context.Background(), sink)
	if err == nil {
		t.Fatal("expected error for failed file")
	}
	if len(report.Written) != 1 || report.Written[0] != "a.json" {
		t.Fatalf("unexpected written set %v", report.Written)
	}
	if _, ok := report.Failed["b.json"]; !ok {
		t.Fatalf("expected b.json failure, got %v", report.Failed)
	}
	if files := s.Files(); len(files) != 1 || files[0] != "b.json" {
		t.Fatalf("failed file must stay dirty, got %v", files)
	}
	if string(sink.docs["a.json"]) != `{"items":["a"]}` {
		t.Fatalf("unexpected sink content %s", sink.docs["a.json"])
	}
}

func TestTriggerFullYearSave(t *testing.T) {
	s := New()
	_ = s.MarkDirty("2025/2025.json", payload{})
	_ = s.MarkDirty("2024/2024.json", payload{})
	sink := newMemorySink()

	files := []File{{Name: "2025/2025.json", Data: []byte(`{}`)}, {Name: "2025/2025-01.json", Data: []byte(`{}`)}}
	report, err := s.TriggerFullYearSave(context.Background(), 2025, files, sink)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(report.Written) != 2 {
		t.Fatalf("expected 2 written, got %v", report.Written)
	}
	if got := s.Files(); len(got) != 1 || got[0] != "2024/2024.json" {
		t.Fatalf("unexpected dirty set %v", got)
	}

	if _, err := s.TriggerFullYearSave(context.Background(), 2025, nil, sink); err == nil {
		t.Fatal("expected error for empty file set")
	}
}

func TestTriggerPartialSaveNoSink(t *testing.T) {
	if _, err := New().TriggerPartialSave(context.Background(), nil); err == nil {
		t.Fatal("expected error without sink")
	}
}
