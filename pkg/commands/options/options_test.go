package options

import (
	"testing"
	"time"
)

func TestOnParse(t *testing.T) {
	now := time.Date(2025, time.December, 5, 15, 0, 0, 0, time.UTC)
	tests := []struct {
		on   string
		want string
	}{
		{"", "2025-12-05"},
		{"today", "2025-12-05"},
		{"Tomorrow", "2025-12-06"},
		{"yesterday", "2025-12-04"},
		{"2025-3-9", "2025-03-09"},
		{"2025-03-09", "2025-03-09"},
		{"12/24", "2025-12-24"},
		{"1/3", "2026-01-03"},
		{"11/20", "2025-11-20"},
	}
	for _, tt := range tests {
		o := OnOptions{OnString: tt.on}
		got, err := o.dateAt(now)
		if err != nil {
			t.Fatalf("%q: %v", tt.on, err)
		}
		if s := got.Format("2006-01-02"); s != tt.want {
			t.Errorf("%q = %s, want %s", tt.on, s, tt.want)
		}
	}
	if _, err := (&OnOptions{OnString: "someday"}).dateAt(now); err == nil {
		t.Fatal("expected error for unparseable date")
	}
}

func TestWindowRange(t *testing.T) {
	o := WindowOptions{Last: "2w"}
	since, until, label, err := o.Range(time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if label != "2w" || since.Format("2006-01-02") != "2025-03-01" || until.Format("2006-01-02") != "2025-03-15" {
		t.Fatalf("range = %s..%s (%s)", since, until, label)
	}
}
