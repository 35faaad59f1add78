package timeutil

import (
	"testing"
	"time"
)

func TestParseWindowDefault(t *testing.T) {
	w, label, err := ParseWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != (Window{Days: 7}) {
		t.Fatalf("expected one week, got %+v", w)
	}
	if label != "1w" {
		t.Fatalf("expected label 1w, got %s", label)
	}
}

func TestParseWindowComposite(t *testing.T) {
	w, label, err := ParseWindow("1y2mo1w9d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Window{Years: 1, Months: 2, Days: 16}
	if w != want {
		t.Fatalf("expected %+v, got %+v", want, w)
	}
	if label != "1y2mo2w2d" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseWindowInvalid(t *testing.T) {
	for _, in := range []string{"noop", "3h", "0d"} {
		if _, _, err := ParseWindow(in); err == nil {
			t.Fatalf("expected error for window %q", in)
		}
	}
}

func TestWindowRange(t *testing.T) {
	now := time.Date(2025, time.March, 31, 17, 45, 0, 0, time.UTC)
	since, until := Window{Months: 1}.Range(now)
	if got := until.Format("2006-01-02 15:04"); got != "2025-03-31 00:00" {
		t.Fatalf("until = %s", got)
	}
	// AddDate normalises Feb 31 to Mar 3.
	if got := since.Format("2006-01-02"); got != "2025-03-03" {
		t.Fatalf("since = %s", got)
	}
}
