// Package timeutil parses the look-back windows used by report and
// migration commands. Planner data is kept per day, so windows count whole
// days, weeks, months and years rather than clock time.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultWindow is the fallback window used when none is provided.
	DefaultWindow = "1w"
)

var (
	windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitMap       = map[string]unit{
		"d":      day,
		"day":    day,
		"days":   day,
		"w":      week,
		"wk":     week,
		"wks":    week,
		"week":   week,
		"weeks":  week,
		"mo":     month,
		"mon":    month,
		"month":  month,
		"months": month,
		"y":      year,
		"yr":     year,
		"yrs":    year,
		"year":   year,
		"years":  year,
	}
)

type unit int

const (
	day unit = iota
	week
	month
	year
)

// Window is a calendar span counted back from a day.
type Window struct {
	Years  int
	Months int
	Days   int
}

// ParseWindow parses a window such as "1w", "3d" or "1mo2w" and returns it
// with its canonical spelling. An empty input means DefaultWindow.
func ParseWindow(input string) (Window, string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		trimmed = DefaultWindow
	}

	remaining := strings.ToLower(trimmed)
	var w Window
	for len(remaining) > 0 {
		matches := windowPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return Window{}, "", fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.Atoi(matches[1])
		if err != nil {
			return Window{}, "", fmt.Errorf("invalid window value %q: %w", matches[1], err)
		}
		u, ok := unitMap[matches[2]]
		if !ok {
			return Window{}, "", fmt.Errorf("unsupported window unit %q", matches[2])
		}
		switch u {
		case day:
			w.Days += value
		case week:
			w.Days += 7 * value
		case month:
			w.Months += value
		case year:
			w.Years += value
		}
		remaining = remaining[len(matches[0]):]
	}

	if w.IsZero() {
		return Window{}, "", fmt.Errorf("window must be greater than zero")
	}
	return w, w.String(), nil
}

// IsZero reports whether the window spans no time.
func (w Window) IsZero() bool {
	return w.Years == 0 && w.Months == 0 && w.Days == 0
}

// String renders the window using y/mo/w/d tokens.
func (w Window) String() string {
	if w.IsZero() {
		return "0d"
	}
	var b strings.Builder
	if w.Years > 0 {
		fmt.Fprintf(&b, "%dy", w.Years)
	}
	if w.Months > 0 {
		fmt.Fprintf(&b, "%dmo", w.Months)
	}
	if weeks := w.Days / 7; weeks > 0 {
		fmt.Fprintf(&b, "%dw", weeks)
	}
	if days := w.Days % 7; days > 0 {
		fmt.Fprintf(&b, "%dd", days)
	}
	return b.String()
}

// Range returns the first and last day covered by the window ending on the
// day of now. Both bounds are midnight in now's location.
func (w Window) Range(now time.Time) (since, until time.Time) {
	until = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	since = until.AddDate(-w.Years, -w.Months, -w.Days)
	return since, until
}
