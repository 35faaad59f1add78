// Package glyph maps calendar cell marks and todo states to the symbols the
// terminal surfaces print.
package glyph

import (
	"fmt"
	"sort"
)

// Glyph is one printable mark.
type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
	Order   int
}

const (
	escape     = "\x1b"
	resetCode  = 0
	boldCode   = 1
	strikeCode = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

// Marks are the cell marks the planner knows how to draw. Any other string
// is still accepted as a mark and printed by name.
func Marks() map[string]Glyph {
	return map[string]Glyph{
		"star":     {Key: "star", Symbol: "★", Meaning: "highlight", Order: 0},
		"circle":   {Key: "circle", Symbol: "●", Meaning: "event", Order: 1},
		"triangle": {Key: "triangle", Symbol: "▲", Meaning: "deadline", Order: 2},
		"check":    {Key: "check", Symbol: "✔", Meaning: "done", Order: 3},
		"cross":    {Key: "cross", Symbol: "✘", Meaning: "cancelled", Order: 4},
		"heart":    {Key: "heart", Symbol: "♥", Meaning: "personal", Order: 5},
	}
}

// ByOrder sorts glyphs for display.
type ByOrder []Glyph

func (a ByOrder) Len() int           { return len(a) }
func (a ByOrder) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ByOrder) Less(i, j int) bool { return a[i].Order < a[j].Order }

// SortedMarks returns Marks in display order.
func SortedMarks() []Glyph {
	m := Marks()
	out := make([]Glyph, 0, len(m))
	for _, g := range m {
		out = append(out, g)
	}
	sort.Sort(ByOrder(out))
	return out
}

// Mark returns the symbol for a cell mark, or the mark itself when it has
// none. The empty mark prints as a blank.
func Mark(mark string) string {
	if mark == "" {
		return " "
	}
	if g, ok := Marks()[mark]; ok {
		return g.Symbol
	}
	return mark
}

// Todo bullets.
const (
	Open      = "●"
	Completed = "✘"
	Moved     = "›"
)

// Todo returns the bullet for a todo in the given state.
func Todo(completed bool) string {
	if completed {
		return Completed
	}
	return Open
}

func (g Glyph) String() string {
	return g.Symbol
}
