package state

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/planner/pkg/model"
)

func validColor(c string) error {
	if _, err := colorful.Hex(c); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidColor, c)
	}
	return nil
}

func validPalette(p []model.ColorEntry) error {
	for _, e := range p {
		if err := validColor(e.Color); err != nil {
			return err
		}
	}
	return nil
}

func requireText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	return text, nil
}

func indexOf[T any](items []T, id string, key func(T) string) int {
	for i, it := range items {
		if key(it) == id {
			return i
		}
	}
	return -1
}

// reorder returns items arranged in the order of ids, which must name every
// item exactly once.
func reorder[T any](items []T, ids []string, key func(T) string) ([]T, error) {
	if len(ids) != len(items) {
		return nil, fmt.Errorf("%w: got %d ids for %d items", ErrInvalidOrder, len(ids), len(items))
	}
	byID := make(map[string]T, len(items))
	for _, it := range items {
		byID[key(it)] = it
	}
	out := make([]T, 0, len(items))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		it, ok := byID[id]
		if !ok || seen[id] {
			return nil, fmt.Errorf("%w: %q", ErrInvalidOrder, id)
		}
		seen[id] = true
		out = append(out, it)
	}
	return out, nil
}

func labelID(l model.Label) string             { return l.ID }
func eventID(e model.ProjectEvent) string      { return e.ID }
func backlogID(b model.BacklogTodo) string     { return b.ID }
func todoID(t model.DayTodo) string            { return t.ID }
func projectID(p model.Project) string         { return p.ID }
func projectTodoID(t model.ProjectTodo) string { return t.ID }
func taskID(t model.ScheduledTask) string      { return t.ID }
func routineID(r model.Routine) string         { return r.ID }
func chartID(m model.MandalArt) string         { return m.ID }
