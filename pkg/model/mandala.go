package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

const (
	// MandalCells is the number of cells of a 9x9 chart.
	MandalCells = 81
	// MandalTypeNine is the only chart layout.
	MandalTypeNine = "9x9"

	centerBlock = 4
	centerCell  = 4
)

// MandalArt is a 9x9 goal grid. In memory Cells is dense; on disk only the
// non-empty cells are written, keyed by index.
type MandalArt struct {
	ID    string
	Name  string
	Type  string
	Cells [MandalCells]string
}

// MandalDocument is the mandal-art.json document.
type MandalDocument struct {
	ActiveMandalArtID string      `json:"activeMandalArtId"`
	MandalArts        []MandalArt `json:"mandalArts"`
}

type mandalArtJSON struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Cells json.RawMessage `json:"cells"`
}

// MarshalJSON writes the sparse form.
func (m MandalArt) MarshalJSON() ([]byte, error) {
	sparse := make(map[string]string)
	for i, text := range m.Cells {
		if text != "" {
			sparse[strconv.Itoa(i)] = text
		}
	}
	cells, err := json.Marshal(sparse)
	if err != nil {
		return nil, err
	}
	return json.Marshal(mandalArtJSON{ID: m.ID, Name: m.Name, Type: m.Type, Cells: cells})
}

// UnmarshalJSON accepts the sparse map form and, for older documents, a dense
// array.
func (m *MandalArt) UnmarshalJSON(data []byte) error {
	var raw mandalArtJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := MandalArt{ID: raw.ID, Name: raw.Name, Type: raw.Type}
	if out.Type == "" {
		out.Type = MandalTypeNine
	}
	if len(raw.Cells) > 0 && string(raw.Cells) != "null" {
		switch raw.Cells[0] {
		case '{':
			var sparse map[string]string
			if err := json.Unmarshal(raw.Cells, &sparse); err != nil {
				return err
			}
			for k, text := range sparse {
				i, err := strconv.Atoi(k)
				if err != nil || i < 0 || i >= MandalCells {
					return fmt.Errorf("model: mandal cell index %q out of range", k)
				}
				out.Cells[i] = text
			}
		case '[':
			var dense []string
			if err := json.Unmarshal(raw.Cells, &dense); err != nil {
				return err
			}
			if len(dense) > MandalCells {
				return fmt.Errorf("model: mandal chart has %d cells", len(dense))
			}
			copy(out.Cells[:], dense)
		default:
			return fmt.Errorf("model: unexpected mandal cells %s", raw.Cells)
		}
	}
	*m = out
	return nil
}

// FilledCells lists the indexes of non-empty cells in ascending order.
func (m MandalArt) FilledCells() []int {
	var idx []int
	for i, text := range m.Cells {
		if text != "" {
			idx = append(idx, i)
		}
	}
	sort.Ints(idx)
	return idx
}

// MandalMirror returns the cell that shows the same goal as index, if any.
// The eight outer cells of the centre block are the sub-goals that also head
// the centre of their surrounding block.
func MandalMirror(index int) (int, bool) {
	if index < 0 || index >= MandalCells {
		return 0, false
	}
	row, col := index/9, index%9
	block := (row/3)*3 + col/3
	cell := (row%3)*3 + col%3
	switch {
	case block == centerBlock && cell != centerCell:
		return mandalIndex(cell, centerCell), true
	case block != centerBlock && cell == centerCell:
		return mandalIndex(centerBlock, block), true
	default:
		return 0, false
	}
}

func mandalIndex(block, cell int) int {
	row := (block/3)*3 + cell/3
	col := (block%3)*3 + cell%3
	return row*9 + col
}

// Find returns the chart with id.
func (d *MandalDocument) Find(id string) (int, bool) {
	for i := range d.MandalArts {
		if d.MandalArts[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// Clone returns a deep copy; Cells is an array so a value copy suffices.
func (d MandalDocument) Clone() MandalDocument {
	d.MandalArts = cloneSlice(d.MandalArts)
	return d
}
