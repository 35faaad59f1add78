package model

// MaxPriority is the highest backlog priority.
const MaxPriority = 3

var priorityColors = [MaxPriority + 1]string{
	"#9e9e9e",
	"#4caf50",
	"#ff9800",
	"#f44336",
}

// PriorityColor returns the fixed colour for a backlog priority. Out of range
// priorities fall back to the lowest one.
func PriorityColor(priority int) string {
	if priority < 0 || priority > MaxPriority {
		return priorityColors[0]
	}
	return priorityColors[priority]
}

// ActivePalette picks the month palette, then the settings palette, then an
// empty one.
func ActivePalette(month *MonthRecord, settings Settings) []ColorEntry {
	if month != nil && len(month.ColorPalette) > 0 {
		return cloneSlice(month.ColorPalette)
	}
	if len(settings.ColorPalette) > 0 {
		return cloneSlice(settings.ColorPalette)
	}
	return []ColorEntry{}
}
