package gann

// categoryColors and categoryEventTypes are the configuration
// dictionaries mapping a moment category to its presentation. Kept
// apart from the timing tables so they can be validated independently.

var categoryColors = map[string]string{
	"cycle":      "#8b5cf6",
	"support":    "#22c55e",
	"pivot":      "#ef4444",
	"correction": "#f59e0b",
	"turn":       "#3b82f6",
}

// defaultColor is used for any category missing from the palette.
const defaultColor = "#6b7280"

var categoryEventTypes = map[string]string{
	"cycle":      "cycle_marker",
	"support":    "support_angle",
	"pivot":      "pivot_point",
	"correction": "correction_zone",
	"turn":       "trend_turn",
}

const defaultEventType = "marker"

func colorFor(category string) string {
	if c, ok := categoryColors[category]; ok {
		return c
	}
	return defaultColor
}

func eventTypeFor(category string) string {
	if e, ok := categoryEventTypes[category]; ok {
		return e
	}
	return defaultEventType
}
