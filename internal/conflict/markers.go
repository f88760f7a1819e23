package conflict

import (
	"fmt"
	"strings"

	"github.com/dusk-indust/assmerge/internal/record"
)

// MarkerStyle selects how conflict markers are written.
type MarkerStyle string

const (
	// StyleBar writes diff3-like bars such as "<<<<<<<".
	StyleBar MarkerStyle = "diff3"
	// StyleDescriptive writes human-readable labels.
	StyleDescriptive MarkerStyle = "description"
)

// DefaultMarkerWidth is the bar length used when none is configured.
const DefaultMarkerWidth = 7

// ParseMarkerStyle validates a marker style name.
func ParseMarkerStyle(s string) (MarkerStyle, error) {
	switch MarkerStyle(s) {
	case StyleBar, StyleDescriptive:
		return MarkerStyle(s), nil
	default:
		return "", fmt.Errorf("unknown conflict marker style %q (want %q or %q)", s, StyleBar, StyleDescriptive)
	}
}

// Markers holds the four labels of a sequential conflict block.
type Markers struct {
	Ours     string
	Ancestor string
	Theirs   string
	End      string
}

// NewMarkers builds the labels for a style. width only applies to StyleBar;
// values below one fall back to DefaultMarkerWidth. withAncestor changes the
// descriptive label that opens the remote slice.
func NewMarkers(style MarkerStyle, width int, withAncestor bool) Markers {
	if style == StyleBar {
		if width < 1 {
			width = DefaultMarkerWidth
		}
		return Markers{
			Ours:     strings.Repeat("<", width),
			Ancestor: strings.Repeat("|", width),
			Theirs:   strings.Repeat("=", width),
			End:      strings.Repeat(">", width),
		}
	}

	previous := "own"
	if withAncestor {
		previous = "common ancestor's"
	}
	return Markers{
		Ours:     "Start of own hunk",
		Ancestor: "End of own hunk; Start of common ancestor's hunk",
		Theirs:   fmt.Sprintf("End of %s hunk; Start of other hunk", previous),
		End:      "End of other hunk",
	}
}

// MarkerEvent returns the comment event used to carry a conflict label.
func MarkerEvent(label string) *record.Record {
	return record.MustNew(record.EventSchema, "Comment", []string{
		"0", "0:00:00.00", "0:00:00.00", "Default", "", "0", "0", "0", "CONFLICT", label,
	}, record.Merged)
}
