package orchestrator

import (
	"github.com/dusk-indust/assmerge/internal/conflict"
	"github.com/dusk-indust/assmerge/internal/record"
)

// StyleConflictNotice is the text of the event prepended to a merged script
// whose styles had to be renamed.
const StyleConflictNotice = "Style conflict detected. Please resolve the conflict through the style manager."

// disambiguateStyles renames styles whose name is already taken earlier in
// the list. Both the first holder and every later duplicate get their
// provenance as a prefix ("Own$Foo", "Other$Foo"). Renamed entries are
// replaced by copies. It returns the number of styles renamed.
func disambiguateStyles(styles []*record.Record) int {
	first := make(map[string]int, len(styles))
	renamedFirst := make(map[string]bool)
	renamed := 0

	for i, s := range styles {
		name := s.Get("Name")
		j, seen := first[name]
		if !seen {
			first[name] = i
			continue
		}
		if !renamedFirst[name] {
			styles[j] = withOwner(styles[j])
			renamedFirst[name] = true
			renamed++
		}
		styles[i] = withOwner(s)
		renamed++
	}
	return renamed
}

func withOwner(s *record.Record) *record.Record {
	c := s.Clone()
	c.Set("Name", string(s.Source)+"$"+s.Get("Name"))
	return c
}

// styleConflictEvent is the marker event announcing renamed styles.
func styleConflictEvent() *record.Record {
	return conflict.MarkerEvent(StyleConflictNotice)
}
