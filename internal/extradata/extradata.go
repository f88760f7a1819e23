// Package extradata reconciles the Aegisub Extradata side table across the
// three versions of a script.
//
// Entries are identified by their (key, value) content across versions; ids
// only have meaning inside one version. Reconciliation assigns one id per
// distinct content and rewrites every event's reference list to match.
package extradata

import (
	"sort"

	"github.com/samber/lo"

	"github.com/dusk-indust/assmerge/internal/record"
)

// Version is the slice of one script version that reconciliation touches.
type Version struct {
	Entries []*record.Record
	Events  []*record.Record
}

type content struct{ key, value string }

// Reconcile renumbers the entries of all versions in place, processing
// ancestor, then local, then remote, and rewrites each version's event
// references with that version's old-to-new id map. References to ids the
// version never defined are dropped. It returns the merged table sorted by
// id.
func Reconcile(ancestor, local, remote Version) []*record.Record {
	byContent := make(map[content]int)
	byID := make(map[int]*record.Record)
	highest := 0

	for _, v := range []Version{ancestor, local, remote} {
		remap := make(map[int]int, len(v.Entries))
		for _, entry := range v.Entries {
			original := entry.ID()
			c := content{entry.Get("Key"), entry.Get("Value")}

			if id, ok := byContent[c]; ok {
				entry.SetID(id)
			} else {
				if _, taken := byID[original]; taken {
					entry.SetID(highest + 1)
				}
				byContent[c] = entry.ID()
				byID[entry.ID()] = entry
				highest = max(highest, entry.ID())
			}
			remap[original] = entry.ID()
		}

		for _, ev := range v.Events {
			ev.Extra = Remap(ev.Extra, remap)
		}
	}

	ids := lo.Keys(byID)
	sort.Ints(ids)
	return lo.Map(ids, func(id int, _ int) *record.Record { return byID[id] })
}

// Remap rewrites references through remap, dropping unknown ids.
func Remap(refs []int, remap map[int]int) []int {
	if len(refs) == 0 {
		return refs
	}
	return lo.FilterMap(refs, func(id int, _ int) (int, bool) {
		n, ok := remap[id]
		return n, ok
	})
}

// Prune drops entries that no event references.
func Prune(entries, events []*record.Record) []*record.Record {
	used := make(map[int]bool)
	for _, ev := range events {
		for _, id := range ev.Extra {
			used[id] = true
		}
	}
	return lo.Filter(entries, func(e *record.Record, _ int) bool { return used[e.ID()] })
}
