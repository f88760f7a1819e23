// Package keyval merges metadata sections such as [Script Info], which are
// ordered maps of unique keys to values.
package keyval

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/dusk-indust/assmerge/internal/record"
)

// Precedence names the side whose changes win when both sides touched the
// same key.
type Precedence string

const (
	Ours   Precedence = "ours"
	Theirs Precedence = "theirs"
)

// ParsePrecedence validates a precedence name.
func ParsePrecedence(s string) (Precedence, error) {
	switch Precedence(s) {
	case Ours, Theirs:
		return Precedence(s), nil
	default:
		return "", fmt.Errorf("unknown precedence %q (want %q or %q)", s, Ours, Theirs)
	}
}

type section = orderedmap.OrderedMap[string, string]

// delta is one side's edits relative to the ancestor.
type delta struct {
	changed *section
	removed []string
}

// Merge applies both sides' edits to a copy of the ancestor. The
// non-preferred side is applied first, removals then updates, so the
// preferred side wins every key both sides touched. Existing keys keep their
// position; new keys are appended in the order the side lists them.
func Merge(local, ancestor, remote []*record.Record, prefer Precedence) []*record.Record {
	base := toMap(ancestor)
	localDelta := diff(toMap(local), base)
	remoteDelta := diff(toMap(remote), base)

	first, second := remoteDelta, localDelta
	if prefer == Theirs {
		first, second = localDelta, remoteDelta
	}
	for _, d := range []delta{first, second} {
		for _, key := range d.removed {
			base.Delete(key)
		}
		for p := d.changed.Oldest(); p != nil; p = p.Next() {
			base.Set(p.Key, p.Value)
		}
	}

	out := make([]*record.Record, 0, base.Len())
	for p := base.Oldest(); p != nil; p = p.Next() {
		out = append(out, record.MustNew(record.KeyValueSchema, p.Key, []string{p.Value}, record.Merged))
	}
	return out
}

// toMap indexes records by type. A repeated key keeps its first position and
// its last value.
func toMap(records []*record.Record) *section {
	m := orderedmap.New[string, string]()
	for _, r := range records {
		m.Set(r.Type, r.Get("Value"))
	}
	return m
}

func diff(side, base *section) delta {
	d := delta{changed: orderedmap.New[string, string]()}
	for p := side.Oldest(); p != nil; p = p.Next() {
		if v, ok := base.Get(p.Key); !ok || v != p.Value {
			d.changed.Set(p.Key, p.Value)
		}
	}
	for p := base.Oldest(); p != nil; p = p.Next() {
		if _, ok := side.Get(p.Key); !ok {
			d.removed = append(d.removed, p.Key)
		}
	}
	return d
}
