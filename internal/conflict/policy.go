// Package conflict provides the hunk resolvers used when both sides of a
// merge changed the same range differently.
package conflict

import (
	"github.com/dusk-indust/assmerge/internal/diff3"
	"github.com/dusk-indust/assmerge/internal/record"
)

// Owner prefixes applied to conflicting keyed entities.
const (
	LocalPrefix  = "Own$"
	RemotePrefix = "Other$"
)

// Sequential returns a resolver for ordered content such as events. It wraps
// the local and remote slices in marker events and, when withAncestor is
// set, includes the ancestor slice between them.
func Sequential(markers Markers, withAncestor bool) diff3.Resolver {
	return func(local, remote, ancestor []*record.Record) ([]*record.Record, bool) {
		out := make([]*record.Record, 0, len(local)+len(remote)+len(ancestor)+4)
		out = append(out, MarkerEvent(markers.Ours))
		out = append(out, local...)
		if withAncestor {
			out = append(out, MarkerEvent(markers.Ancestor))
			out = append(out, ancestor...)
		}
		out = append(out, MarkerEvent(markers.Theirs))
		out = append(out, remote...)
		out = append(out, MarkerEvent(markers.End))
		return out, true
	}
}

// KeyedDuplicate returns a resolver for entities identified by a name field,
// such as styles. Both slices are kept, with names prefixed by their owner so
// they no longer collide.
func KeyedDuplicate(field string) diff3.Resolver {
	return func(local, remote, _ []*record.Record) ([]*record.Record, bool) {
		out := make([]*record.Record, 0, len(local)+len(remote))
		for _, r := range local {
			out = append(out, renamed(r, field, LocalPrefix))
		}
		for _, r := range remote {
			out = append(out, renamed(r, field, RemotePrefix))
		}
		return out, true
	}
}

func renamed(r *record.Record, field, prefix string) *record.Record {
	c := r.Clone()
	c.Set(field, prefix+r.Get(field))
	return c
}
