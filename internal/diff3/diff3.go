// Package diff3 merges two edited versions of a record sequence against their
// common ancestor.
//
// Both sides are aligned to the ancestor with the match package. Ancestor
// records matched on both sides are merged field by field; everything in
// between forms hunks, which are taken from whichever side changed them or
// handed to a Resolver when both sides did.
package diff3

import (
	"github.com/dusk-indust/assmerge/internal/match"
	"github.com/dusk-indust/assmerge/internal/record"
)

// Resolver produces the replacement for a hunk both sides changed
// differently. It reports whether the output should count as a conflict.
type Resolver func(local, remote, ancestor []*record.Record) ([]*record.Record, bool)

// Key derives an equality key from a record for alignment purposes.
type Key = match.KeyFunc[*record.Record]

// Result is a merged sequence plus whether any hunk was resolved as a
// conflict.
type Result struct {
	Records  []*record.Record
	Conflict bool
}

// Merge performs the three-way merge of local and remote against ancestor.
// keys drive the alignment; see match.New.
func Merge(local, ancestor, remote []*record.Record, resolve Resolver, keys ...Key) Result {
	m := &merger{local: local, ancestor: ancestor, remote: remote, resolve: resolve}
	m.run(keys)
	return m.res
}

type merger struct {
	local, ancestor, remote []*record.Record
	resolve                 Resolver
	res                     Result
}

func (m *merger) run(keys []Key) {
	toLocal := match.Map(match.New(m.ancestor, m.local, keys...).Runs(), len(m.ancestor))
	toRemote := match.Map(match.New(m.ancestor, m.remote, keys...).Runs(), len(m.ancestor))

	prevA, prevB, prevO := -1, -1, -1
	for o := range m.ancestor {
		a, b := toLocal[o], toRemote[o]
		if a < 0 || b < 0 {
			continue
		}

		merged, ok := record.Merge(m.local[a], m.ancestor[o], m.remote[b])
		if !ok {
			// Left unconfirmed: the position falls into the next hunk.
			continue
		}

		if a > prevA+1 || b > prevB+1 || o > prevO+1 {
			m.hunk(span{prevA + 1, a}, span{prevB + 1, b}, span{prevO + 1, o})
		}
		m.res.Records = append(m.res.Records, merged)
		prevA, prevB, prevO = a, b, o
	}

	m.hunk(span{prevA + 1, len(m.local)}, span{prevB + 1, len(m.remote)}, span{prevO + 1, len(m.ancestor)})
}

type span struct{ lo, hi int }

func (s span) of(seq []*record.Record) []*record.Record { return seq[s.lo:s.hi] }

// hunk emits the unconfirmed ranges between two confirmed positions.
func (m *merger) hunk(a, b, o span) {
	localHunk, remoteHunk, ancestorHunk := a.of(m.local), b.of(m.remote), o.of(m.ancestor)

	switch Classify(localHunk, ancestorHunk, remoteHunk) {
	case Unchanged, LocalChanged, Converged:
		m.res.Records = append(m.res.Records, localHunk...)
	case RemoteChanged:
		m.res.Records = append(m.res.Records, remoteHunk...)
	default:
		out, conflict := m.resolve(localHunk, remoteHunk, ancestorHunk)
		m.res.Records = append(m.res.Records, out...)
		m.res.Conflict = m.res.Conflict || conflict
	}
}
