package diff3

import "github.com/dusk-indust/assmerge/internal/record"

// Outcome classifies a hunk by which sides changed it.
type Outcome string

const (
	Unchanged     Outcome = "unchanged"
	LocalChanged  Outcome = "local_changed"
	RemoteChanged Outcome = "remote_changed"
	Converged     Outcome = "converged"
	Conflicting   Outcome = "conflicting"
)

// Classify compares the local and remote slices of a hunk with the ancestor
// slice and with each other.
func Classify(local, ancestor, remote []*record.Record) Outcome {
	localChanged := !Equal(local, ancestor)
	remoteChanged := !Equal(remote, ancestor)

	switch {
	case !localChanged && !remoteChanged:
		return Unchanged
	case localChanged && !remoteChanged:
		return LocalChanged
	case remoteChanged && !localChanged:
		return RemoteChanged
	case Equal(local, remote):
		return Converged
	default:
		return Conflicting
	}
}

// Equal reports whether two record slices have the same length and pairwise
// equal records.
func Equal(x, y []*record.Record) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !x[i].Equal(y[i]) {
			return false
		}
	}
	return true
}
