package orchestrator

import (
	"context"

	"github.com/dusk-indust/assmerge/internal/ass"
)

// Result is the outcome of merging three script versions.
type Result struct {
	// Document is the best-effort merged script. It is always complete, even
	// when conflicts were found.
	Document *ass.Document

	// EventConflict is set when an [Events] hunk was written with conflict
	// markers.
	EventConflict bool

	// StyleConflict is set when styles had to be renamed to keep names
	// unique.
	StyleConflict bool

	// PrunedExtradata counts extradata entries dropped because no merged
	// event referenced them.
	PrunedExtradata int

	// Sections summarizes each merged section in output order.
	Sections []SectionResult
}

// Conflict reports whether the merge needs manual attention.
func (r *Result) Conflict() bool {
	return r.EventConflict || r.StyleConflict
}

// SectionResult describes one merged section.
type SectionResult struct {
	Name     string
	Records  int
	Conflict bool
}

// ProgressEvent is emitted while sections are being merged.
type ProgressEvent struct {
	Section string
	Status  ProgressStatus
	Message string
}

// ProgressStatus is the state of a section within a merge.
type ProgressStatus string

const (
	ProgressPending  ProgressStatus = "pending"
	ProgressWorking  ProgressStatus = "working"
	ProgressComplete ProgressStatus = "complete"
	ProgressFailed   ProgressStatus = "failed"
)

// Orchestrator merges whole scripts section by section.
type Orchestrator interface {
	// Merge combines local and remote edits of ancestor.
	Merge(ctx context.Context, local, ancestor, remote *ass.Document) (*Result, error)

	// Progress returns a channel that emits progress events.
	Progress() <-chan ProgressEvent
}
