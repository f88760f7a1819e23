package orchestrator

import (
	"fmt"
	"sync"
)

const progressBuffer = 64

// progressFeed fans section events out to at most one reader. Events that do
// not fit the buffer are counted and dropped so a slow reader never stalls a
// merge. Publishing after close is a no-op.
type progressFeed struct {
	mu      sync.Mutex
	ch      chan ProgressEvent
	closed  bool
	dropped int
}

func newProgressFeed() *progressFeed {
	return &progressFeed{ch: make(chan ProgressEvent, progressBuffer)}
}

func (f *progressFeed) publish(ev ProgressEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	select {
	case f.ch <- ev:
	default:
		f.dropped++
	}
}

func (f *progressFeed) events() <-chan ProgressEvent { return f.ch }

// close ends the feed and reports how many events were dropped.
func (f *progressFeed) close() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.ch)
	}
	return f.dropped
}

// progressLines holds the line layout per status; %s is the section name.
var progressLines = map[ProgressStatus]string{
	ProgressPending:  "  ○ [%s] (pending)",
	ProgressWorking:  "  ● [%s]...",
	ProgressComplete: "  ✓ [%s] %s",
	ProgressFailed:   "  ✗ [%s] failed: %s",
}

// FormatProgress renders ev as one line of the --verbose output.
func FormatProgress(ev ProgressEvent) string {
	layout, ok := progressLines[ev.Status]
	switch {
	case !ok:
		return fmt.Sprintf("  ? [%s] (unknown status)", ev.Section)
	case ev.Status == ProgressComplete:
		msg := ev.Message
		if msg == "" {
			msg = "merged"
		}
		return fmt.Sprintf(layout, ev.Section, msg)
	case ev.Status == ProgressFailed:
		return fmt.Sprintf(layout, ev.Section, ev.Message)
	default:
		return fmt.Sprintf(layout, ev.Section)
	}
}
