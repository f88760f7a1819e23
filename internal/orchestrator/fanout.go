package orchestrator

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// SectionTask is one independent unit of a merge. Tasks must not share
// mutable state.
type SectionTask struct {
	// Section names the script section the task produces.
	Section string

	// Run performs the merge and stores its output. The returned message, if
	// any, is attached to the completion event.
	Run func(ctx context.Context) (string, error)
}

// FanOut runs section tasks in parallel and reports their progress.
type FanOut struct {
	onProgress func(ProgressEvent)
}

// NewFanOut creates a FanOut. onProgress is called synchronously from each
// goroutine; it may be nil.
func NewFanOut(onProgress func(ProgressEvent)) *FanOut {
	return &FanOut{onProgress: onProgress}
}

// Run starts every task and waits for all of them. The first failure cancels
// the context handed to the remaining tasks and is returned.
func (f *FanOut) Run(ctx context.Context, tasks []SectionTask) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, task := range tasks {
		f.emit(ProgressEvent{Section: task.Section, Status: ProgressPending})

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				f.emit(ProgressEvent{Section: task.Section, Status: ProgressFailed, Message: err.Error()})
				return err
			}
			f.emit(ProgressEvent{Section: task.Section, Status: ProgressWorking})

			msg, err := task.Run(gctx)
			if err != nil {
				f.emit(ProgressEvent{Section: task.Section, Status: ProgressFailed, Message: err.Error()})
				return err
			}
			f.emit(ProgressEvent{Section: task.Section, Status: ProgressComplete, Message: msg})
			return nil
		})
	}

	return g.Wait()
}

func (f *FanOut) emit(ev ProgressEvent) {
	if f.onProgress != nil {
		f.onProgress(ev)
	}
}
