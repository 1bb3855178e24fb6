package work

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"git.home.luguber.info/inful/gallerybuilder/internal/logfields"
)

// Scheduler executes work items with a bounded concurrent fan-out.
//
// All items in the batch are independent and may run in any order. The one
// ordering constraint of a build — the overview page must be produced after
// every other artifact — is expressed as a two-phase run: the batch first,
// then a single finalize item on success.
type Scheduler struct {
	workers int
	logger  *slog.Logger
}

// NewScheduler creates a scheduler with the given worker bound.
func NewScheduler(workers int) *Scheduler {
	if workers < 1 {
		workers = 1
	}
	return &Scheduler{workers: workers, logger: slog.Default()}
}

// WithLogger sets a custom logger.
func (s *Scheduler) WithLogger(logger *slog.Logger) *Scheduler {
	s.logger = logger
	return s
}

// Run materializes all batch items concurrently, then the finalize item.
//
// The first failing item (by submission order) determines the returned error;
// in-flight siblings are allowed to finish but no further phase runs.
// finalize is only invoked once the whole batch has succeeded, so it may
// depend on every batch artifact being on disk.
func (s *Scheduler) Run(ctx context.Context, w *Writer, batch []Item, finalize func() (Item, error)) error {
	start := time.Now()
	s.logger.Debug("Scheduling artifact batch",
		logfields.Items(len(batch)), logfields.Workers(s.workers))

	if err := s.runBatch(ctx, w, batch); err != nil {
		return err
	}

	if finalize != nil {
		item, err := finalize()
		if err != nil {
			return err
		}
		if err := w.Materialize(item); err != nil {
			return err
		}
	}

	s.logger.Debug("Artifact batch complete",
		logfields.Items(len(batch)),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return nil
}

func (s *Scheduler) runBatch(ctx context.Context, w *Writer, items []Item) error {
	if len(items) == 0 {
		return nil
	}

	sem := make(chan struct{}, s.workers)
	errs := make([]error, len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		// Stop submitting once the context is gone; items already started
		// run to completion.
		if err := ctx.Err(); err != nil {
			errs[i] = err
			break
		}
		wg.Add(1)
		go func(i int, item Item) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			if err := w.Materialize(item); err != nil {
				s.logger.Debug("Work item failed",
					logfields.Kind(item.Kind()),
					logfields.Path(item.OutputPath()),
					logfields.Error(err))
				errs[i] = err
			}
		}(i, item)
	}
	wg.Wait()

	// Deterministic first-error semantics: submission order, not wall clock.
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
