package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"rgbdslam/internal/domain"
	"rgbdslam/internal/logging"
	"rgbdslam/internal/ports"
)

// JobWork is the blocking part of a job, run on a background worker
type JobWork func(ctx context.Context) domain.JobResult

// JobCompletion interprets the result of a job on the main thread
type JobCompletion func(result domain.JobResult)

// Canceller interrupts the engine operation in progress
type Canceller interface {
	CancelProcessing()
}

// JobHandle tracks one background job
type JobHandle struct {
	Cancellable   bool
	ID            string
	Kind          domain.JobKind
	PreviousState domain.CaptureState
	StartedAt     time.Time

	cancel     context.CancelFunc
	ctx        context.Context
	detached   bool
	done       bool
	onComplete JobCompletion
}

// CancelRequested reports whether the user asked to cancel the job
func (h *JobHandle) CancelRequested() bool {
	return h.ctx.Err() != nil
}

// JobCoordinator runs long engine operations off the main thread. At most
// one job is in flight; its completion runs exactly once on the main thread.
type JobCoordinator struct {
	canceller Canceller
	clock     clock.Clock
	main      ports.MainThread
	pending   *JobHandle
	progress  ports.ProgressPresenter
	shutdown  bool
	slot      *semaphore.Weighted
	workers   sync.WaitGroup
}

// NewJobCoordinator creates a JobCoordinator
func NewJobCoordinator(
	main ports.MainThread,
	canceller Canceller,
	progress ports.ProgressPresenter,
	clk clock.Clock,
) *JobCoordinator {
	return &JobCoordinator{
		canceller: canceller,
		clock:     clk,
		main:      main,
		progress:  progress,
		slot:      semaphore.NewWeighted(1),
	}
}

// Pending returns the job in flight, nil when idle. Main thread only.
func (c *JobCoordinator) Pending() *JobHandle {
	return c.pending
}

// Run shows the progress indicator and starts work on a background worker.
// onComplete receives the result on the main thread. Main thread only.
func (c *JobCoordinator) Run(
	kind domain.JobKind,
	previous domain.CaptureState,
	cancellable bool,
	work JobWork,
	onComplete JobCompletion,
) (*JobHandle, error) {
	if c.shutdown {
		return nil, domain.ErrSessionClosed
	}
	if !c.slot.TryAcquire(1) {
		logging.Logger.Warn("Job rejected, another job is running",
			"kind", kind, "pending", c.pending.Kind)
		return nil, fmt.Errorf("cannot start %s: %w", kind, domain.ErrJobInProgress)
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &JobHandle{
		Cancellable:   cancellable,
		ID:            uuid.NewString(),
		Kind:          kind,
		PreviousState: previous,
		StartedAt:     c.clock.Now(),
		cancel:        cancel,
		ctx:           ctx,
		onComplete:    onComplete,
	}
	c.pending = h

	logging.Logger.Info("Job started", "id", h.ID, "kind", kind, "previous_state", previous)
	c.progress.ShowProgress(kind.Title(), cancellable)

	c.workers.Add(1)
	go c.execute(h, work)
	return h, nil
}

// Progress forwards engine progress to the indicator. Main thread only.
func (c *JobCoordinator) Progress(count, max int) {
	if c.pending == nil || c.pending.detached || max <= 0 {
		return
	}
	fraction := float64(count) / float64(max)
	if fraction > 1 {
		fraction = 1
	}
	c.progress.UpdateProgress(fraction)
}

// DetachProgress hides the indicator while the job keeps running
func (c *JobCoordinator) DetachProgress() {
	if c.pending != nil {
		c.pending.detached = true
		c.progress.DismissProgress()
	}
}

// Cancel asks the pending job to stop. The completion still runs once, with
// a canceled result unless the work had already succeeded. Main thread only.
func (c *JobCoordinator) Cancel() error {
	h := c.pending
	if h == nil {
		return domain.ErrNoPendingJob
	}
	if !h.Cancellable {
		logging.Logger.Debug("Ignoring cancel of non-cancellable job", "id", h.ID, "kind", h.Kind)
		return nil
	}
	c.abort(h)
	return nil
}

// Shutdown rejects new jobs and aborts the pending one. Main thread only.
func (c *JobCoordinator) Shutdown() {
	c.shutdown = true
	if c.pending != nil {
		c.abort(c.pending)
	}
}

// Wait blocks until every worker has returned
func (c *JobCoordinator) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.workers.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for background job: %w", ctx.Err())
	}
}

func (c *JobCoordinator) abort(h *JobHandle) {
	if h.CancelRequested() {
		return
	}
	logging.Logger.Info("Job cancel requested", "id", h.ID, "kind", h.Kind)
	h.cancel()
	c.canceller.CancelProcessing()
}

func (c *JobCoordinator) execute(h *JobHandle, work JobWork) {
	defer c.workers.Done()

	result := c.safeWork(h, work)
	if h.CancelRequested() && !result.OK() {
		result.Outcome = domain.OutcomeCanceled
	}
	c.main.Post(func() { c.complete(h, result) })
}

func (c *JobCoordinator) safeWork(h *JobHandle, work JobWork) (result domain.JobResult) {
	defer func() {
		if r := recover(); r != nil {
			logging.Logger.Error("Job panicked", "id", h.ID, "kind", h.Kind, "panic", r)
			result = domain.Failed(-1, fmt.Errorf("%s panicked: %v", h.Kind, r))
		}
	}()
	return work(h.ctx)
}

func (c *JobCoordinator) complete(h *JobHandle, result domain.JobResult) {
	if h.done {
		return
	}
	h.done = true
	h.cancel()

	c.progress.DismissProgress()
	if c.pending == h {
		c.pending = nil
	}
	c.slot.Release(1)

	logging.Logger.Info("Job finished",
		"id", h.ID,
		"kind", h.Kind,
		"outcome", result.Outcome,
		"code", result.Code,
		"duration", c.clock.Since(h.StartedAt))
	if result.Err != nil {
		logging.Logger.Warn("Job error", "id", h.ID, "kind", h.Kind, "error", result.Err)
	}

	if h.onComplete != nil {
		h.onComplete(result)
	}
}
