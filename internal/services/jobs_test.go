package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rgbdslam/internal/domain"
)

func newTestCoordinator(t *testing.T) (*JobCoordinator, *EventLoop, *recordingPresenter, *countingCanceller) {
	t.Helper()
	loop := NewEventLoop()
	t.Cleanup(loop.Close)
	presenter := &recordingPresenter{}
	canceller := &countingCanceller{}
	return NewJobCoordinator(loop, canceller, presenter, clock.NewMock()), loop, presenter, canceller
}

// onLoop runs fn on the loop and fails the test if the loop is gone
func onLoop(t *testing.T, loop *EventLoop, fn func()) {
	t.Helper()
	require.True(t, loop.Sync(fn))
}

func TestJobCoordinator_CompletesOnMainThread(t *testing.T) {
	jobs, loop, presenter, _ := newTestCoordinator(t)

	results := make(chan domain.JobResult, 1)
	onLoop(t, loop, func() {
		_, err := jobs.Run(domain.JobSaveDatabase, domain.StateIdle, false,
			func(ctx context.Context) domain.JobResult { return domain.Succeeded(3) },
			func(r domain.JobResult) {
				assert.Nil(t, jobs.Pending())
				results <- r
			})
		require.NoError(t, err)
	})

	select {
	case r := <-results:
		assert.True(t, r.OK())
		assert.Equal(t, 3, r.Code)
	case <-time.After(2 * time.Second):
		t.Fatal("completion never ran")
	}
	assert.Equal(t, []string{"Saving"}, presenter.ProgressShown())
	assert.Equal(t, 1, presenter.Dismissed())
}

func TestJobCoordinator_RejectsSecondJob(t *testing.T) {
	jobs, loop, _, _ := newTestCoordinator(t)

	release := make(chan struct{})
	var completions atomic.Int32
	onLoop(t, loop, func() {
		_, err := jobs.Run(domain.JobExport, domain.StateIdle, true,
			func(ctx context.Context) domain.JobResult {
				<-release
				return domain.Succeeded(0)
			},
			func(domain.JobResult) { completions.Add(1) })
		require.NoError(t, err)

		_, err = jobs.Run(domain.JobOptimize, domain.StateIdle, true,
			func(ctx context.Context) domain.JobResult { return domain.Succeeded(0) },
			func(domain.JobResult) { completions.Add(1) })
		assert.ErrorIs(t, err, domain.ErrJobInProgress)
		assert.Equal(t, domain.JobExport, jobs.Pending().Kind)
	})

	close(release)
	require.Eventually(t, func() bool { return completions.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	// The slot is free again
	onLoop(t, loop, func() {
		_, err := jobs.Run(domain.JobOptimize, domain.StateIdle, true,
			func(ctx context.Context) domain.JobResult { return domain.Succeeded(0) },
			func(domain.JobResult) { completions.Add(1) })
		assert.NoError(t, err)
	})
	require.Eventually(t, func() bool { return completions.Load() == 2 }, 2*time.Second, 5*time.Millisecond)
}

func TestJobCoordinator_CancelCompletesOnceAsCanceled(t *testing.T) {
	jobs, loop, _, canceller := newTestCoordinator(t)

	var completions atomic.Int32
	results := make(chan domain.JobResult, 2)
	onLoop(t, loop, func() {
		_, err := jobs.Run(domain.JobOptimize, domain.StateIdle, true,
			func(ctx context.Context) domain.JobResult {
				<-ctx.Done()
				return domain.Failed(-1, nil)
			},
			func(r domain.JobResult) {
				completions.Add(1)
				results <- r
			})
		require.NoError(t, err)
	})

	onLoop(t, loop, func() {
		require.NoError(t, jobs.Cancel())
		// A second cancel is a no-op
		require.NoError(t, jobs.Cancel())
	})

	select {
	case r := <-results:
		assert.True(t, r.Canceled())
	case <-time.After(2 * time.Second):
		t.Fatal("completion never ran")
	}
	require.NoError(t, jobs.Wait(context.Background()))
	onLoop(t, loop, func() {})

	assert.Equal(t, int32(1), completions.Load())
	assert.Equal(t, 1, canceller.Calls())
}

func TestJobCoordinator_CancelAfterSuccessKeepsResult(t *testing.T) {
	jobs, loop, _, _ := newTestCoordinator(t)

	started := make(chan struct{})
	release := make(chan struct{})
	results := make(chan domain.JobResult, 1)
	onLoop(t, loop, func() {
		_, err := jobs.Run(domain.JobExport, domain.StateIdle, true,
			func(ctx context.Context) domain.JobResult {
				close(started)
				<-release
				return domain.Succeeded(0)
			},
			func(r domain.JobResult) { results <- r })
		require.NoError(t, err)
	})
	<-started
	onLoop(t, loop, func() { require.NoError(t, jobs.Cancel()) })
	close(release)

	select {
	case r := <-results:
		assert.True(t, r.OK())
	case <-time.After(2 * time.Second):
		t.Fatal("completion never ran")
	}
}

func TestJobCoordinator_NonCancellableIgnoresCancel(t *testing.T) {
	jobs, loop, _, canceller := newTestCoordinator(t)

	release := make(chan struct{})
	onLoop(t, loop, func() {
		_, err := jobs.Run(domain.JobSaveDatabase, domain.StateIdle, false,
			func(ctx context.Context) domain.JobResult {
				<-release
				return domain.Succeeded(0)
			}, nil)
		require.NoError(t, err)
		require.NoError(t, jobs.Cancel())
		assert.False(t, jobs.Pending().CancelRequested())
	})
	close(release)
	require.NoError(t, jobs.Wait(context.Background()))
	assert.Zero(t, canceller.Calls())
}

func TestJobCoordinator_PanicBecomesFailure(t *testing.T) {
	jobs, loop, _, _ := newTestCoordinator(t)

	results := make(chan domain.JobResult, 1)
	onLoop(t, loop, func() {
		_, err := jobs.Run(domain.JobRecover, domain.StateWelcome, true,
			func(ctx context.Context) domain.JobResult { panic("engine crashed") },
			func(r domain.JobResult) { results <- r })
		require.NoError(t, err)
	})

	select {
	case r := <-results:
		assert.Equal(t, domain.OutcomeFailed, r.Outcome)
		assert.ErrorContains(t, r.Err, "engine crashed")
	case <-time.After(2 * time.Second):
		t.Fatal("completion never ran")
	}
}

func TestJobCoordinator_ShutdownRejectsNewJobs(t *testing.T) {
	jobs, loop, _, _ := newTestCoordinator(t)

	onLoop(t, loop, func() {
		jobs.Shutdown()
		_, err := jobs.Run(domain.JobExport, domain.StateIdle, true,
			func(ctx context.Context) domain.JobResult { return domain.Succeeded(0) }, nil)
		assert.True(t, errors.Is(err, domain.ErrSessionClosed))
		assert.ErrorIs(t, jobs.Cancel(), domain.ErrNoPendingJob)
	})
}

func TestJobCoordinator_ProgressFraction(t *testing.T) {
	jobs, loop, presenter, _ := newTestCoordinator(t)

	release := make(chan struct{})
	onLoop(t, loop, func() {
		jobs.Progress(1, 2) // no job, ignored
		_, err := jobs.Run(domain.JobOpenDatabase, domain.StateWelcome, false,
			func(ctx context.Context) domain.JobResult {
				<-release
				return domain.Succeeded(0)
			}, nil)
		require.NoError(t, err)
		jobs.Progress(1, 4)
		jobs.Progress(5, 4)
		jobs.Progress(1, 0)
	})
	close(release)
	require.NoError(t, jobs.Wait(context.Background()))

	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	assert.Equal(t, []float64{0.25, 1}, presenter.progressValues)
}

func TestJobCoordinator_DetachedProgressIgnoresUpdates(t *testing.T) {
	jobs, loop, presenter, _ := newTestCoordinator(t)

	release := make(chan struct{})
	onLoop(t, loop, func() {
		_, err := jobs.Run(domain.JobOpenDatabase, domain.StateIdle, false,
			func(ctx context.Context) domain.JobResult {
				<-release
				return domain.Succeeded(2)
			}, nil)
		require.NoError(t, err)
		jobs.Progress(1, 2)
		jobs.DetachProgress()
		jobs.Progress(2, 2)
	})
	close(release)
	require.NoError(t, jobs.Wait(context.Background()))

	presenter.mu.Lock()
	defer presenter.mu.Unlock()
	assert.Equal(t, []float64{0.5}, presenter.progressValues)
}
