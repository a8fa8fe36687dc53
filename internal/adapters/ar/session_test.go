package ar

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rgbdslam/internal/domain"
	"rgbdslam/internal/ports"
)

type recordingListener struct {
	mu     sync.Mutex
	errs   []error
	frames []domain.Frame
}

func (l *recordingListener) FrameUpdated(frame domain.Frame) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.frames = append(l.frames, frame)
}

func (l *recordingListener) SessionFailed(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, err)
}

func (l *recordingListener) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.frames)
}

func (l *recordingListener) first() domain.Frame {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames[0]
}

func (l *recordingListener) last() domain.Frame {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames[len(l.frames)-1]
}

func newTestSession(t *testing.T, opts ...Option) (*Session, *clock.Mock, *recordingListener) {
	t.Helper()
	clk := clock.NewMock()
	s := NewSession(append([]Option{WithClock(clk), WithFrameRate(10)}, opts...)...)
	listener := &recordingListener{}
	s.SetListener(listener)
	t.Cleanup(s.Pause)
	return s, clk, listener
}

func TestSession_DeliversFramesWhileRunning(t *testing.T) {
	s, clk, listener := newTestSession(t)
	require.NoError(t, s.Run(ports.ARConfig{SceneDepth: true}))

	require.Eventually(t, func() bool {
		clk.Add(100 * time.Millisecond)
		return listener.count() >= initializingFrames+2
	}, 2*time.Second, time.Millisecond)

	assert.Equal(t, domain.TrackingInitializing, listener.first().Tracking)
	assert.Equal(t, domain.TrackingNormal, listener.last().Tracking)

	s.Pause()
	frozen := listener.count()
	clk.Add(time.Second)
	assert.Equal(t, frozen, listener.count())
}

func TestSession_ForceTracking(t *testing.T) {
	s, clk, listener := newTestSession(t)
	lost := domain.TrackingExcessiveMotion
	s.ForceTracking(&lost)
	require.NoError(t, s.Run(ports.ARConfig{}))

	require.Eventually(t, func() bool {
		clk.Add(100 * time.Millisecond)
		return listener.count() > 0
	}, 2*time.Second, time.Millisecond)

	assert.Equal(t, domain.TrackingExcessiveMotion, listener.last().Tracking)
}

func TestSession_SceneDepthNeedsSensor(t *testing.T) {
	s, _, _ := newTestSession(t, WithDepth(false))

	assert.False(t, s.DepthSupported())
	assert.Error(t, s.Run(ports.ARConfig{SceneDepth: true}))
	assert.NoError(t, s.Run(ports.ARConfig{}))
}

func TestSession_FailReportsToListener(t *testing.T) {
	s, _, listener := newTestSession(t)
	require.NoError(t, s.Run(ports.ARConfig{}))

	s.Fail(ErrSessionInterrupted)

	listener.mu.Lock()
	defer listener.mu.Unlock()
	require.Len(t, listener.errs, 1)
	assert.True(t, errors.Is(listener.errs[0], ErrSessionInterrupted))
}

func TestOrbit(t *testing.T) {
	orbit := Orbit(2, time.Minute)

	start, _ := orbit(0)
	quarter, _ := orbit(15 * time.Second)

	assert.InDelta(t, 2, start.X, 1e-9)
	assert.InDelta(t, 0, quarter.X, 1e-9)
	assert.InDelta(t, 2, quarter.Y, 1e-9)
	assert.InDelta(t, 2, start.Sub(r3.Vector{}).Norm(), 1e-9)
}
