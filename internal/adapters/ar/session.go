// Package ar simulates the device camera tracking session. Frames follow a
// scripted trajectory around the scan origin.
package ar

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r3"

	"rgbdslam/internal/domain"
	"rgbdslam/internal/logging"
	"rgbdslam/internal/ports"
)

const (
	// DefaultFrameRate is the camera rate of the simulated device
	DefaultFrameRate = 30
	// initializingFrames are reported before tracking becomes normal
	initializingFrames = 15
	defaultLight       = 1000
)

// ErrSessionInterrupted is reported when the simulated session is failed
var ErrSessionInterrupted = errors.New("session interrupted")

// Trajectory returns the device pose after elapsed time
type Trajectory func(elapsed time.Duration) (position r3.Vector, yaw float64)

// Orbit walks a circle of the given radius once per period
func Orbit(radius float64, period time.Duration) Trajectory {
	return func(elapsed time.Duration) (r3.Vector, float64) {
		angle := 2 * math.Pi * elapsed.Seconds() / period.Seconds()
		return r3.Vector{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}, angle + math.Pi/2
	}
}

var _ ports.ARSession = (*Session)(nil)

// Session is a simulated ports.ARSession
type Session struct {
	clock      clock.Clock
	depth      bool
	interval   time.Duration
	trajectory Trajectory

	mu       sync.Mutex
	cfg      ports.ARConfig
	elapsed  time.Duration
	frames   int
	listener ports.TrackingListener
	stop     chan struct{}
	tracking *domain.TrackingState
	wg       sync.WaitGroup
}

// Option configures a Session
type Option func(*Session)

// WithClock sets the clock driving frames
func WithClock(clk clock.Clock) Option {
	return func(s *Session) { s.clock = clk }
}

// WithDepth reports a depth sensor (LiDAR)
func WithDepth(depth bool) Option {
	return func(s *Session) { s.depth = depth }
}

// WithFrameRate sets frames per second
func WithFrameRate(fps int) Option {
	return func(s *Session) {
		if fps > 0 {
			s.interval = time.Second / time.Duration(fps)
		}
	}
}

// WithTrajectory sets the device path
func WithTrajectory(t Trajectory) Option {
	return func(s *Session) { s.trajectory = t }
}

// NewSession creates a paused session
func NewSession(opts ...Option) *Session {
	s := &Session{
		clock:      clock.New(),
		depth:      true,
		interval:   time.Second / DefaultFrameRate,
		trajectory: Orbit(1.5, time.Minute),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DepthSupported reports whether the device has a depth sensor
func (s *Session) DepthSupported() bool {
	return s.depth
}

// SetListener registers the receiver of frames and failures
func (s *Session) SetListener(listener ports.TrackingListener) {
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()
}

// Run starts or restarts frame delivery
func (s *Session) Run(cfg ports.ARConfig) error {
	s.Pause()

	s.mu.Lock()
	defer s.mu.Unlock()
	if cfg.SceneDepth && !s.depth {
		return errors.New("scene depth is not supported on this device")
	}
	s.cfg = cfg
	s.frames = 0
	s.stop = make(chan struct{})

	ticker := s.clock.Ticker(s.interval)
	s.wg.Add(1)
	go s.loop(ticker, s.stop)

	logging.Logger.Info("AR session running", "scene_depth", cfg.SceneDepth, "interval", s.interval)
	return nil
}

// Pause stops frame delivery and waits for the frame loop to exit
func (s *Session) Pause() {
	s.mu.Lock()
	stop := s.stop
	s.stop = nil
	s.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	s.wg.Wait()
	logging.Logger.Info("AR session paused")
}

// ForceTracking overrides the tracking state of the next frames. nil returns
// to normal tracking.
func (s *Session) ForceTracking(state *domain.TrackingState) {
	s.mu.Lock()
	s.tracking = state
	s.mu.Unlock()
}

// Fail pauses the session and reports err to the listener
func (s *Session) Fail(err error) {
	s.Pause()
	s.mu.Lock()
	listener := s.listener
	s.mu.Unlock()
	if listener != nil {
		listener.SessionFailed(err)
	}
}

func (s *Session) loop(ticker *clock.Ticker, stop chan struct{}) {
	defer s.wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			frame, listener := s.nextFrame()
			if listener != nil {
				listener.FrameUpdated(frame)
			}
		}
	}
}

func (s *Session) nextFrame() (domain.Frame, ports.TrackingListener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frames++
	s.elapsed += s.interval
	position, yaw := s.trajectory(s.elapsed)

	tracking := domain.TrackingNormal
	switch {
	case s.tracking != nil:
		tracking = *s.tracking
	case s.frames <= initializingFrames:
		tracking = domain.TrackingInitializing
	}

	return domain.Frame{
		LightEstimate: defaultLight,
		Position:      position,
		Stamp:         s.clock.Now(),
		Tracking:      tracking,
		Yaw:           yaw,
	}, s.listener
}
