package services

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/bep/debounce"

	"rgbdslam/internal/domain"
	"rgbdslam/internal/ports"
)

const (
	// DefaultRenderInterval is the continuous rendering period
	DefaultRenderInterval = time.Second / 60
	invalidateDelay       = 16 * time.Millisecond
)

var _ ports.RenderControl = (*RenderLoop)(nil)

// Renderer draws one frame
type Renderer interface {
	Render() domain.RenderCode
}

// RenderLoop drives the engine render pass. It renders continuously while
// running and only on Invalidate while paused.
type RenderLoop struct {
	clock      clock.Clock
	closeOnce  sync.Once
	debounced  func(f func())
	done       chan struct{}
	frames     atomic.Int64
	interval   time.Duration
	invalidate chan struct{}
	onResult   func(domain.RenderCode)
	paused     atomic.Bool
	renderer   Renderer
	stop       chan struct{}
}

// NewRenderLoop starts a paused render loop. onResult is called from the
// render goroutine for every non-OK frame.
func NewRenderLoop(clk clock.Clock, renderer Renderer, interval time.Duration, onResult func(domain.RenderCode)) *RenderLoop {
	if interval <= 0 {
		interval = DefaultRenderInterval
	}
	r := &RenderLoop{
		clock:      clk,
		debounced:  debounce.New(invalidateDelay),
		done:       make(chan struct{}),
		interval:   interval,
		invalidate: make(chan struct{}, 1),
		onResult:   onResult,
		renderer:   renderer,
		stop:       make(chan struct{}),
	}
	r.paused.Store(true)
	go r.run()
	return r
}

// SetPaused switches between continuous and on-demand rendering
func (r *RenderLoop) SetPaused(paused bool) {
	if r.paused.Swap(paused) != paused {
		r.kick()
	}
}

// Paused reports whether continuous rendering is off
func (r *RenderLoop) Paused() bool {
	return r.paused.Load()
}

// Invalidate requests one frame while paused. Bursts are coalesced.
func (r *RenderLoop) Invalidate() {
	if !r.paused.Load() {
		return
	}
	r.debounced(r.kick)
}

// Frames is the number of frames rendered so far
func (r *RenderLoop) Frames() int64 {
	return r.frames.Load()
}

// Close stops rendering and waits for the frame in progress
func (r *RenderLoop) Close() error {
	r.closeOnce.Do(func() {
		close(r.stop)
		<-r.done
	})
	return nil
}

func (r *RenderLoop) kick() {
	select {
	case r.invalidate <- struct{}{}:
	default:
	}
}

func (r *RenderLoop) run() {
	defer close(r.done)

	ticker := r.clock.Ticker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			if r.paused.Load() {
				continue
			}
			r.renderOnce()
		case <-r.invalidate:
			r.renderOnce()
		}
	}
}

func (r *RenderLoop) renderOnce() {
	code := r.renderer.Render()
	r.frames.Add(1)
	if code != domain.RenderOK && r.onResult != nil {
		r.onResult(code)
	}
}
