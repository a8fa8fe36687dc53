package services

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"

	"rgbdslam/internal/domain"
	"rgbdslam/internal/ports"
)

const tapRenderDelay = 100 * time.Millisecond

// TouchSink receives normalized gestures
type TouchSink interface {
	OnTouchEvent(count int, kind domain.TouchKind, x0, y0, x1, y1 float64)
}

// TouchRouter turns raw touches on the viewport into the normalized gesture
// events the engine understands. It tracks at most two fingers.
type TouchRouter struct {
	bounds r2.Rect
	clock  clock.Clock
	first  *domain.Touch
	mu     sync.Mutex
	onTap  func()
	render ports.RenderControl
	second *domain.Touch
	sink   TouchSink
}

// NewTouchRouter creates a router for a viewport of the given size. onTap is
// called for single taps.
func NewTouchRouter(clk clock.Clock, sink TouchSink, render ports.RenderControl, onTap func()) *TouchRouter {
	return &TouchRouter{
		bounds: r2.Rect{X: r1.Interval{Lo: 0, Hi: 1}, Y: r1.Interval{Lo: 0, Hi: 1}},
		clock:  clk,
		onTap:  onTap,
		render: render,
		sink:   sink,
	}
}

// SetBounds updates the viewport size
func (r *TouchRouter) SetBounds(width, height float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bounds = r2.RectFromPoints(r2.Point{}, r2.Point{X: width, Y: height})
}

// Began tracks new fingers
func (r *TouchRouter) Began(touches []domain.Touch) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range touches {
		if r.tracked(t.ID) != nil {
			continue
		}
		switch {
		case r.first == nil:
			r.first = &t
			p := r.normalize(t.Position)
			r.sink.OnTouchEvent(1, domain.TouchDown, p.X, p.Y, 0, 0)
		case r.second == nil:
			r.second = &t
			p0, p1 := r.normalize(r.first.Position), r.normalize(t.Position)
			r.sink.OnTouchEvent(2, domain.TouchSecondDown, p0.X, p0.Y, p1.X, p1.Y)
		}
	}
	r.render.Invalidate()
}

// Moved updates tracked fingers and emits a drag or a two-finger gesture
func (r *TouchRouter) Moved(touches []domain.Touch) {
	r.mu.Lock()
	defer r.mu.Unlock()

	moved := false
	for _, t := range touches {
		if tracked := r.tracked(t.ID); tracked != nil {
			tracked.Position = t.Position
			moved = true
		}
	}
	if !moved {
		return
	}

	if r.second != nil {
		p0, p1 := r.normalize(r.first.Position), r.normalize(r.second.Position)
		r.sink.OnTouchEvent(2, domain.TouchMove, p0.X, p0.Y, p1.X, p1.Y)
	} else {
		p := r.normalize(r.first.Position)
		r.sink.OnTouchEvent(1, domain.TouchMove, p.X, p.Y, 0, 0)
	}
	r.render.Invalidate()
}

// Ended releases fingers. The remaining finger, if any, is re-anchored.
func (r *TouchRouter) Ended(touches []domain.Touch) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var last *domain.Touch
	for _, t := range touches {
		switch {
		case r.first != nil && r.first.ID == t.ID:
			last = r.first
			r.first, r.second = r.second, nil
		case r.second != nil && r.second.ID == t.ID:
			last = r.second
			r.second = nil
		}
	}
	if last == nil {
		return
	}

	if r.first != nil {
		p := r.normalize(r.first.Position)
		r.sink.OnTouchEvent(1, domain.TouchDown, p.X, p.Y, 0, 0)
	} else {
		p := r.normalize(last.Position)
		r.sink.OnTouchEvent(1, domain.TouchUp, p.X, p.Y, 0, 0)
	}
	r.render.Invalidate()
}

// Cancelled forgets the given fingers without emitting a gesture. A remaining
// second finger becomes the first.
func (r *TouchRouter) Cancelled(touches []domain.Touch) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range touches {
		switch {
		case r.first != nil && r.first.ID == t.ID:
			r.first, r.second = r.second, nil
		case r.second != nil && r.second.ID == t.ID:
			r.second = nil
		}
	}
	r.render.Invalidate()
}

// DoubleTap is forwarded to the engine as a three-finger event at p
func (r *TouchRouter) DoubleTap(p r2.Point) {
	r.mu.Lock()
	n := r.normalize(p)
	r.mu.Unlock()

	r.sink.OnTouchEvent(3, domain.TouchDown, n.X, n.Y, 0, 0)
	r.clock.AfterFunc(tapRenderDelay, r.render.Invalidate)
}

// SingleTap toggles the HUD
func (r *TouchRouter) SingleTap() {
	if r.onTap != nil {
		r.onTap()
	}
	r.clock.AfterFunc(tapRenderDelay, r.render.Invalidate)
}

// Tracking returns how many fingers are tracked
func (r *TouchRouter) Tracking() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch {
	case r.second != nil:
		return 2
	case r.first != nil:
		return 1
	default:
		return 0
	}
}

func (r *TouchRouter) tracked(id int) *domain.Touch {
	switch {
	case r.first != nil && r.first.ID == id:
		return r.first
	case r.second != nil && r.second.ID == id:
		return r.second
	default:
		return nil
	}
}

// normalize maps a view point into [0,1]x[0,1]
func (r *TouchRouter) normalize(p r2.Point) r2.Point {
	p = r.bounds.ClampPoint(p)
	size := r.bounds.Size()
	lo := r.bounds.Lo()
	out := r2.Point{}
	if size.X > 0 {
		out.X = (p.X - lo.X) / size.X
	}
	if size.Y > 0 {
		out.Y = (p.Y - lo.Y) / size.Y
	}
	return out
}
