package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/geo/r2"

	"rgbdslam/internal/domain"
)

const (
	doubleClickInterval = 400 * time.Millisecond
	// pinchSpan is the half distance, in cells, between the two simulated
	// fingers of a wheel zoom
	pinchSpan = 4.0
	// pinchStep is how much one wheel notch spreads or closes the fingers
	pinchStep = 1.25
)

// TouchInput receives the gestures of the viewport
type TouchInput interface {
	Began(touches []domain.Touch)
	Cancelled(touches []domain.Touch)
	DoubleTap(p r2.Point)
	Ended(touches []domain.Touch)
	Moved(touches []domain.Touch)
	SetBounds(width, height float64)
	SingleTap()
}

// mouseTouch turns terminal mouse events into touches. A left drag is a one
// finger drag, the wheel is a two finger pinch around the pointer.
type mouseTouch struct {
	dragging  bool
	lastClick time.Time
	moved     bool
	now       func() time.Time
	touch     TouchInput
}

func newMouseTouch(touch TouchInput) *mouseTouch {
	return &mouseTouch{now: time.Now, touch: touch}
}

func (m *mouseTouch) handle(msg tea.MouseMsg) {
	if m.touch == nil {
		return
	}
	p := r2.Point{X: float64(msg.X), Y: float64(msg.Y)}

	switch {
	case msg.Button == tea.MouseButtonWheelUp && msg.Action == tea.MouseActionPress:
		m.pinch(p, pinchStep)
	case msg.Button == tea.MouseButtonWheelDown && msg.Action == tea.MouseActionPress:
		m.pinch(p, 1/pinchStep)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		now := m.now()
		if !m.lastClick.IsZero() && now.Sub(m.lastClick) < doubleClickInterval {
			m.lastClick = time.Time{}
			m.touch.DoubleTap(p)
			return
		}
		m.lastClick = now
		m.dragging, m.moved = true, false
		m.touch.Began([]domain.Touch{{ID: 0, Position: p}})
	case msg.Action == tea.MouseActionMotion && m.dragging:
		m.moved = true
		m.touch.Moved([]domain.Touch{{ID: 0, Position: p}})
	case msg.Action == tea.MouseActionRelease && m.dragging:
		m.dragging = false
		m.touch.Ended([]domain.Touch{{ID: 0, Position: p}})
		if !m.moved {
			m.touch.SingleTap()
		}
	}
}

// cancel drops a drag that will never see its release
func (m *mouseTouch) cancel() {
	if m.touch == nil || !m.dragging {
		return
	}
	m.dragging = false
	m.touch.Cancelled([]domain.Touch{{ID: 0}})
}

// pinch plays a two finger gesture around p. A factor above one spreads the
// fingers, which zooms in.
func (m *mouseTouch) pinch(p r2.Point, factor float64) {
	offset := r2.Point{X: pinchSpan}
	first := []domain.Touch{{ID: 1, Position: p.Sub(offset)}, {ID: 2, Position: p.Add(offset)}}
	spread := offset.Mul(factor)
	moved := []domain.Touch{{ID: 1, Position: p.Sub(spread)}, {ID: 2, Position: p.Add(spread)}}

	m.touch.Began(first)
	m.touch.Moved(moved)
	m.touch.Ended(moved)
}
