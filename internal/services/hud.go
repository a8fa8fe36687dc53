package services

import (
	"time"

	"github.com/benbjohnson/clock"

	"rgbdslam/internal/ports"
)

// HUDHideDelay is how long the HUD stays up after the last interaction
const HUDHideDelay = 5 * time.Second

// HUDTimer auto-hides the HUD after a period without interaction. Every
// Reset(true) supersedes the hide scheduled by the previous one, so a burst
// of resets leads to a single effective hide. It is used from the main
// thread only.
type HUDTimer struct {
	canHide    func() bool
	clock      clock.Clock
	delay      time.Duration
	generation uint64
	lastShown  time.Time
	main       ports.MainThread
	onChange   func(visible bool)
	timer      *clock.Timer
	visible    bool
}

// NewHUDTimer creates a visible HUD. canHide is asked before every hide and
// onChange is called whenever the HUD is shown or hidden.
func NewHUDTimer(clk clock.Clock, main ports.MainThread, canHide func() bool, onChange func(visible bool)) *HUDTimer {
	return &HUDTimer{
		canHide:  canHide,
		clock:    clk,
		delay:    HUDHideDelay,
		main:     main,
		onChange: onChange,
		visible:  true,
	}
}

// Visible reports whether the HUD is shown
func (h *HUDTimer) Visible() bool {
	return h.visible
}

// LastShown is when the HUD was last shown
func (h *HUDTimer) LastShown() time.Time {
	return h.lastShown
}

// Reset shows the HUD and schedules a deferred hide, or tries to hide it now
func (h *HUDTimer) Reset(show bool) {
	if !show {
		h.hide()
		return
	}

	h.visible = true
	h.lastShown = h.clock.Now()
	h.generation++
	gen := h.generation

	if h.timer != nil {
		h.timer.Stop()
	}
	h.timer = h.clock.AfterFunc(h.delay, func() {
		h.main.Post(func() { h.deferredHide(gen) })
	})
	h.onChange(true)
}

// Stop cancels the scheduled hide
func (h *HUDTimer) Stop() {
	h.generation++
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}

func (h *HUDTimer) deferredHide(gen uint64) {
	// A newer Reset superseded this one
	if gen != h.generation {
		return
	}
	if h.clock.Since(h.lastShown) < h.delay {
		return
	}
	h.hide()
}

func (h *HUDTimer) hide() {
	if !h.visible || !h.canHide() {
		return
	}
	h.visible = false
	h.onChange(false)
}
