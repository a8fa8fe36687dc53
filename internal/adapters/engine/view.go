package engine

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"rgbdslam/internal/domain"
)

const (
	minDistance     = 0.5
	maxDistance     = 50
	defaultDistance = 5
)

// viewState is the orbit camera driven by touch gestures
type viewState struct {
	anchor   [2]r2.Point
	distance float64
	pan      r2.Point
	pitch    float64
	yaw      float64
}

func newViewState() viewState {
	return viewState{distance: defaultDistance}
}

// OnTouchEvent moves the view camera. Coordinates are normalized to the
// viewport.
func (e *Engine) OnTouchEvent(count int, kind domain.TouchKind, x0, y0, x1, y1 float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p0, p1 := r2.Point{X: x0, Y: y0}, r2.Point{X: x1, Y: y1}
	v := &e.view
	switch {
	case count >= 3 && kind == domain.TouchDown:
		*v = newViewState()
	case count == 1 && kind == domain.TouchDown:
		v.anchor[0] = p0
	case count == 1 && kind == domain.TouchMove:
		delta := p0.Sub(v.anchor[0])
		v.yaw += delta.X * math.Pi
		v.pitch = clamp(v.pitch+delta.Y*math.Pi/2, -math.Pi/2, math.Pi/2)
		v.anchor[0] = p0
	case count == 2 && kind == domain.TouchSecondDown:
		v.anchor = [2]r2.Point{p0, p1}
	case count == 2 && kind == domain.TouchMove:
		before := v.anchor[1].Sub(v.anchor[0]).Norm()
		after := p1.Sub(p0).Norm()
		if before > 0 && after > 0 {
			v.distance = clamp(v.distance*before/after, minDistance, maxDistance)
		}
		centerBefore := v.anchor[0].Add(v.anchor[1]).Mul(0.5)
		centerAfter := p0.Add(p1).Mul(0.5)
		v.pan = v.pan.Add(centerAfter.Sub(centerBefore).Mul(v.distance))
		v.anchor = [2]r2.Point{p0, p1}
	}
}

// Render draws one frame
func (e *Engine) Render() domain.RenderCode {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frames++
	return domain.RenderOK
}

// SetCamera selects the viewpoint
func (e *Engine) SetCamera(camera domain.CameraType) {
	e.mu.Lock()
	e.camera = camera
	e.mu.Unlock()
}

// SetMeshRendering selects between cloud and mesh drawing
func (e *Engine) SetMeshRendering(enabled, withTexture bool) {
	e.mu.Lock()
	e.meshEnabled = enabled
	e.meshTextured = enabled && withTexture
	e.mu.Unlock()
}

// ViewInfo is what the render pass currently shows
type ViewInfo struct {
	Camera      domain.CameraType
	Distance    float64
	Frames      int
	Mesh        bool
	Pitch       float64
	Pose        r3.Vector
	Textured    bool
	Visualizing bool
	Yaw         float64
}

// View returns the state of the render pass
func (e *Engine) View() ViewInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ViewInfo{
		Camera:      e.camera,
		Distance:    e.view.distance,
		Frames:      e.frames,
		Mesh:        e.meshEnabled,
		Pitch:       e.view.pitch,
		Pose:        e.pose,
		Textured:    e.meshTextured,
		Visualizing: e.visualizing,
		Yaw:         e.view.yaw,
	}
}

func clamp(v, low, high float64) float64 {
	return math.Max(low, math.Min(high, v))
}
