package services

import (
	"fmt"
	"sync"

	"rgbdslam/internal/domain"
	"rgbdslam/internal/logging"
	"rgbdslam/internal/ports"
)

var (
	_ ports.EngineObserver   = (*ObserverBridge)(nil)
	_ ports.TrackingListener = (*trackingMonitor)(nil)
)

// Messages reported by the engine when a database carries optimized content
var optimizedContentMessages = map[string]domain.ViewMode{
	"Loading optimized cloud...done!":        domain.ViewCloud,
	"Loading optimized mesh...done!":         domain.ViewMesh,
	"Loading optimized texture mesh...done!": domain.ViewTexturedMesh,
}

// ObserverBridge receives engine callbacks on engine threads and replays
// them on the main thread
type ObserverBridge struct {
	session *CaptureSession
}

// ProgressUpdated forwards progress to the pending job
func (b *ObserverBridge) ProgressUpdated(count, max int) {
	b.session.main.Post(func() { b.session.jobs.Progress(count, max) })
}

// InitEventReceived handles initialization messages of a loading database
func (b *ObserverBridge) InitEventReceived(status int, message string) {
	b.session.main.Post(func() { b.handleInitEvent(status, message) })
}

// StatsUpdated handles the statistics of a map update
func (b *ObserverBridge) StatsUpdated(stats domain.Stats) {
	b.session.main.Post(func() { b.handleStats(stats) })
}

func (b *ObserverBridge) handleInitEvent(status int, message string) {
	s := b.session
	logging.Logger.Debug("Engine init event", "status", status, "message", message)

	mode, ok := optimizedContentMessages[message]
	if !ok || s.state != domain.StateProcessing {
		return
	}

	s.setViewMode(mode)
	s.setCamera(domain.CameraTop)
	s.jobs.DetachProgress()
	s.requestTransition(domain.StateVisualizingWhileLoading)
	s.notify("Optimized mesh detected in the database, it is shown while the database is loading...")
}

func (b *ObserverBridge) handleStats(stats domain.Stats) {
	s := b.session
	if s.closing {
		return
	}

	s.lastStats = stats
	if stats.LoopClosureID > 0 {
		s.totalLoopClosures++
	}

	s.mapNodes = stats.Nodes
	s.publish()

	if s.state != domain.StateMapping && s.state != domain.StateVisualizingWithCamera {
		return
	}
	settings := s.settings.Settings()
	if msg := statsMessage(stats, s.state, settings.GetMinInliers(), settings.GetMaxOptimizationError()); msg != "" {
		s.toast(msg)
	}
}

// statsMessage returns the loop closure or landmark message for stats
func statsMessage(stats domain.Stats, state domain.CaptureState, minInliers int, maxOptimizationError float64) string {
	switch {
	case stats.LoopClosureID > 0:
		if state == domain.StateVisualizingWithCamera {
			return "Localized!"
		}
		return "Loop closure detected!"
	case stats.Rejected > 0:
		if stats.Inliers >= minInliers {
			if stats.OptimizationMaxError > 0 {
				return fmt.Sprintf("Loop closure rejected, too high graph optimization error (%.3fm: ratio=%.3f < factor=%.1fx).",
					stats.OptimizationMaxError, stats.OptimizationMaxErrorRatio, maxOptimizationError)
			}
			return "Loop closure rejected, graph optimization failed! You may try a different Graph Optimizer (see Mapping options)."
		}
		return fmt.Sprintf("Loop closure rejected, not enough inliers (%d/%d < %d).",
			stats.Inliers, stats.Matches, minInliers)
	case stats.LandmarkDetected > 0:
		return fmt.Sprintf("Landmark %d detected!", stats.LandmarkDetected)
	default:
		return ""
	}
}

// trackingMonitor forwards AR frames to the engine and tells the user when
// tracking degrades
type trackingMonitor struct {
	last    string
	mu      sync.Mutex
	session *CaptureSession
}

const minLightEstimate = 100

func (m *trackingMonitor) FrameUpdated(frame domain.Frame) {
	accepted, message := assessFrame(frame)
	if accepted {
		m.session.engine.PostOdometry(frame)
	} else {
		m.session.engine.NotifyLost()
	}

	m.mu.Lock()
	changed := message != m.last
	m.last = message
	m.mu.Unlock()

	if changed && message != "" {
		m.session.main.Post(func() { m.session.toast(message) })
	}
}

func (m *trackingMonitor) SessionFailed(err error) {
	logging.Logger.Error("AR session failed", "error", err)
	m.session.main.Post(func() { m.session.sessionFailed(err) })
}

// assessFrame decides whether a frame can be used for odometry and what to
// tell the user about it
func assessFrame(frame domain.Frame) (bool, string) {
	accepted := true
	message := ""

	switch frame.Tracking {
	case domain.TrackingNotAvailable:
		accepted, message = false, "Tracking not available"
	case domain.TrackingExcessiveMotion:
		message = "Please Slow Your Movement"
	case domain.TrackingInsufficientFeatures:
		message = "Avoid Featureless Surfaces"
	case domain.TrackingInitializing:
		accepted, message = false, "Initializing"
	case domain.TrackingRelocalizing:
		accepted, message = false, "Relocalizing"
	}

	if message == "" && frame.LightEstimate > 0 && frame.LightEstimate < minLightEstimate {
		message = "Camera Is Occluded Or Lighting Is Too Dark"
	}
	return accepted, message
}
