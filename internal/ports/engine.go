package ports

import "rgbdslam/internal/domain"

// DatabaseEngine opens, saves and recovers map databases. Calls block and
// must run on a background worker.
type DatabaseEngine interface {
	// Open loads a database and returns an open status code
	Open(path string, inMemory, optimize, clear bool) int
	Save(path string) bool
	Recover(fromPath, toPath string) bool
	Close() error
}

// CaptureEngine feeds the engine with camera data
type CaptureEngine interface {
	NotifyLost()
	PostOdometry(frame domain.Frame)
	SetLocalizationMode(enabled bool)
	SetPausedMapping(paused bool)
	StartCamera() bool
	StopCamera()
}

// ProcessingEngine runs the long post-processing operations. Every call
// except CancelProcessing and PostExportation must run on a background worker.
type ProcessingEngine interface {
	CancelProcessing()
	ExportMesh(opts domain.ExportOptions) bool
	PostExportation(visualize bool)
	PostProcessing(approach domain.OptimizationApproach) int
	WriteExportedMesh(dir, name string) bool
}

// ViewEngine controls what the render pass draws
type ViewEngine interface {
	OnTouchEvent(count int, kind domain.TouchKind, x0, y0, x1, y1 float64)
	Render() domain.RenderCode
	SetCamera(camera domain.CameraType)
	SetMeshRendering(enabled, withTexture bool)
}

// ParameterSink receives mapping and rendering parameters as an opaque
// key/value set
type ParameterSink interface {
	SetParameters(params map[string]string)
}

// MappingEngine is the composite facade over the SLAM engine
type MappingEngine interface {
	DatabaseEngine
	CaptureEngine
	ProcessingEngine
	ViewEngine
	ParameterSink
	SetObserver(observer EngineObserver)
}
