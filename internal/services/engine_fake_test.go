package services

import (
	"os"
	"sync"

	"rgbdslam/internal/domain"
	"rgbdslam/internal/ports"
)

var _ ports.MappingEngine = (*fakeEngine)(nil)

type openCall struct {
	clear    bool
	inMemory bool
	optimize bool
	path     string
}

// fakeEngine is a scripted mapping engine. Blocking operations wait on gate
// when it is set.
type fakeEngine struct {
	mu sync.Mutex

	cancelled     int
	closed        int
	cameraRunning bool
	calls         []string
	camera        domain.CameraType
	exports       []domain.ExportOptions
	gate          chan struct{}
	localization  bool
	meshRendering [2]bool
	observer      ports.EngineObserver
	opens         []openCall
	params        map[string]string
	pausedMapping bool
	postExport    []bool
	saved         []string

	exportOK       bool
	openCode       int
	postProcessing int
	recoverOK      bool
	saveOK         bool
	startCameraOK  bool
	writeOK        bool
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		exportOK:      true,
		pausedMapping: true,
		recoverOK:     true,
		saveOK:        true,
		startCameraOK: true,
		writeOK:       true,
	}
}

func (e *fakeEngine) record(call string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, call)
}

func (e *fakeEngine) wait() {
	e.mu.Lock()
	gate := e.gate
	e.mu.Unlock()
	if gate != nil {
		<-gate
	}
}

func (e *fakeEngine) Open(path string, inMemory, optimize, clear bool) int {
	e.record("Open")
	e.wait()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opens = append(e.opens, openCall{clear: clear, inMemory: inMemory, optimize: optimize, path: path})
	return e.openCode
}

func (e *fakeEngine) Save(path string) bool {
	e.record("Save")
	e.wait()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.saved = append(e.saved, path)
	return e.saveOK
}

func (e *fakeEngine) Recover(from, to string) bool {
	e.record("Recover")
	e.wait()
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.recoverOK {
		return false
	}
	return os.WriteFile(to, []byte("recovered"), 0644) == nil
}

func (e *fakeEngine) Close() error {
	e.record("Close")
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed++
	return nil
}

func (e *fakeEngine) NotifyLost()                     { e.record("NotifyLost") }
func (e *fakeEngine) PostOdometry(frame domain.Frame) { e.record("PostOdometry") }

func (e *fakeEngine) SetLocalizationMode(enabled bool) {
	e.record("SetLocalizationMode")
	e.mu.Lock()
	defer e.mu.Unlock()
	e.localization = enabled
}

func (e *fakeEngine) SetPausedMapping(paused bool) {
	e.record("SetPausedMapping")
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pausedMapping = paused
}

func (e *fakeEngine) StartCamera() bool {
	e.record("StartCamera")
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cameraRunning = e.startCameraOK
	return e.startCameraOK
}

func (e *fakeEngine) StopCamera() {
	e.record("StopCamera")
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cameraRunning = false
}

func (e *fakeEngine) CancelProcessing() {
	e.record("CancelProcessing")
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelled++
	e.postProcessing = domain.PostProcessingCanceled
	e.exportOK = false
	if e.gate != nil {
		close(e.gate)
		e.gate = nil
	}
}

func (e *fakeEngine) ExportMesh(opts domain.ExportOptions) bool {
	e.record("ExportMesh")
	e.wait()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.exports = append(e.exports, opts)
	return e.exportOK
}

func (e *fakeEngine) PostExportation(visualize bool) {
	e.record("PostExportation")
	e.mu.Lock()
	defer e.mu.Unlock()
	e.postExport = append(e.postExport, visualize)
}

func (e *fakeEngine) PostProcessing(approach domain.OptimizationApproach) int {
	e.record("PostProcessing")
	e.wait()
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.postProcessing
}

func (e *fakeEngine) WriteExportedMesh(dir, name string) bool {
	e.record("WriteExportedMesh")
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.writeOK
}

func (e *fakeEngine) OnTouchEvent(count int, kind domain.TouchKind, x0, y0, x1, y1 float64) {}

func (e *fakeEngine) Render() domain.RenderCode { return domain.RenderOK }

func (e *fakeEngine) SetCamera(camera domain.CameraType) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.camera = camera
}

func (e *fakeEngine) SetMeshRendering(enabled, withTexture bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.meshRendering = [2]bool{enabled, withTexture}
}

func (e *fakeEngine) SetParameters(params map[string]string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.params = params
}

func (e *fakeEngine) SetObserver(observer ports.EngineObserver) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observer = observer
}

func (e *fakeEngine) hold() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gate = make(chan struct{})
}

func (e *fakeEngine) release() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gate != nil {
		close(e.gate)
		e.gate = nil
	}
}

func (e *fakeEngine) emitStats(stats domain.Stats) {
	e.mu.Lock()
	observer := e.observer
	e.mu.Unlock()
	observer.StatsUpdated(stats)
}

func (e *fakeEngine) emitInit(message string) {
	e.mu.Lock()
	observer := e.observer
	e.mu.Unlock()
	observer.InitEventReceived(0, message)
}

func (e *fakeEngine) Called(call string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, c := range e.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (e *fakeEngine) CameraRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cameraRunning
}

func (e *fakeEngine) Opens() []openCall {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]openCall(nil), e.opens...)
}

func (e *fakeEngine) MeshRendering() [2]bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.meshRendering
}

// fakeAR is a scripted AR session
type fakeAR struct {
	mu       sync.Mutex
	depth    bool
	listener ports.TrackingListener
	paused   int
	runErr   error
	runs     []ports.ARConfig
}

func (a *fakeAR) DepthSupported() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.depth
}

func (a *fakeAR) Pause() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.paused++
}

func (a *fakeAR) Run(cfg ports.ARConfig) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.runs = append(a.runs, cfg)
	return a.runErr
}

func (a *fakeAR) SetListener(listener ports.TrackingListener) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listener = listener
}

func (a *fakeAR) Pauses() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.paused
}

func (a *fakeAR) Runs() []ports.ARConfig {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]ports.ARConfig(nil), a.runs...)
}

// fakePermission answers camera permission checks
type fakePermission struct {
	mu             sync.Mutex
	grant          bool
	openedSettings int
	status         ports.PermissionStatus
}

func (p *fakePermission) OpenSettings() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.openedSettings++
}

func (p *fakePermission) Request(done func(granted bool)) {
	p.mu.Lock()
	grant := p.grant
	if grant {
		p.status = ports.PermissionAuthorized
	} else {
		p.status = ports.PermissionDenied
	}
	p.mu.Unlock()
	go done(grant)
}

func (p *fakePermission) Status() ports.PermissionStatus {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (e *fakeEngine) Params() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params
}

func (e *fakeEngine) Saved() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.saved...)
}

func (e *fakeEngine) Localization() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.localization
}
