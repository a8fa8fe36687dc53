package ui

import (
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/geo/r2"

	"rgbdslam/internal/domain"
)

// fakeController records the calls made by the screen
type fakeController struct {
	mu       sync.Mutex
	calls    []string
	exports  []domain.ExportOptions
	snapshot domain.Snapshot
}

func newFakeController(state domain.CaptureState, nodes int) *fakeController {
	return &fakeController{snapshot: snapshotFor(state, nodes)}
}

func snapshotFor(state domain.CaptureState, nodes int) domain.Snapshot {
	return domain.Snapshot{
		Affordances: domain.DeriveAffordances(state, nodes, true),
		HUDVisible:  true,
		MapNodes:    nodes,
		State:       state,
		ViewMode:    domain.DefaultViewMode,
	}
}

func (f *fakeController) record(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeController) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeController) Answer(id string, choice int, text string) {
	f.record("Answer(%s,%d,%s)", id, choice, text)
}
func (f *fakeController) AppMovedToBackground() { f.record("AppMovedToBackground") }
func (f *fakeController) AppMovedToForeground() { f.record("AppMovedToForeground") }
func (f *fakeController) CancelJob()            { f.record("CancelJob") }
func (f *fakeController) CloseVisualization()   { f.record("CloseVisualization") }
func (f *fakeController) Export(opts domain.ExportOptions) {
	f.mu.Lock()
	f.exports = append(f.exports, opts)
	f.mu.Unlock()
	f.record("Export(%s)", opts.ViewMode())
}
func (f *fakeController) NewScan()                { f.record("NewScan") }
func (f *fakeController) OpenDatabase(path string) { f.record("OpenDatabase(%s)", path) }
func (f *fakeController) Optimize(approach domain.OptimizationApproach) {
	f.record("Optimize(%s)", approach.Label())
}
func (f *fakeController) Record()               { f.record("Record") }
func (f *fakeController) ResumeScan()           { f.record("ResumeScan") }
func (f *fakeController) Save()                 { f.record("Save") }
func (f *fakeController) SetMenuOpen(open bool) { f.record("SetMenuOpen(%t)", open) }
func (f *fakeController) Snapshot() domain.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot
}
func (f *fakeController) StartLocalization() { f.record("StartLocalization") }
func (f *fakeController) StopMapping(ignoreSaving bool) {
	f.record("StopMapping(%t)", ignoreSaving)
}
func (f *fakeController) ToggleHUD() { f.record("ToggleHUD") }
func (f *fakeController) WriteExportedMesh(name string) {
	f.record("WriteExportedMesh(%s)", name)
}

// fakeTouch records gestures
type fakeTouch struct {
	events []string
}

func (f *fakeTouch) Began(touches []domain.Touch) {
	f.events = append(f.events, fmt.Sprintf("began:%d", len(touches)))
}
func (f *fakeTouch) Cancelled(touches []domain.Touch) {
	f.events = append(f.events, fmt.Sprintf("cancelled:%d", len(touches)))
}
func (f *fakeTouch) DoubleTap(p r2.Point) {
	f.events = append(f.events, fmt.Sprintf("double:%v,%v", p.X, p.Y))
}
func (f *fakeTouch) Ended(touches []domain.Touch) {
	f.events = append(f.events, fmt.Sprintf("ended:%d", len(touches)))
}
func (f *fakeTouch) Moved(touches []domain.Touch) {
	f.events = append(f.events, fmt.Sprintf("moved:%d", len(touches)))
}
func (f *fakeTouch) SetBounds(width, height float64) {
	f.events = append(f.events, fmt.Sprintf("bounds:%vx%v", width, height))
}
func (f *fakeTouch) SingleTap() { f.events = append(f.events, "tap") }

// recordingSender collects messages sent to the program
type recordingSender struct {
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.msgs = append(r.msgs, msg)
}
