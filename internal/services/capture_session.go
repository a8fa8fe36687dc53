package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"go.uber.org/multierr"

	"rgbdslam/internal/domain"
	"rgbdslam/internal/logging"
	"rgbdslam/internal/ports"
)

const toastDuration = 3 * time.Second

// CaptureSessionDeps are the collaborators of a CaptureSession
type CaptureSessionDeps struct {
	AR             ports.ARSession
	Archiver       ports.Archiver
	Clock          clock.Clock
	Engine         ports.MappingEngine
	Library        ports.ScanLibrary
	Main           ports.MainThread
	Permission     ports.CameraPermission
	Presenter      ports.Presenter
	RenderInterval time.Duration
	Settings       ports.SettingsSource
	Workspace      ports.Workspace
}

type promptHandler func(choice int, text string)

// CaptureSession owns the capture state machine and everything derived from
// it. Its exported methods may be called from any goroutine; the work is
// posted to the main thread, which is the only one touching session state.
type CaptureSession struct {
	ar         ports.ARSession
	archiver   ports.Archiver
	clock      clock.Clock
	engine     ports.MappingEngine
	library    ports.ScanLibrary
	main       ports.MainThread
	permission ports.CameraPermission
	presenter  ports.Presenter
	settings   ports.SettingsSource
	workspace  ports.Workspace

	bridge   *ObserverBridge
	hud      *HUDTimer
	jobs     *JobCoordinator
	machine  *fsm.FSM
	render   *RenderLoop
	touch    *TouchRouter
	tracking *trackingMonitor

	// Main thread state
	affordances         domain.Affordances
	cameraType          domain.CameraType
	closing             bool
	lastStats           domain.Stats
	listeners           []ports.SnapshotListener
	mapNodes            int
	menuOpen            bool
	openedDatabasePath  string
	prompts             map[string]promptHandler
	scratchOwned        bool
	state               domain.CaptureState
	stoppedInBackground bool
	toastUntil          time.Time
	totalLoopClosures   int
	viewMode            domain.ViewMode

	closeErr  error
	closeOnce sync.Once
	snapMu    sync.RWMutex
	snapshot  domain.Snapshot
}

// NewCaptureSession wires a session in the Welcome state. Call Start to
// apply settings and publish the first snapshot.
func NewCaptureSession(deps CaptureSessionDeps) *CaptureSession {
	clk := deps.Clock
	if clk == nil {
		clk = clock.New()
	}

	s := &CaptureSession{
		ar:         deps.AR,
		archiver:   deps.Archiver,
		clock:      clk,
		engine:     deps.Engine,
		library:    deps.Library,
		main:       deps.Main,
		permission: deps.Permission,
		presenter:  deps.Presenter,
		settings:   deps.Settings,
		workspace:  deps.Workspace,
		cameraType: domain.CameraFirstPerson,
		prompts:    make(map[string]promptHandler),
		state:      domain.StateWelcome,
		viewMode:   domain.DefaultViewMode,
	}

	s.machine = newCaptureMachine(s.enterState)
	s.jobs = NewJobCoordinator(s.main, s.engine, s.presenter, clk)
	s.hud = NewHUDTimer(clk, s.main, s.canHideHUD, func(bool) { s.refresh() })
	s.render = NewRenderLoop(clk, s.engine, deps.RenderInterval, s.onRenderResult)
	s.touch = NewTouchRouter(clk, s.engine, s.render, s.ToggleHUD)
	s.bridge = &ObserverBridge{session: s}
	s.tracking = &trackingMonitor{session: s}

	s.engine.SetObserver(s.bridge)
	s.ar.SetListener(s.tracking)

	s.affordances = domain.DeriveAffordances(s.state, s.mapNodes, true)
	s.snapshot = s.buildSnapshot()
	return s
}

func newCaptureMachine(onEnter func(from, to domain.CaptureState)) *fsm.FSM {
	sources := make([]string, 0, len(domain.CaptureStates))
	for _, st := range domain.CaptureStates {
		sources = append(sources, st.String())
	}

	events := make(fsm.Events, 0, len(domain.CaptureStates))
	for _, st := range domain.CaptureStates {
		events = append(events, fsm.EventDesc{Name: transitionEvent(st), Src: sources, Dst: st.String()})
	}

	return fsm.NewFSM(
		domain.StateWelcome.String(),
		events,
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				from, _ := domain.ParseCaptureState(e.Src)
				to, _ := domain.ParseCaptureState(e.Dst)
				onEnter(from, to)
			},
		},
	)
}

func transitionEvent(st domain.CaptureState) string {
	return "to_" + st.String()
}

// Start applies the settings and publishes the initial snapshot
func (s *CaptureSession) Start() {
	s.main.Post(func() {
		s.applySettings()
		s.setViewMode(s.viewMode)
		s.resetHUD(true)
	})
}

// Touch returns the router fed by the viewport
func (s *CaptureSession) Touch() *TouchRouter {
	return s.touch
}

// Snapshot returns the last published state. Safe from any goroutine.
func (s *CaptureSession) Snapshot() domain.Snapshot {
	s.snapMu.RLock()
	defer s.snapMu.RUnlock()
	return s.snapshot
}

// AddListener registers a listener for every published snapshot
func (s *CaptureSession) AddListener(listener ports.SnapshotListener) {
	s.main.Post(func() {
		s.listeners = append(s.listeners, listener)
		listener.SessionChanged(s.Snapshot())
	})
}

// RequestTransition moves the state machine to state
func (s *CaptureSession) RequestTransition(state domain.CaptureState) {
	s.main.Post(func() { s.requestTransition(state) })
}

// NewScan starts a new map from scratch
func (s *CaptureSession) NewScan() {
	s.main.Post(s.newScan)
}

// Record starts feeding frames to the map
func (s *CaptureSession) Record() {
	s.main.Post(s.record)
}

// StopMapping stops the camera. Unless ignoreSaving, the user is asked to
// optimize the new map.
func (s *CaptureSession) StopMapping(ignoreSaving bool) {
	s.main.Post(func() { s.stopMapping(ignoreSaving) })
}

// ResumeScan appends to the current map
func (s *CaptureSession) ResumeScan() {
	s.main.Post(s.resumeScan)
}

// StartLocalization localizes the camera against the visualized map
func (s *CaptureSession) StartLocalization() {
	s.main.Post(s.startLocalization)
}

// CloseVisualization leaves the optimized map view
func (s *CaptureSession) CloseVisualization() {
	s.main.Post(func() {
		s.closeVisualization()
		s.engine.PostExportation(false)
	})
}

// OpenDatabase loads a saved scan
func (s *CaptureSession) OpenDatabase(path string) {
	s.main.Post(func() { s.openDatabase(path) })
}

// Save asks for a name and saves the current map
func (s *CaptureSession) Save() {
	s.main.Post(s.askSave)
}

// SaveAs saves the current map under name
func (s *CaptureSession) SaveAs(name string) {
	s.main.Post(func() { s.saveDatabase(name, false) })
}

// Export assembles the map with opts and shows the result
func (s *CaptureSession) Export(opts domain.ExportOptions) {
	s.main.Post(func() { s.export(opts) })
}

// Optimize post-processes the map with approach
func (s *CaptureSession) Optimize(approach domain.OptimizationApproach) {
	s.main.Post(func() { s.optimize(approach, false) })
}

// WriteExportedMesh writes the visualized mesh and shares it as an archive
func (s *CaptureSession) WriteExportedMesh(name string) {
	s.main.Post(func() { s.writeExportedMesh(name) })
}

// CancelJob cancels the pending background job
func (s *CaptureSession) CancelJob() {
	s.main.Post(func() {
		if err := s.jobs.Cancel(); err != nil {
			logging.Logger.Debug("Nothing to cancel", "error", err)
		}
	})
}

// Answer resolves an open prompt. choice is the index in Prompt.Choices,
// -1 for a dismissed prompt. text is the input of input prompts.
func (s *CaptureSession) Answer(id string, choice int, text string) {
	s.main.Post(func() {
		if err := s.answer(id, choice, text); err != nil {
			logging.Logger.Warn("Ignoring answer", "prompt", id, "error", err)
		}
	})
}

// ToggleHUD shows a hidden HUD or hides a visible one
func (s *CaptureSession) ToggleHUD() {
	s.main.Post(func() { s.resetHUD(!s.hud.Visible()) })
}

// ResetHUD shows the HUD and restarts its hide timer
func (s *CaptureSession) ResetHUD() {
	s.main.Post(func() { s.resetHUD(true) })
}

// SetMenuOpen records whether a menu is open; an open menu keeps the HUD up
func (s *CaptureSession) SetMenuOpen(open bool) {
	s.main.Post(func() {
		s.menuOpen = open
		if !open {
			s.resetHUD(true)
			return
		}
		s.refresh()
	})
}

// ReloadSettings re-reads the settings and pushes them to the engine
func (s *CaptureSession) ReloadSettings() {
	s.main.Post(s.applySettings)
}

// AppMovedToBackground stops the camera without asking to save
func (s *CaptureSession) AppMovedToBackground() {
	s.main.Post(func() {
		switch s.state {
		case domain.StateCameraPreview, domain.StateMapping, domain.StateVisualizingWithCamera:
			logging.Logger.Info("Stopping camera, app moved to background", "state", s.state)
			s.stopMapping(true)
			s.stoppedInBackground = s.mapNodes > 0
		}
	})
}

// AppMovedToForeground reloads settings and offers to save a map that was
// interrupted in the background
func (s *CaptureSession) AppMovedToForeground() {
	s.main.Post(func() {
		s.applySettings()
		if !s.stoppedInBackground {
			return
		}
		s.stoppedInBackground = false
		if s.mapNodes == 0 || s.openedDatabasePath != "" {
			return
		}
		s.ask("Mapping Stopped!",
			"This app was pushed to background while mapping. Do you want to save the map now?",
			[]string{"Ignore", "Yes"},
			func(choice int, _ string) {
				if choice == 1 {
					s.askSave()
				}
			})
	})
}

// Close tears the session down: the camera stops, the pending job is
// aborted and awaited, rendering stops and the engine is released. The main
// thread must still be running.
func (s *CaptureSession) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		s.closeErr = s.teardown(ctx)
	})
	return s.closeErr
}

func (s *CaptureSession) requestTransition(to domain.CaptureState) {
	if to == s.state {
		s.refresh()
		return
	}
	if err := s.machine.Event(context.Background(), transitionEvent(to)); err != nil {
		var noTransition fsm.NoTransitionError
		if !errors.As(err, &noTransition) {
			logging.Logger.Error("Capture state transition failed", "from", s.state, "to", to, "error", err)
		}
	}
}

func (s *CaptureSession) enterState(from, to domain.CaptureState) {
	s.state = to
	logging.Logger.Info("Capture state changed", "from", from, "to", to)
	s.resetHUD(true)
}

func (s *CaptureSession) resetHUD(show bool) {
	if show {
		s.menuOpen = false
	}
	s.hud.Reset(show)
}

func (s *CaptureSession) canHideHUD() bool {
	if s.state == domain.StateWelcome || s.state == domain.StateCameraPreview {
		return false
	}
	return !s.modalOpen() && !s.menuOpen
}

func (s *CaptureSession) modalOpen() bool {
	return len(s.prompts) > 0 || s.jobs.Pending() != nil
}

// refresh publishes a snapshot and lets the render loop follow the state
func (s *CaptureSession) refresh() {
	s.render.SetPaused(domain.DeriveAffordances(s.state, s.mapNodes, false).RenderPaused)
	s.publish()
}

// publish hands out a snapshot. Affordances are derived again every time so a
// node count change never leaves them stale.
func (s *CaptureSession) publish() {
	s.affordances = domain.DeriveAffordances(s.state, s.mapNodes, s.hud.Visible())
	snap := s.buildSnapshot()

	s.snapMu.Lock()
	s.snapshot = snap
	s.snapMu.Unlock()

	for _, l := range s.listeners {
		l.SessionChanged(snap)
	}
}

func (s *CaptureSession) buildSnapshot() domain.Snapshot {
	snap := domain.Snapshot{
		Affordances:        s.affordances,
		CameraType:         s.cameraType,
		HUDVisible:         s.affordances.HUDVisible,
		LastStats:          s.lastStats,
		MapNodes:           s.mapNodes,
		MenuOpen:           s.menuOpen,
		OpenedDatabasePath: s.openedDatabasePath,
		State:              s.state,
		TotalLoopClosures:  s.totalLoopClosures,
		ViewMode:           s.viewMode,
	}
	if h := s.jobs.Pending(); h != nil {
		kind := h.Kind
		snap.PendingJob = &kind
	}
	return snap
}

func (s *CaptureSession) applySettings() {
	settings := s.settings.Settings()
	s.engine.SetParameters(settings.Parameters())
	s.refresh()
}

func (s *CaptureSession) setViewMode(mode domain.ViewMode) {
	s.viewMode = mode
	enabled, textured := mode.MeshRendering()
	s.engine.SetMeshRendering(enabled, textured)
}

func (s *CaptureSession) setCamera(camera domain.CameraType) {
	s.cameraType = camera
	s.engine.SetCamera(camera)
}

// toast shows a transient message unless another one is still visible
func (s *CaptureSession) toast(message string) {
	now := s.clock.Now()
	if now.Before(s.toastUntil) {
		logging.Logger.Debug("Toast dropped", "message", message)
		return
	}
	s.notify(message)
}

// notify always shows message
func (s *CaptureSession) notify(message string) {
	s.toastUntil = s.clock.Now().Add(toastDuration)
	s.presenter.Toast(message)
}

func (s *CaptureSession) ask(title, message string, choices []string, handler func(choice int, text string)) string {
	return s.showPrompt(domain.Prompt{
		Choices: choices,
		Kind:    domain.PromptChoice,
		Message: message,
		Title:   title,
	}, handler)
}

func (s *CaptureSession) askText(title, message, def string, handler func(text string)) string {
	return s.showPrompt(domain.Prompt{
		Choices: []string{"Cancel", "OK"},
		Default: def,
		Kind:    domain.PromptInput,
		Message: message,
		Title:   title,
	}, func(choice int, text string) {
		if choice == 1 {
			handler(text)
		}
	})
}

func (s *CaptureSession) alert(title, message string) string {
	return s.ask(title, message, []string{"OK"}, nil)
}

func (s *CaptureSession) showPrompt(p domain.Prompt, handler promptHandler) string {
	p.ID = uuid.NewString()
	if handler == nil {
		handler = func(int, string) {}
	}
	s.prompts[p.ID] = handler
	s.presenter.ShowPrompt(p)
	s.refresh()
	return p.ID
}

func (s *CaptureSession) answer(id string, choice int, text string) error {
	handler, ok := s.prompts[id]
	if !ok {
		return domain.ErrUnknownPrompt
	}
	delete(s.prompts, id)
	s.presenter.DismissPrompt(id)

	handler(choice, text)
	s.resetHUD(true)
	return nil
}

func (s *CaptureSession) onRenderResult(code domain.RenderCode) {
	s.main.Post(func() {
		switch code {
		case domain.RenderOutOfMemory:
			s.toast("Out of Memory!")
		case domain.RenderError:
			s.toast("Rendering Error!")
		}
	})
}

func (s *CaptureSession) teardown(ctx context.Context) error {
	var errs []error

	err := s.syncMain(ctx, func() {
		s.closing = true
		s.ar.Pause()
		s.engine.SetPausedMapping(true)
		s.engine.StopCamera()
		s.jobs.Shutdown()
		s.hud.Stop()
	})
	errs = append(errs, err)

	// Workers may still post their completion; let them land
	errs = append(errs, s.jobs.Wait(ctx))
	errs = append(errs, s.syncMain(ctx, func() {}))

	errs = append(errs, s.render.Close())
	errs = append(errs, s.engine.Close())

	err = multierr.Combine(errs...)
	if err != nil {
		logging.Logger.Warn("Capture session closed with errors", "error", err)
	} else {
		logging.Logger.Info("Capture session closed")
	}
	return err
}

func (s *CaptureSession) syncMain(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	s.main.Post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
