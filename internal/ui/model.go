package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"rgbdslam/internal/config"
	"rgbdslam/internal/domain"
	"rgbdslam/internal/logging"
	"rgbdslam/internal/ports"
	"rgbdslam/internal/theme"
)

const (
	toastDuration = 3 * time.Second
	tipInterval   = 10 * time.Second
)

type uiState int

const (
	stateCapture uiState = iota
	stateCommandPalette
	stateHelp
	statePrompt
)

// Controller is the capture session as seen by the screen. Every method
// returns immediately; results come back as snapshots and presenter calls.
type Controller interface {
	Answer(id string, choice int, text string)
	AppMovedToBackground()
	AppMovedToForeground()
	CancelJob()
	CloseVisualization()
	Export(opts domain.ExportOptions)
	NewScan()
	OpenDatabase(path string)
	Optimize(approach domain.OptimizationApproach)
	Record()
	ResumeScan()
	Save()
	SetMenuOpen(open bool)
	Snapshot() domain.Snapshot
	StartLocalization()
	StopMapping(ignoreSaving bool)
	ToggleHUD()
	WriteExportedMesh(name string)
}

// ScanSource lists the saved scans offered by the open dialog
type ScanSource interface {
	List(ctx context.Context) ([]domain.Scan, error)
}

// ModelDeps are the collaborators of the capture screen
type ModelDeps struct {
	Controller Controller
	DevMode    bool
	Keys       config.KeyBindingsConfig
	Scans      ScanSource
	Settings   ports.SettingsSource
	Touch      TouchInput
}

// localHandler resolves a prompt owned by the screen itself (menus)
type localHandler func(choice int, text string) tea.Cmd

// Model is the capture screen
type Model struct {
	controller Controller
	devMode    bool
	height     int
	help       help.Model
	keys       KeyMap
	mouse      *mouseTouch
	scans      ScanSource
	settings   ports.SettingsSource
	snapshot   domain.Snapshot
	state      uiState
	tipIndex   int
	touch      TouchInput
	width      int

	commandPalette *CommandPalette
	helpScreen     *Dialog

	// Prompts: the open one, the ones waiting behind it and the handlers of
	// screen-owned menus
	localPrompts map[string]localHandler
	prompt       *Dialog
	promptQueue  []domain.Prompt

	progressBar         progress.Model
	progressCancellable bool
	progressTitle       string
	progressVisible     bool
	spinner             spinner.Model

	toast    string
	toastSeq int
}

// NewModel creates the capture screen for a session
func NewModel(deps ModelDeps) *Model {
	keys := NewKeyMap(deps.Keys)
	snapshot := deps.Controller.Snapshot()
	keys.Apply(snapshot.Affordances)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.SpinnerStyle

	return &Model{
		controller:   deps.Controller,
		devMode:      deps.DevMode,
		help:         help.New(),
		keys:         keys,
		localPrompts: make(map[string]localHandler),
		mouse:        newMouseTouch(deps.Touch),
		progressBar:  progress.New(progress.WithDefaultGradient()),
		scans:        deps.Scans,
		settings:     deps.Settings,
		snapshot:     snapshot,
		spinner:      s,
		state:        stateCapture,
		touch:        deps.Touch,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tipTick())
}

func tipTick() tea.Cmd {
	return tea.Tick(tipInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.progressBar.Width = min(max(msg.Width/2, 20), 60)
		if m.touch != nil {
			m.touch.SetBounds(float64(msg.Width), float64(msg.Height))
		}
	case tea.FocusMsg:
		m.controller.AppMovedToForeground()
		return m, nil
	case tea.BlurMsg:
		m.mouse.cancel()
		m.controller.AppMovedToBackground()
		return m, nil
	case snapshotMsg:
		m.snapshot = msg.snapshot
		m.keys.Apply(msg.snapshot.Affordances)
		return m, nil
	case toastMsg:
		return m, m.showToast(msg.message)
	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil
	case tickMsg:
		m.tipIndex++
		return m, tipTick()
	case progressShowMsg:
		m.progressVisible = true
		m.progressTitle = msg.title
		m.progressCancellable = msg.cancellable
		return m, m.progressBar.SetPercent(0)
	case progressUpdateMsg:
		return m, m.progressBar.SetPercent(msg.fraction)
	case progressDismissMsg:
		m.progressVisible = false
		return m, nil
	case progress.FrameMsg:
		updated, cmd := m.progressBar.Update(msg)
		m.progressBar = updated.(progress.Model)
		return m, cmd
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case promptShowMsg:
		return m, m.enqueuePrompt(msg.prompt)
	case promptDismissMsg:
		return m, m.dismissPrompt(msg.id)
	case shareMsg:
		return m, m.showToast("Mesh written to " + msg.path)
	case scansLoadedMsg:
		return m, m.showOpenMenu(msg.scans, msg.err)
	}

	switch m.state {
	case stateCapture:
		return m.updateCapture(msg)
	case stateCommandPalette:
		return m.updateCommandPalette(msg)
	case stateHelp:
		return m.updateHelp(msg)
	case statePrompt:
		return m.updatePrompt(msg)
	}
	return m, nil
}

func (m *Model) updateCapture(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Application.ForceQuit.Binding) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Application.CommandPalette.Binding) {
			return m.handleAction(ShowPaletteMsg{})
		}
		for _, k := range m.keys.gated() {
			if key.Matches(msg, k.Binding) {
				return m.handleAction(GetKeyDefinition(k.Name).Msg)
			}
		}
		return m, nil
	case tea.MouseMsg:
		m.mouse.handle(msg)
		return m, nil
	}
	return m.handleAction(msg)
}

// handleAction performs an action message coming from a key or the palette
func (m *Model) handleAction(msg tea.Msg) (tea.Model, tea.Cmd) {
	logging.Logger.Debug("Capture screen action", "action", msg, "state", m.snapshot.State)

	switch msg.(type) {
	case QuitMsg:
		return m, tea.Quit
	case ShowHelpMsg:
		return m, m.openHelp()
	case ShowPaletteMsg:
		return m, m.openCommandPalette()
	case NewScanMsg:
		m.controller.NewScan()
	case RecordMsg:
		m.controller.Record()
	case StopMsg:
		m.controller.StopMapping(false)
	case AppendMsg:
		m.controller.ResumeScan()
	case LocalizeMsg:
		m.controller.StartLocalization()
	case CloseVisualizationMsg:
		m.controller.CloseVisualization()
	case SaveMsg:
		m.controller.Save()
	case ToggleHUDMsg:
		m.controller.ToggleHUD()
	case CancelJobMsg:
		if m.snapshot.PendingJob != nil {
			m.controller.CancelJob()
		}
	case OpenScanMsg:
		return m, m.loadScans()
	case ExportMsg:
		return m, m.showExportMenu()
	case OptimizeMsg:
		return m, m.showOptimizeMenu()
	case ShareMsg:
		return m, m.showShareForm()
	}
	return m, nil
}

// showToast displays message until it expires or another toast replaces it
func (m *Model) showToast(message string) tea.Cmd {
	m.toastSeq++
	seq := m.toastSeq
	m.toast = wrapMessage(message, max(m.width-2, 20), maxToastLines)
	return tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

func (m *Model) loadScans() tea.Cmd {
	if m.scans == nil {
		return nil
	}
	scans := m.scans
	return func() tea.Msg {
		list, err := scans.List(context.Background())
		return scansLoadedMsg{err: err, scans: list}
	}
}
