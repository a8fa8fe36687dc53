package ui

import (
	"time"

	"rgbdslam/internal/domain"
)

// Action messages. Each one is something the user asked for on the capture
// screen; Model handles them in updateCapture() after checking that the
// current affordances allow it.

// QuitMsg requests quitting the application
type QuitMsg struct{}

// ShowHelpMsg requests showing the help screen
type ShowHelpMsg struct{}

// ShowPaletteMsg requests showing the command palette
type ShowPaletteMsg struct{}

// NewScanMsg starts a new map
type NewScanMsg struct{}

// RecordMsg starts mapping from the camera preview
type RecordMsg struct{}

// StopMsg stops the camera
type StopMsg struct{}

// AppendMsg appends a new scan to the current map
type AppendMsg struct{}

// LocalizeMsg localizes the camera against the visualized map
type LocalizeMsg struct{}

// CloseVisualizationMsg leaves the optimized map view
type CloseVisualizationMsg struct{}

// OpenScanMsg shows the scan picker
type OpenScanMsg struct{}

// SaveMsg saves the current map
type SaveMsg struct{}

// ExportMsg shows the export menu
type ExportMsg struct{}

// OptimizeMsg shows the optimization menu
type OptimizeMsg struct{}

// ShareMsg asks for a name and writes the visualized mesh
type ShareMsg struct{}

// CancelJobMsg cancels the pending background job
type CancelJobMsg struct{}

// ToggleHUDMsg shows or hides the HUD
type ToggleHUDMsg struct{}

// Presenter messages. They are sent by Presenter from the session's main
// thread and processed in the bubbletea loop.

// snapshotMsg carries a freshly published session snapshot
type snapshotMsg struct {
	snapshot domain.Snapshot
}

// toastMsg shows a transient message
type toastMsg struct {
	message string
}

// toastExpiredMsg hides the toast with the given sequence number
type toastExpiredMsg struct {
	seq int
}

// progressShowMsg opens the progress panel
type progressShowMsg struct {
	cancellable bool
	title       string
}

// progressUpdateMsg moves the progress bar
type progressUpdateMsg struct {
	fraction float64
}

// progressDismissMsg closes the progress panel
type progressDismissMsg struct{}

// promptShowMsg opens a modal prompt
type promptShowMsg struct {
	prompt domain.Prompt
}

// promptDismissMsg closes the prompt with the given id
type promptDismissMsg struct {
	id string
}

// shareMsg reports a file handed over to the share action
type shareMsg struct {
	path string
}

// scansLoadedMsg delivers the scan list for the picker
type scansLoadedMsg struct {
	err   error
	scans []domain.Scan
}

// tickMsg refreshes time based parts of the view
type tickMsg time.Time
