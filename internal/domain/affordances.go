package domain

// Affordances is the set of UI actions and render flags allowed in a state.
// It is always derived, never stored.
type Affordances struct {
	CameraRunning   bool
	ExportEnabled   bool
	NewScanEnabled  bool
	OptimizeEnabled bool
	RenderPaused    bool
	ResumeEnabled   bool
	SaveEnabled     bool
	SettingsEnabled bool

	// Presentation flags, derived the same way
	CloseVisualizationEnabled bool
	HUDVisible                bool
	LibraryEnabled            bool
	LocalizeEnabled           bool
	RecordEnabled             bool
	StopEnabled               bool
}

// DeriveAffordances computes the affordances for a state, the number of map
// nodes and the HUD visibility. It has no side effects.
func DeriveAffordances(state CaptureState, mapNodes int, hudVisible bool) Affordances {
	var a Affordances

	switch state {
	case StateCameraPreview, StateMapping:
		a.NewScanEnabled = true
	case StateProcessing, StateVisualizingWhileLoading, StateVisualizingWithCamera:
		// everything disabled
	case StateVisualizing:
		a.NewScanEnabled = true
		a.SaveEnabled = mapNodes > 0
		a.ResumeEnabled = mapNodes > 0
		a.ExportEnabled = mapNodes > 0
		a.OptimizeEnabled = mapNodes > 0
		a.SettingsEnabled = true
	default: // Idle, Welcome
		hasMap := state != StateWelcome && mapNodes > 0
		a.NewScanEnabled = true
		a.SaveEnabled = hasMap
		a.ResumeEnabled = hasMap
		a.ExportEnabled = hasMap
		a.OptimizeEnabled = hasMap
		a.SettingsEnabled = true
	}

	a.CameraRunning = state == StateCameraPreview ||
		state == StateMapping ||
		state == StateVisualizingWithCamera
	a.RenderPaused = !a.CameraRunning

	a.HUDVisible = hudVisible
	a.RecordEnabled = state == StateCameraPreview
	a.StopEnabled = a.CameraRunning
	a.CloseVisualizationEnabled = state == StateVisualizing
	a.LibraryEnabled = state == StateWelcome || state == StateIdle || state == StateVisualizing
	a.LocalizeEnabled = state == StateVisualizing && mapNodes > 0

	return a
}
