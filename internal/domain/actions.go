package domain

// Action represents a user-invocable action on the capture screen.
type Action struct {
	Description string
	Name        string
	// Enabled reports whether the action is legal under the given affordances
	Enabled func(Affordances) bool
}

func always(Affordances) bool { return true }

// Actions is the canonical registry of capture actions.
// Sorted alphabetically by Name.
var Actions = []Action{
	{Name: "append", Description: "Append a new scan to the current map", Enabled: func(a Affordances) bool { return a.ResumeEnabled }},
	{Name: "cancel", Description: "Cancel the running job", Enabled: always},
	{Name: "close", Description: "Close the visualization", Enabled: func(a Affordances) bool { return a.CloseVisualizationEnabled }},
	{Name: "export", Description: "Export the map as a point cloud or mesh", Enabled: func(a Affordances) bool { return a.ExportEnabled }},
	{Name: "help", Description: "Show keyboard shortcuts", Enabled: always},
	{Name: "hud", Description: "Toggle the HUD", Enabled: always},
	{Name: "localize", Description: "Localize against the loaded map", Enabled: func(a Affordances) bool { return a.LocalizeEnabled }},
	{Name: "new_scan", Description: "Start a new scan", Enabled: func(a Affordances) bool { return a.NewScanEnabled }},
	{Name: "open", Description: "Open a saved scan", Enabled: func(a Affordances) bool { return a.LibraryEnabled }},
	{Name: "optimize", Description: "Optimize the map", Enabled: func(a Affordances) bool { return a.OptimizeEnabled }},
	{Name: "quit", Description: "Exit", Enabled: always},
	{Name: "record", Description: "Start mapping", Enabled: func(a Affordances) bool { return a.RecordEnabled }},
	{Name: "save", Description: "Save the map to the library", Enabled: func(a Affordances) bool { return a.SaveEnabled }},
	{Name: "share", Description: "Write the visualized mesh and share it", Enabled: func(a Affordances) bool { return a.CloseVisualizationEnabled }},
	{Name: "stop", Description: "Stop the camera", Enabled: func(a Affordances) bool { return a.StopEnabled }},
}

// GetActions returns all available actions.
func GetActions() []Action {
	return Actions
}

// GetActionByName returns an action by its name, or nil if not found.
func GetActionByName(name string) *Action {
	for i := range Actions {
		if Actions[i].Name == name {
			return &Actions[i]
		}
	}
	return nil
}

// GetEnabledActions returns the actions legal under the given affordances.
func GetEnabledActions(a Affordances) []Action {
	var filtered []Action
	for _, action := range Actions {
		if action.Enabled(a) {
			filtered = append(filtered, action)
		}
	}
	return filtered
}
