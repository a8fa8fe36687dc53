package ui

import (
	"sort"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"rgbdslam/internal/domain"
)

// KeyDefinition defines the metadata for a configurable key binding.
// All key bindings are defined here as the single source of truth.
type KeyDefinition struct {
	// Action is the domain action gating the key, empty for keys that are
	// always available
	Action          string
	Defaults        []string
	Help            string
	IsPaletteAction bool    // If true, this key appears in command palette
	Msg             tea.Msg // Prototype message for dispatch (nil if not dispatchable)
	Name            string
	TipFormat       string
}

// AllKeyDefinitions contains all configurable key bindings.
// This is the single source of truth for key names, defaults, help text, and tips.
// If IsPaletteAction is true, the key appears in the command palette.
// If Msg is set, the action can be dispatched via the command palette.
var AllKeyDefinitions = []KeyDefinition{
	// Application keys
	{Name: "cancel", Action: "cancel", Defaults: []string{"x"}, Help: "cancel running job", Msg: CancelJobMsg{}, TipFormat: "press %s to cancel a long operation"},
	{Name: "command_palette", Defaults: []string{"P"}, Help: "command palette", TipFormat: "press %s to open the command palette"},
	{Name: "force_quit", Defaults: []string{"ctrl+c"}, Help: "force quit"},
	{Name: "help", Action: "help", Defaults: []string{"?"}, Help: "show keyboard shortcuts", IsPaletteAction: true, Msg: ShowHelpMsg{}, TipFormat: "press %s to see all shortcuts"},
	{Name: "hud", Action: "hud", Defaults: []string{"h"}, Help: "toggle HUD", IsPaletteAction: true, Msg: ToggleHUDMsg{}, TipFormat: "press %s or click the view to show the HUD"},
	{Name: "quit", Action: "quit", Defaults: []string{"q"}, Help: "exit application", IsPaletteAction: true, Msg: QuitMsg{}},

	// Navigation keys
	{Name: "back", Defaults: []string{"esc"}, Help: "close dialog"},
	{Name: "down", Defaults: []string{"down", "j"}, Help: "select next item"},
	{Name: "select", Defaults: []string{"enter"}, Help: "confirm selection"},
	{Name: "up", Defaults: []string{"up", "k"}, Help: "select previous item"},

	// Capture keys
	{Name: "append", Action: "append", Defaults: []string{"a"}, Help: "append scan to map", IsPaletteAction: true, Msg: AppendMsg{}, TipFormat: "press %s to continue mapping on top of the loaded map"},
	{Name: "close", Action: "close", Defaults: []string{"c"}, Help: "close visualization", IsPaletteAction: true, Msg: CloseVisualizationMsg{}},
	{Name: "localize", Action: "localize", Defaults: []string{"l"}, Help: "localize in map", IsPaletteAction: true, Msg: LocalizeMsg{}, TipFormat: "press %s to relocalize the camera in an optimized map"},
	{Name: "new_scan", Action: "new_scan", Defaults: []string{"n"}, Help: "new scan", IsPaletteAction: true, Msg: NewScanMsg{}, TipFormat: "press %s to start a new scan"},
	{Name: "record", Action: "record", Defaults: []string{"r"}, Help: "start recording", IsPaletteAction: true, Msg: RecordMsg{}},
	{Name: "stop", Action: "stop", Defaults: []string{"s"}, Help: "stop camera", IsPaletteAction: true, Msg: StopMsg{}},

	// Library keys
	{Name: "export", Action: "export", Defaults: []string{"e"}, Help: "export cloud or mesh", IsPaletteAction: true, Msg: ExportMsg{}, TipFormat: "press %s to assemble a point cloud or a mesh"},
	{Name: "open", Action: "open", Defaults: []string{"o"}, Help: "open saved scan", IsPaletteAction: true, Msg: OpenScanMsg{}, TipFormat: "press %s to load a scan from the library"},
	{Name: "optimize", Action: "optimize", Defaults: []string{"p"}, Help: "optimize map", IsPaletteAction: true, Msg: OptimizeMsg{}},
	{Name: "save", Action: "save", Defaults: []string{"w"}, Help: "save scan", IsPaletteAction: true, Msg: SaveMsg{}},
	{Name: "share", Action: "share", Defaults: []string{"m"}, Help: "write and share mesh", IsPaletteAction: true, Msg: ShareMsg{}, TipFormat: "press %s to write the shown mesh to a zip archive"},
}

var (
	defaultBindingsCache map[string][]string
	defaultBindingsOnce  sync.Once

	keyDefinitionsMap     map[string]KeyDefinition
	keyDefinitionsMapOnce sync.Once

	validKeyNames     []string
	validKeyNamesOnce sync.Once
)

// GetDefaultKeyBindings returns the default key bindings as a map.
// The result is cached after the first call.
func GetDefaultKeyBindings() map[string][]string {
	defaultBindingsOnce.Do(func() {
		defaultBindingsCache = make(map[string][]string, len(AllKeyDefinitions))
		for _, def := range AllKeyDefinitions {
			defaultBindingsCache[def.Name] = def.Defaults
		}
	})
	return defaultBindingsCache
}

// GetKeyDefinition returns the definition for a key by name.
// Returns nil if not found.
func GetKeyDefinition(name string) *KeyDefinition {
	keyDefinitionsMapOnce.Do(func() {
		keyDefinitionsMap = make(map[string]KeyDefinition, len(AllKeyDefinitions))
		for _, def := range AllKeyDefinitions {
			keyDefinitionsMap[def.Name] = def
		}
	})
	if def, ok := keyDefinitionsMap[name]; ok {
		return &def
	}
	return nil
}

// GetValidKeyNames returns all valid key binding names in sorted order.
// The result is cached after the first call.
func GetValidKeyNames() []string {
	validKeyNamesOnce.Do(func() {
		validKeyNames = make([]string, len(AllKeyDefinitions))
		for i, def := range AllKeyDefinitions {
			validKeyNames[i] = def.Name
		}
		sort.Strings(validKeyNames)
	})
	return validKeyNames
}

// IsValidKeyName checks if a name is a valid key binding name.
func IsValidKeyName(name string) bool {
	return GetKeyDefinition(name) != nil
}

// Enabled reports whether the key is usable under the given affordances
func (d KeyDefinition) Enabled(a domain.Affordances) bool {
	if d.Action == "" {
		return true
	}
	action := domain.GetActionByName(d.Action)
	return action != nil && action.Enabled(a)
}

// GetPaletteActions returns the palette key definitions enabled under the
// given affordances.
func GetPaletteActions(a domain.Affordances) []KeyDefinition {
	var actions []KeyDefinition
	for _, def := range AllKeyDefinitions {
		if !def.IsPaletteAction || !def.Enabled(a) {
			continue
		}
		actions = append(actions, def)
	}
	return actions
}
