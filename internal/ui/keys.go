package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"rgbdslam/internal/config"
	"rgbdslam/internal/domain"
)

// KeyMap contains all keyboard shortcuts organized by context
type KeyMap struct {
	Application ApplicationKeys
	Capture     CaptureKeys
	Library     LibraryKeys
	Navigation  NavigationKeys
}

// NewKeyMap creates a new KeyMap with all key bindings initialized.
// Pass nil for keysConfig to use default bindings.
func NewKeyMap(keysConfig config.KeyBindingsConfig) KeyMap {
	defaults := GetDefaultKeyBindings()
	return KeyMap{
		Application: newApplicationKeys(defaults, keysConfig),
		Capture:     newCaptureKeys(defaults, keysConfig),
		Library:     newLibraryKeys(defaults, keysConfig),
		Navigation:  newNavigationKeys(defaults, keysConfig),
	}
}

// Apply enables exactly the bindings allowed by the affordances
func (k *KeyMap) Apply(a domain.Affordances) {
	for _, binding := range k.gated() {
		binding.applyAffordances(a)
	}
}

func (k *KeyMap) gated() []*KeyWithTip {
	return []*KeyWithTip{
		&k.Application.Cancel,
		&k.Application.HUD,
		&k.Application.Help,
		&k.Application.Quit,
		&k.Capture.Append,
		&k.Capture.Close,
		&k.Capture.Localize,
		&k.Capture.NewScan,
		&k.Capture.Record,
		&k.Capture.Stop,
		&k.Library.Export,
		&k.Library.Open,
		&k.Library.Optimize,
		&k.Library.Save,
		&k.Library.Share,
	}
}

// ShortHelp returns the bindings of the HUD bar. Disabled bindings are
// skipped by the help renderer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Capture.NewScan.Binding,
		k.Capture.Record.Binding,
		k.Capture.Stop.Binding,
		k.Library.Open.Binding,
		k.Library.Save.Binding,
		k.Library.Export.Binding,
		k.Library.Optimize.Binding,
		k.Capture.Append.Binding,
		k.Capture.Localize.Binding,
		k.Capture.Close.Binding,
		k.Library.Share.Binding,
		k.Application.Help.Binding,
		k.Application.Quit.Binding,
	}
}

// FullHelp returns every binding grouped by context
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{
			k.Capture.NewScan.Binding,
			k.Capture.Record.Binding,
			k.Capture.Stop.Binding,
			k.Capture.Append.Binding,
			k.Capture.Localize.Binding,
			k.Capture.Close.Binding,
		},
		{
			k.Library.Open.Binding,
			k.Library.Save.Binding,
			k.Library.Export.Binding,
			k.Library.Optimize.Binding,
			k.Library.Share.Binding,
		},
		{
			k.Application.Cancel.Binding,
			k.Application.HUD.Binding,
			k.Application.CommandPalette.Binding,
			k.Application.Help.Binding,
			k.Application.Quit.Binding,
			k.Application.ForceQuit.Binding,
		},
	}
}
