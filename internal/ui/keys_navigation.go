package ui

import (
	"rgbdslam/internal/config"
)

// NavigationKeys defines key bindings for moving inside menus and dialogs
type NavigationKeys struct {
	Back   KeyWithTip
	Down   KeyWithTip
	Select KeyWithTip
	Up     KeyWithTip
}

// newNavigationKeys creates navigation key bindings
func newNavigationKeys(defaults map[string][]string, customKeys config.KeyBindingsConfig) NavigationKeys {
	return NavigationKeys{
		Back:   buildBinding("back", defaults, customKeys),
		Down:   buildBinding("down", defaults, customKeys),
		Select: buildBinding("select", defaults, customKeys),
		Up:     buildBinding("up", defaults, customKeys),
	}
}
