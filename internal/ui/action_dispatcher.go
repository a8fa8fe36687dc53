package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"rgbdslam/internal/domain"
)

// ActionDispatcher maps key definitions to UI messages.
// This keeps the command palette decoupled from specific message types.
type ActionDispatcher struct {
	affordances domain.Affordances
}

// NewActionDispatcher creates a dispatcher for the given affordances
func NewActionDispatcher(affordances domain.Affordances) *ActionDispatcher {
	return &ActionDispatcher{affordances: affordances}
}

// Dispatch returns the appropriate tea.Msg for the given key definition.
// Returns nil if the action cannot be dispatched in the current state.
func (d *ActionDispatcher) Dispatch(def KeyDefinition) tea.Msg {
	if def.Msg == nil || !def.Enabled(d.affordances) {
		return nil
	}
	return def.Msg
}
