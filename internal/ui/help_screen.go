package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"rgbdslam/internal/theme"
)

// HelpScreen displays keyboard shortcuts organized by category
type HelpScreen struct {
	Completed   bool
	content     string
	initialized bool
	keys        *KeyMap
	viewport    viewport.Model
}

// renderShortcut renders a single shortcut line with key and description
func renderShortcut(key, description string) string {
	return theme.HelpKeyStyle.Render(key) + theme.HelpDescStyle.Render(description) + "\n"
}

// renderBinding renders a single shortcut line from a key binding
func renderBinding(binding key.Binding) string {
	help := binding.Help()
	return renderShortcut(help.Key, help.Desc)
}

// buildHelpContent builds the help text from the key bindings. Bindings are
// listed even when the current state disables them.
func buildHelpContent(keys *KeyMap) string {
	var b strings.Builder

	groups := []struct {
		title    string
		bindings []KeyWithTip
	}{
		{"Capture", []KeyWithTip{keys.Capture.NewScan, keys.Capture.Record, keys.Capture.Stop, keys.Capture.Append, keys.Capture.Localize, keys.Capture.Close}},
		{"Library", []KeyWithTip{keys.Library.Open, keys.Library.Save, keys.Library.Export, keys.Library.Optimize, keys.Library.Share}},
		{"Application", []KeyWithTip{keys.Application.Cancel, keys.Application.HUD, keys.Application.CommandPalette, keys.Application.Help, keys.Application.Quit, keys.Application.ForceQuit}},
		{"Dialogs", []KeyWithTip{keys.Navigation.Up, keys.Navigation.Down, keys.Navigation.Select, keys.Navigation.Back}},
	}
	for i, group := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.HelpGroupStyle.Render(group.title) + "\n")
		for _, k := range group.bindings {
			b.WriteString(renderBinding(k.Binding))
		}
	}

	b.WriteString("\n" + theme.HelpGroupStyle.Render("Mouse") + "\n")
	b.WriteString(renderShortcut("click", "toggle the HUD"))
	b.WriteString(renderShortcut("drag", "rotate the view"))
	b.WriteString(renderShortcut("wheel", "zoom the view"))
	b.WriteString(renderShortcut("double click", "reset the view"))

	b.WriteString("\n" + theme.HelpGroupStyle.Render("States") + "\n")
	b.WriteString(renderShortcut("Camera", "camera preview, nothing is recorded"))
	b.WriteString(renderShortcut("Mapping", "frames are added to the map"))
	b.WriteString(renderShortcut("Visualizing", "the optimized map is shown"))
	b.WriteString(renderShortcut("Localizing", "the camera is tracked in the optimized map"))

	return b.String()
}

// NewHelpScreen creates a new help screen component
func NewHelpScreen(keys *KeyMap) *HelpScreen {
	return &HelpScreen{
		content:  buildHelpContent(keys),
		keys:     keys,
		viewport: viewport.New(0, 0),
	}
}

// Init implements tea.Model
func (h *HelpScreen) Init() tea.Cmd {
	h.viewport.KeyMap.Up.SetKeys("up", "k")
	h.viewport.KeyMap.Down.SetKeys("down", "j")
	return nil
}

// Update implements tea.Model
func (h *HelpScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Dialog header: 4 lines, Footer: 2 lines
		h.viewport.Width = msg.Width
		h.viewport.Height = max(msg.Height-6, 5)
		h.viewport.SetContent(h.content)
		h.initialized = true
		return h, nil

	case tea.KeyMsg:
		if key.Matches(msg, h.keys.Navigation.Back.Binding, h.keys.Application.Quit.Binding, h.keys.Application.Help.Binding) {
			h.Completed = true
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return h, cmd
}

// View implements tea.Model
func (h *HelpScreen) View() string {
	if !h.initialized {
		return "Loading help..."
	}
	footer := theme.HelpStyle.Render("Press esc, q or ? to close • ↑↓/jk/PgUp/PgDn to scroll")
	return h.viewport.View() + "\n\n" + footer
}
