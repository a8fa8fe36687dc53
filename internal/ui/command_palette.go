package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"rgbdslam/internal/domain"
	"rgbdslam/internal/theme"
)

// maxVisibleItems is the number of palette rows shown at once
const maxVisibleItems = 6

// CommandPalette is a searchable action palette overlay. It only lists the
// actions the current capture state allows.
type CommandPalette struct {
	actions       []KeyDefinition
	allActions    []KeyDefinition
	Completed     bool
	filterInput   textinput.Model
	keys          KeyMap
	lastQuery     string
	Result        CommandPaletteResult
	selectedIndex int
	shortcuts     map[string]string
	state         domain.CaptureState
	width         int
}

// CommandPaletteResult contains the result of the command palette interaction.
type CommandPaletteResult struct {
	Action    *KeyDefinition
	Cancelled bool
}

// NewCommandPalette creates a palette listing the actions allowed by the
// snapshot. keys provides the key bindings for navigation and shortcuts.
func NewCommandPalette(snapshot domain.Snapshot, keys KeyMap) *CommandPalette {
	actions := GetPaletteActions(snapshot.Affordances)

	ti := textinput.New()
	ti.Prompt = "Filter: "
	ti.PromptStyle = theme.FilterPromptStyle
	ti.Cursor.Style = theme.FilterCursorStyle
	ti.Placeholder = "type to filter"
	ti.PlaceholderStyle = theme.DimmedStyle
	ti.Focus()
	ti.CharLimit = 50
	ti.Width = 40

	shortcuts := make(map[string]string)
	for _, group := range keys.FullHelp() {
		for _, b := range group {
			if len(b.Keys()) > 0 {
				shortcuts[b.Help().Desc] = b.Keys()[0]
			}
		}
	}

	return &CommandPalette{
		actions:     actions,
		allActions:  actions,
		filterInput: ti,
		keys:        keys,
		shortcuts:   shortcuts,
		state:       snapshot.State,
	}
}

// Init initializes the command palette.
func (cp *CommandPalette) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (cp *CommandPalette) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cp.width = msg.Width
		return cp, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, cp.keys.Navigation.Back.Binding, cp.keys.Application.ForceQuit.Binding):
			cp.Completed = true
			cp.Result.Cancelled = true
			return cp, nil

		case key.Matches(msg, cp.keys.Navigation.Select.Binding):
			if cp.selectedIndex < len(cp.actions) {
				cp.Completed = true
				cp.Result.Action = &cp.actions[cp.selectedIndex]
			}
			return cp, nil

		case msg.Type == tea.KeyUp:
			cp.selectedIndex = max(cp.selectedIndex-1, 0)
			return cp, nil

		case msg.Type == tea.KeyDown:
			cp.selectedIndex = max(min(cp.selectedIndex+1, len(cp.actions)-1), 0)
			return cp, nil
		}
	}

	var cmd tea.Cmd
	cp.filterInput, cmd = cp.filterInput.Update(msg)
	cp.filterActions()
	return cp, cmd
}

// View renders the command palette as a full-width bottom panel.
func (cp *CommandPalette) View() string {
	header := theme.PaletteTitleStyle.Render("⌘ Command Palette") + " " +
		theme.DimmedStyle.Render("("+cp.state.Label()+")")

	helpWidth := lo.Max(lo.Map(cp.allActions, func(d KeyDefinition, _ int) int { return len(d.Help) }))
	start, end := cp.visibleRange()

	var items []string
	for i := start; i < end; i++ {
		def := cp.actions[i]
		prefix := "  "
		switch {
		case i == cp.selectedIndex:
			prefix = "> "
		case i == start && start > 0:
			prefix = theme.ScrollIndicatorStyle.Render("↑ ")
		case i == end-1 && end < len(cp.actions):
			prefix = theme.ScrollIndicatorStyle.Render("↓ ")
		}
		help := capitalizeFirst(def.Help)
		items = append(items, prefix+
			theme.PaletteItemStyle.Render(help+strings.Repeat(" ", max(helpWidth-len(help), 0)))+
			theme.PaletteShortcutStyle.Render("  "+cp.shortcuts[def.Help]))
	}
	if len(items) == 0 {
		items = append(items, theme.PaletteDescStyle.Render("  No matching actions"))
	}
	for len(items) < maxVisibleItems {
		items = append(items, "")
	}

	width := cp.width
	if width <= 0 {
		width = 80
	}
	inner := header + "\n\n" + cp.filterInput.View() + "\n\n" + strings.Join(items, "\n")
	return theme.PaletteBorderStyle.Width(width - 2).Render(inner)
}

// filterActions filters the action list based on the current input.
func (cp *CommandPalette) filterActions() {
	query := strings.ToLower(cp.filterInput.Value())
	if query == cp.lastQuery {
		return
	}
	cp.lastQuery = query

	cp.actions = lo.Filter(cp.allActions, func(def KeyDefinition, _ int) bool {
		return fuzzyMatch(query, def.Help) || fuzzyMatch(query, def.Name)
	})
	if cp.selectedIndex >= len(cp.actions) {
		cp.selectedIndex = 0
	}
}

// fuzzyMatch checks if all characters in query appear in order in target.
func fuzzyMatch(query, target string) bool {
	rest := []rune(query)
	for _, c := range strings.ToLower(target) {
		if len(rest) > 0 && c == rest[0] {
			rest = rest[1:]
		}
	}
	return len(rest) == 0
}

// visibleRange returns the start and end indices for visible items, keeping
// the selection in view.
func (cp *CommandPalette) visibleRange() (int, int) {
	total := len(cp.actions)
	if total <= maxVisibleItems {
		return 0, total
	}
	start := max(cp.selectedIndex-maxVisibleItems/2, 0)
	end := start + maxVisibleItems
	if end > total {
		end = total
		start = end - maxVisibleItems
	}
	return start, end
}

// capitalizeFirst returns the string with the first letter uppercased.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
