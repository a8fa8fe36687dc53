package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"rgbdslam/internal/domain"
	"rgbdslam/internal/logging"
)

// Ids of the prompts owned by the screen
const (
	exportMenuID   = "menu:export"
	openMenuID     = "menu:open"
	optimizeMenuID = "menu:optimize"
	shareFormID    = "menu:share"
)

// exportChoices are the entries of the export menu, in display order
var exportChoices = []string{
	"Point Cloud",
	"Point Cloud (Max Density)",
	"Mesh",
	"Textured Mesh",
}

func (m *Model) openHelp() tea.Cmd {
	m.helpScreen = NewDialog("Help", NewHelpScreen(&m.keys), m.devMode)
	m.state = stateHelp
	initCmd := m.helpScreen.Init()
	updated, sizeCmd := m.helpScreen.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	m.helpScreen = updated.(*Dialog)
	return tea.Batch(initCmd, sizeCmd)
}

func (m *Model) updateHelp(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.helpScreen.Update(msg)
	m.helpScreen = updated.(*Dialog)

	if content, ok := m.helpScreen.Content().(*HelpScreen); ok && content.Completed {
		m.state = stateCapture
		m.helpScreen = nil
		return m, nil
	}
	return m, cmd
}

func (m *Model) openCommandPalette() tea.Cmd {
	m.commandPalette = NewCommandPalette(m.snapshot, m.keys)
	m.commandPalette.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	m.state = stateCommandPalette
	m.controller.SetMenuOpen(true)
	return m.commandPalette.Init()
}

func (m *Model) updateCommandPalette(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.commandPalette.Update(msg)
	m.commandPalette = updated.(*CommandPalette)
	if !m.commandPalette.Completed {
		return m, cmd
	}

	result := m.commandPalette.Result
	m.state = stateCapture
	m.commandPalette = nil
	m.controller.SetMenuOpen(false)
	if result.Cancelled || result.Action == nil {
		return m, nil
	}

	// The state may have changed while the palette was open
	if actionMsg := NewActionDispatcher(m.snapshot.Affordances).Dispatch(*result.Action); actionMsg != nil {
		return m.handleAction(actionMsg)
	}
	return m, nil
}

// enqueuePrompt shows prompt now or after the ones already queued
func (m *Model) enqueuePrompt(prompt domain.Prompt) tea.Cmd {
	m.promptQueue = append(m.promptQueue, prompt)
	if m.prompt != nil {
		return nil
	}
	return m.nextPrompt()
}

func (m *Model) nextPrompt() tea.Cmd {
	if len(m.promptQueue) == 0 {
		m.prompt = nil
		if m.state == statePrompt {
			m.state = stateCapture
		}
		return nil
	}

	prompt := m.promptQueue[0]
	m.promptQueue = m.promptQueue[1:]

	// The help screen and the palette give way to prompts
	m.helpScreen = nil
	if m.commandPalette != nil {
		m.commandPalette = nil
		m.controller.SetMenuOpen(false)
	}

	m.prompt = NewDialog(prompt.Title, NewPromptForm(prompt), m.devMode)
	m.state = statePrompt
	return m.prompt.Init()
}

// dismissPrompt removes a prompt the session closed on its own
func (m *Model) dismissPrompt(id string) tea.Cmd {
	m.promptQueue = lo.Reject(m.promptQueue, func(p domain.Prompt, _ int) bool { return p.ID == id })
	if m.prompt == nil || m.currentPromptID() != id {
		return nil
	}
	return m.nextPrompt()
}

func (m *Model) currentPromptID() string {
	if m.prompt == nil {
		return ""
	}
	if form, ok := m.prompt.Content().(*PromptForm); ok {
		return form.ID()
	}
	return ""
}

func (m *Model) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.prompt == nil {
		m.state = stateCapture
		return m, nil
	}

	updated, cmd := m.prompt.Update(msg)
	m.prompt = updated.(*Dialog)

	form, ok := m.prompt.Content().(*PromptForm)
	if !ok || !form.Completed {
		return m, cmd
	}
	choice, text := form.Result()
	return m, tea.Batch(m.finishPrompt(form.ID(), choice, text), m.nextPrompt())
}

// finishPrompt routes an answer to the screen menu or to the session
func (m *Model) finishPrompt(id string, choice int, text string) tea.Cmd {
	if handler, ok := m.localPrompts[id]; ok {
		delete(m.localPrompts, id)
		m.controller.SetMenuOpen(false)
		if choice < 0 {
			return nil
		}
		return handler(choice, text)
	}

	m.controller.Answer(id, choice, text)
	return nil
}

// showMenu opens a prompt answered by the screen itself
func (m *Model) showMenu(prompt domain.Prompt, handler localHandler) tea.Cmd {
	m.localPrompts[prompt.ID] = handler
	m.controller.SetMenuOpen(true)
	return m.enqueuePrompt(prompt)
}

func (m *Model) showExportMenu() tea.Cmd {
	textureSize := 0
	if m.settings != nil {
		textureSize = m.settings.Settings().GetTextureSize()
	}

	return m.showMenu(domain.Prompt{
		Choices: exportChoices,
		ID:      exportMenuID,
		Kind:    domain.PromptChoice,
		Message: "Assemble the map for viewing and sharing.",
		Title:   "Export",
	}, func(choice int, _ string) tea.Cmd {
		var opts domain.ExportOptions
		switch choice {
		case 0:
			opts = domain.PointCloudExport(false)
		case 1:
			opts = domain.PointCloudExport(true)
		case 2:
			opts = domain.MeshExport(false, textureSize)
		default:
			opts = domain.MeshExport(true, textureSize)
		}
		m.controller.Export(opts)
		return nil
	})
}

func (m *Model) showOptimizeMenu() tea.Cmd {
	labels := lo.Map(domain.Approaches, func(a domain.OptimizationApproach, _ int) string { return a.Label() })

	return m.showMenu(domain.Prompt{
		// Standard optimization is listed first and offered by default
		Choices: append(labels[1:], labels[0]),
		ID:      optimizeMenuID,
		Kind:    domain.PromptChoice,
		Message: "Post-processing runs on the whole map.",
		Title:   "Optimize",
	}, func(choice int, _ string) tea.Cmd {
		approach := domain.Approaches[(choice+1)%len(domain.Approaches)]
		m.controller.Optimize(approach)
		return nil
	})
}

func (m *Model) showOpenMenu(scans []domain.Scan, err error) tea.Cmd {
	if err != nil {
		logging.Logger.Error("Failed to list scans", "error", err)
		return m.showToast("Failed to list saved scans!")
	}
	if len(scans) == 0 {
		return m.showToast("No saved scans yet.")
	}

	choices := lo.Map(scans, func(s domain.Scan, _ int) string {
		return fmt.Sprintf("%s  (%s, %s)", s.Name, humanize.Bytes(uint64(s.SizeBytes)), humanize.Time(s.UpdatedAt))
	})
	return m.showMenu(domain.Prompt{
		Choices: choices,
		ID:      openMenuID,
		Kind:    domain.PromptChoice,
		Message: "Choose the scan to load.",
		Title:   "Open Scan",
	}, func(choice int, _ string) tea.Cmd {
		if choice < len(scans) {
			m.controller.OpenDatabase(scans[choice].Path)
		}
		return nil
	})
}

func (m *Model) showShareForm() tea.Cmd {
	name := "mesh"
	if m.snapshot.HasOpenedDatabase() {
		name = domain.ScanNameFromPath(m.snapshot.OpenedDatabasePath)
	}

	return m.showMenu(domain.Prompt{
		Choices: []string{"Cancel", "OK"},
		Default: name,
		ID:      shareFormID,
		Kind:    domain.PromptInput,
		Message: "Archive name (*.zip):",
		Title:   "Share Mesh",
	}, func(choice int, text string) tea.Cmd {
		if choice == 1 {
			m.controller.WriteExportedMesh(text)
		}
		return nil
	})
}
