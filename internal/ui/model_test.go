package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rgbdslam/internal/config"
	"rgbdslam/internal/domain"
)

func newTestModel(t *testing.T, state domain.CaptureState, nodes int) (*Model, *fakeController) {
	t.Helper()
	controller := newFakeController(state, nodes)
	m := NewModel(ModelDeps{
		Controller: controller,
		Settings:   config.NewStaticStore(config.Settings{}),
		Touch:      &fakeTouch{},
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, controller
}

func TestModel_KeysFollowAffordances(t *testing.T) {
	tests := []struct {
		name  string
		state domain.CaptureState
		nodes int
		key   string
		want  []string
	}{
		{"record from preview", domain.StateCameraPreview, 0, "r", []string{"Record"}},
		{"record needs preview", domain.StateWelcome, 0, "r", nil},
		{"stop mapping asks to save", domain.StateMapping, 4, "s", []string{"StopMapping(false)"}},
		{"save idle map", domain.StateIdle, 4, "w", []string{"Save"}},
		{"save needs nodes", domain.StateIdle, 0, "w", nil},
		{"new scan from welcome", domain.StateWelcome, 0, "n", []string{"NewScan"}},
		{"append to map", domain.StateIdle, 4, "a", []string{"ResumeScan"}},
		{"localize", domain.StateVisualizing, 4, "l", []string{"StartLocalization"}},
		{"close visualization", domain.StateVisualizing, 4, "c", []string{"CloseVisualization"}},
		{"nothing while processing", domain.StateProcessing, 4, "n", nil},
		{"toggle hud", domain.StateMapping, 4, "h", []string{"ToggleHUD"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, controller := newTestModel(t, tt.state, tt.nodes)

			m.Update(runeKey(tt.key))

			assert.Equal(t, tt.want, controller.Calls())
		})
	}
}

func TestModel_SnapshotReappliesKeys(t *testing.T) {
	m, controller := newTestModel(t, domain.StateWelcome, 0)

	m.Update(runeKey("r"))
	assert.Empty(t, controller.Calls())

	m.Update(snapshotMsg{snapshot: snapshotFor(domain.StateCameraPreview, 0)})
	m.Update(runeKey("r"))
	assert.Equal(t, []string{"Record"}, controller.Calls())
}

func TestModel_CancelNeedsPendingJob(t *testing.T) {
	m, controller := newTestModel(t, domain.StateProcessing, 4)

	m.Update(runeKey("x"))
	assert.Empty(t, controller.Calls())

	snap := snapshotFor(domain.StateProcessing, 4)
	job := domain.JobExport
	snap.PendingJob = &job
	m.Update(snapshotMsg{snapshot: snap})
	m.Update(runeKey("x"))
	assert.Equal(t, []string{"CancelJob"}, controller.Calls())
}

func TestModel_SessionPrompts(t *testing.T) {
	m, controller := newTestModel(t, domain.StateIdle, 4)

	first := domain.Prompt{ID: "p1", Title: "Recovery", Choices: []string{"Ignore", "Cancel", "Yes"}}
	second := domain.Prompt{ID: "p2", Title: "Error", Choices: []string{"OK"}}
	m.Update(promptShowMsg{prompt: first})
	m.Update(promptShowMsg{prompt: second})
	require.Equal(t, statePrompt, m.state)
	assert.Equal(t, "p1", m.currentPromptID())

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, []string{"Answer(p1,-1,)"}, controller.Calls())
	assert.Equal(t, "p2", m.currentPromptID())

	// The session closing its prompt closes the dialog
	m.Update(promptDismissMsg{id: "p2"})
	assert.Equal(t, stateCapture, m.state)
	assert.Nil(t, m.prompt)
}

func TestModel_PromptAnswerGoesToSession(t *testing.T) {
	m, controller := newTestModel(t, domain.StateIdle, 4)
	m.Update(promptShowMsg{prompt: domain.Prompt{ID: "p1", Kind: domain.PromptInput, Choices: []string{"Cancel", "OK"}}})

	m.finishPrompt("p1", 1, "kitchen")

	assert.Equal(t, []string{"Answer(p1,1,kitchen)"}, controller.Calls())
}

func TestModel_ExportMenu(t *testing.T) {
	tests := []struct {
		choice int
		want   domain.ExportOptions
	}{
		{0, domain.PointCloudExport(false)},
		{1, domain.PointCloudExport(true)},
		{2, domain.MeshExport(false, config.Settings{}.GetTextureSize())},
		{3, domain.MeshExport(true, config.Settings{}.GetTextureSize())},
	}

	for _, tt := range tests {
		t.Run(exportChoices[tt.choice], func(t *testing.T) {
			m, controller := newTestModel(t, domain.StateIdle, 4)

			m.Update(runeKey("e"))
			require.Equal(t, statePrompt, m.state)
			assert.Equal(t, exportMenuID, m.currentPromptID())

			m.finishPrompt(exportMenuID, tt.choice, "")

			require.Len(t, controller.exports, 1)
			assert.Equal(t, tt.want, controller.exports[0])
			assert.Equal(t, "SetMenuOpen(true)", controller.Calls()[0])
			assert.Equal(t, "SetMenuOpen(false)", controller.Calls()[1])
		})
	}
}

func TestModel_DismissedMenuDoesNothing(t *testing.T) {
	m, controller := newTestModel(t, domain.StateIdle, 4)

	m.Update(runeKey("p"))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, []string{"SetMenuOpen(true)", "SetMenuOpen(false)"}, controller.Calls())
	assert.Equal(t, stateCapture, m.state)
}

func TestModel_OptimizeMenuOffersStandardLast(t *testing.T) {
	tests := []struct {
		choice int
		want   string
	}{
		{0, "Optimize(Global Graph Optimization)"},
		{2, "Optimize(Detect More Loop Closures)"},
		{len(domain.Approaches) - 1, "Optimize(Standard Optimization)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			m, controller := newTestModel(t, domain.StateIdle, 4)
			m.Update(runeKey("p"))

			m.finishPrompt(optimizeMenuID, tt.choice, "")

			assert.Contains(t, controller.Calls(), tt.want)
		})
	}
}

func TestModel_OpenMenu(t *testing.T) {
	scans := []domain.Scan{
		{Name: "kitchen", Path: "/scans/kitchen.db", SizeBytes: 2048, UpdatedAt: time.Now()},
		{Name: "garage", Path: "/scans/garage.db", SizeBytes: 4096, UpdatedAt: time.Now()},
	}

	t.Run("lists scans", func(t *testing.T) {
		m, controller := newTestModel(t, domain.StateWelcome, 0)
		m.Update(scansLoadedMsg{scans: scans})
		require.Equal(t, openMenuID, m.currentPromptID())

		m.finishPrompt(openMenuID, 1, "")

		assert.Contains(t, controller.Calls(), "OpenDatabase(/scans/garage.db)")
	})

	t.Run("empty library", func(t *testing.T) {
		m, _ := newTestModel(t, domain.StateWelcome, 0)
		m.Update(scansLoadedMsg{})
		assert.Equal(t, stateCapture, m.state)
		assert.Equal(t, "No saved scans yet.", m.toast)
	})

	t.Run("listing fails", func(t *testing.T) {
		m, _ := newTestModel(t, domain.StateWelcome, 0)
		m.Update(scansLoadedMsg{err: errors.New("disk gone")})
		assert.Equal(t, "Failed to list saved scans!", m.toast)
	})
}

func TestModel_ShareUsesOpenedScanName(t *testing.T) {
	m, controller := newTestModel(t, domain.StateVisualizing, 4)
	snap := snapshotFor(domain.StateVisualizing, 4)
	snap.OpenedDatabasePath = "/scans/kitchen.db"
	m.Update(snapshotMsg{snapshot: snap})

	m.Update(runeKey("m"))
	form, ok := m.prompt.Content().(*PromptForm)
	require.True(t, ok)
	_, text := form.Result()
	assert.Equal(t, "kitchen", text)

	m.finishPrompt(shareFormID, 1, "kitchen")
	assert.Contains(t, controller.Calls(), "WriteExportedMesh(kitchen)")
}

func TestModel_ToastExpires(t *testing.T) {
	m, _ := newTestModel(t, domain.StateIdle, 0)

	m.Update(toastMsg{message: "Database saved!"})
	m.Update(toastMsg{message: "Database loaded!"})
	m.Update(toastExpiredMsg{seq: 1})
	assert.Equal(t, "Database loaded!", m.toast)

	m.Update(toastExpiredMsg{seq: 2})
	assert.Empty(t, m.toast)
}

func TestModel_Progress(t *testing.T) {
	m, _ := newTestModel(t, domain.StateProcessing, 4)

	m.Update(progressShowMsg{title: "Exporting", cancellable: true})
	assert.Contains(t, m.View(), "Exporting")
	assert.Contains(t, m.View(), "press x to cancel")

	m.Update(progressDismissMsg{})
	assert.NotContains(t, m.View(), "Exporting")
}

func TestModel_FocusDrivesLifecycle(t *testing.T) {
	m, controller := newTestModel(t, domain.StateMapping, 4)

	m.Update(tea.BlurMsg{})
	m.Update(tea.FocusMsg{})

	assert.Equal(t, []string{"AppMovedToBackground", "AppMovedToForeground"}, controller.Calls())
}

func TestModel_PaletteDispatchesEnabledAction(t *testing.T) {
	m, controller := newTestModel(t, domain.StateCameraPreview, 0)

	m.Update(runeKey("P"))
	require.Equal(t, stateCommandPalette, m.state)
	for _, r := range "record" {
		m.Update(runeKey(string(r)))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, stateCapture, m.state)
	assert.Equal(t, []string{"SetMenuOpen(true)", "SetMenuOpen(false)", "Record"}, controller.Calls())
}

func TestModel_ViewShowsStateAndStats(t *testing.T) {
	m, _ := newTestModel(t, domain.StateMapping, 12)
	snap := snapshotFor(domain.StateMapping, 12)
	snap.TotalLoopClosures = 3
	snap.LastStats = domain.Stats{LoopClosureID: 7, Words: 4800}
	m.Update(snapshotMsg{snapshot: snap})

	view := m.View()
	assert.Contains(t, view, "Mapping")
	assert.Contains(t, view, "4,800")
	assert.Contains(t, view, "last #7")

	snap.HUDVisible = false
	m.Update(snapshotMsg{snapshot: snap})
	assert.Contains(t, m.View(), "to show the HUD")
	assert.NotContains(t, m.View(), "Words")
}
