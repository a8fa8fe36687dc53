package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type affordanceRow struct {
	newScan      bool
	mapActions   func(nodes int) bool
	settings     bool
	renderPaused bool
	camera       bool
}

func hasNodes(nodes int) bool { return nodes > 0 }
func never(int) bool          { return false }

var affordanceTable = map[CaptureState]affordanceRow{
	StateWelcome:                 {newScan: true, mapActions: never, settings: true, renderPaused: true},
	StateCameraPreview:           {newScan: true, mapActions: never, camera: true},
	StateMapping:                 {newScan: true, mapActions: never, camera: true},
	StateProcessing:              {mapActions: never, renderPaused: true},
	StateVisualizingWhileLoading: {mapActions: never, renderPaused: true},
	StateVisualizingWithCamera:   {mapActions: never, camera: true},
	StateVisualizing:             {newScan: true, mapActions: hasNodes, settings: true, renderPaused: true},
	StateIdle:                    {newScan: true, mapActions: hasNodes, settings: true, renderPaused: true},
}

func TestDeriveAffordances_MatchesTable(t *testing.T) {
	for _, state := range CaptureStates {
		for _, nodes := range []int{0, 1, 50} {
			for _, hud := range []bool{true, false} {
				name := fmt.Sprintf("%s/nodes=%d/hud=%t", state, nodes, hud)
				t.Run(name, func(t *testing.T) {
					row, ok := affordanceTable[state]
					if !assert.True(t, ok) {
						return
					}

					a := DeriveAffordances(state, nodes, hud)

					assert.Equal(t, row.newScan, a.NewScanEnabled, "newScan")
					assert.Equal(t, row.mapActions(nodes), a.SaveEnabled, "save")
					assert.Equal(t, row.mapActions(nodes), a.ResumeEnabled, "resume")
					assert.Equal(t, row.mapActions(nodes), a.ExportEnabled, "export")
					assert.Equal(t, row.mapActions(nodes), a.OptimizeEnabled, "optimize")
					assert.Equal(t, row.settings, a.SettingsEnabled, "settings")
					assert.Equal(t, row.renderPaused, a.RenderPaused, "renderPaused")
					assert.Equal(t, row.camera, a.CameraRunning, "cameraRunning")
					assert.Equal(t, hud, a.HUDVisible, "hudVisible")
				})
			}
		}
	}
}

func TestDeriveAffordances_IsDeterministic(t *testing.T) {
	for _, state := range CaptureStates {
		for _, nodes := range []int{0, 1} {
			for _, hud := range []bool{true, false} {
				first := DeriveAffordances(state, nodes, hud)
				for i := 0; i < 3; i++ {
					assert.Equal(t, first, DeriveAffordances(state, nodes, hud))
				}
			}
		}
	}
}

func TestDeriveAffordances_RenderPausedOutsideCapture(t *testing.T) {
	running := map[CaptureState]bool{
		StateMapping:               true,
		StateCameraPreview:         true,
		StateVisualizingWithCamera: true,
	}

	for _, state := range CaptureStates {
		t.Run(state.String(), func(t *testing.T) {
			a := DeriveAffordances(state, 10, true)
			assert.Equal(t, !running[state], a.RenderPaused)
		})
	}
}

func TestDeriveAffordances_PresentationFlags(t *testing.T) {
	assert.True(t, DeriveAffordances(StateCameraPreview, 0, true).RecordEnabled)
	assert.False(t, DeriveAffordances(StateMapping, 0, true).RecordEnabled)
	assert.True(t, DeriveAffordances(StateMapping, 0, true).StopEnabled)
	assert.True(t, DeriveAffordances(StateVisualizing, 3, true).CloseVisualizationEnabled)
	assert.True(t, DeriveAffordances(StateVisualizing, 3, true).LocalizeEnabled)
	assert.False(t, DeriveAffordances(StateVisualizing, 0, true).LocalizeEnabled)
	assert.False(t, DeriveAffordances(StateIdle, 3, true).CloseVisualizationEnabled)

	library := map[CaptureState]bool{StateWelcome: true, StateIdle: true, StateVisualizing: true}
	for _, state := range CaptureStates {
		assert.Equal(t, library[state], DeriveAffordances(state, 3, true).LibraryEnabled, state.String())
	}
}

func TestGetEnabledActions(t *testing.T) {
	names := func(actions []Action) []string {
		var out []string
		for _, a := range actions {
			out = append(out, a.Name)
		}
		return out
	}

	welcome := names(GetEnabledActions(DeriveAffordances(StateWelcome, 0, true)))
	assert.Contains(t, welcome, "new_scan")
	assert.NotContains(t, welcome, "save")
	assert.NotContains(t, welcome, "record")

	idle := names(GetEnabledActions(DeriveAffordances(StateIdle, 12, true)))
	assert.Contains(t, idle, "save")
	assert.Contains(t, idle, "export")
	assert.Contains(t, idle, "optimize")

	mapping := names(GetEnabledActions(DeriveAffordances(StateMapping, 10, true)))
	assert.NotContains(t, mapping, "open")
	assert.Contains(t, mapping, "stop")
	assert.Contains(t, welcome, "open")
	assert.Contains(t, idle, "open")

	assert.NotNil(t, GetActionByName("record"))
	assert.Nil(t, GetActionByName("missing"))
}
