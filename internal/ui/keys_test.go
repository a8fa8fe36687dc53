package ui

import (
	"sort"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rgbdslam/internal/config"
	"rgbdslam/internal/domain"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyDefinitions_ActionsExist(t *testing.T) {
	for _, def := range AllKeyDefinitions {
		if def.Action == "" {
			continue
		}
		assert.NotNil(t, domain.GetActionByName(def.Action), "key %q gated by unknown action %q", def.Name, def.Action)
	}
}

func TestGetValidKeyNames_SortedAndValidatesSettings(t *testing.T) {
	names := GetValidKeyNames()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "record")

	keys := config.KeyBindingsConfig{"record": {"R"}, "save": {"ctrl+s"}}
	require.NoError(t, keys.Validate(names))

	bad := config.KeyBindingsConfig{"teleport": {"t"}}
	assert.Error(t, bad.Validate(names))
}

func TestNewKeyMap_CustomBindings(t *testing.T) {
	keys := NewKeyMap(config.KeyBindingsConfig{"record": {"R", "space"}})

	assert.Equal(t, []string{"R", "space"}, keys.Capture.Record.Binding.Keys())
	assert.Equal(t, "R/space", keys.Capture.Record.Binding.Help().Key)
	assert.Equal(t, []string{"w"}, keys.Library.Save.Binding.Keys())
}

func TestKeyMap_ApplyGatesByAffordances(t *testing.T) {
	tests := []struct {
		name    string
		state   domain.CaptureState
		nodes   int
		key     string
		enabled bool
	}{
		{"record in preview", domain.StateCameraPreview, 0, "r", true},
		{"record while idle", domain.StateIdle, 5, "r", false},
		{"save idle map", domain.StateIdle, 5, "w", true},
		{"save empty map", domain.StateIdle, 0, "w", false},
		{"stop while mapping", domain.StateMapping, 3, "s", true},
		{"localize visualized map", domain.StateVisualizing, 3, "l", true},
		{"share outside visualization", domain.StateIdle, 3, "m", false},
		{"open from welcome", domain.StateWelcome, 0, "o", true},
		{"open while mapping", domain.StateMapping, 3, "o", false},
		{"help always", domain.StateProcessing, 0, "?", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := NewKeyMap(nil)
			keys.Apply(domain.DeriveAffordances(tt.state, tt.nodes, true))

			matched := false
			for _, k := range keys.gated() {
				if key.Matches(runeKey(tt.key), k.Binding) {
					matched = true
				}
			}
			assert.Equal(t, tt.enabled, matched)
		})
	}
}

func TestGetPaletteActions_FollowsState(t *testing.T) {
	names := func(defs []KeyDefinition) []string {
		out := make([]string, len(defs))
		for i, d := range defs {
			out[i] = d.Name
		}
		return out
	}

	welcome := names(GetPaletteActions(domain.DeriveAffordances(domain.StateWelcome, 0, true)))
	assert.Contains(t, welcome, "new_scan")
	assert.Contains(t, welcome, "open")
	assert.NotContains(t, welcome, "save")

	visualizing := names(GetPaletteActions(domain.DeriveAffordances(domain.StateVisualizing, 4, true)))
	assert.Contains(t, visualizing, "share")
	assert.Contains(t, visualizing, "localize")
}

func TestFuzzyMatch(t *testing.T) {
	assert.True(t, fuzzyMatch("opt", "optimize map"))
	assert.True(t, fuzzyMatch("svsc", "save scan"))
	assert.True(t, fuzzyMatch("", "anything"))
	assert.False(t, fuzzyMatch("zz", "save scan"))
}

func TestWrapMessage(t *testing.T) {
	assert.Equal(t, "Database loaded!", wrapMessage("Database loaded!", 40, 2))
	assert.Equal(t, "one two\nthree", wrapMessage("one two three", 10, 2))

	wrapped := wrapMessage("alpha beta gamma delta epsilon zeta", 12, 2)
	assert.Equal(t, "alpha beta\ngamma del...", wrapped)
}
