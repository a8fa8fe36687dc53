package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rgbdslam/internal/config"
)

func TestNewContainer_DataDirPrecedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv("RGBDSLAM_HOME", home)
	t.Setenv("RGBDSLAM_DATA_DIR", "")

	tests := []struct {
		name     string
		settings *config.Settings
		flag     string
		want     string
	}{
		{"default", nil, "", filepath.Join(home, "scans")},
		{"setting", &config.Settings{DataDir: "/data/maps"}, "", "/data/maps"},
		{"flag wins", &config.Settings{DataDir: "/data/maps"}, "/flag/maps", "/flag/maps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.settings, tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.ScansDir)
			assert.Equal(t, filepath.Join(home, "catalog.db"), c.CatalogPath)
		})
	}
}

func TestContainer_LibraryListsScans(t *testing.T) {
	home := t.TempDir()
	t.Setenv("RGBDSLAM_HOME", home)
	dataDir := filepath.Join(home, "scans")

	c, err := NewContainer(nil, dataDir)
	require.NoError(t, err)
	defer c.Close()

	library, err := c.Library()
	require.NoError(t, err)
	again, err := c.Library()
	require.NoError(t, err)
	assert.Same(t, library, again)

	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "kitchen.db"), []byte("x"), 0644))
	scans, err := library.List(context.Background())
	require.NoError(t, err)
	require.Len(t, scans, 1)
	assert.Equal(t, "kitchen", scans[0].Name)
}

func TestSettingsMap(t *testing.T) {
	inliers := 12
	values, err := settingsMap(config.Settings{MinInliers: &inliers, Keys: config.KeyBindingsConfig{"record": {"R"}}})
	require.NoError(t, err)

	assert.Equal(t, float64(12), values["min_inliers"])
	assert.Equal(t, "R", formatValue(values["keys"].(map[string]any)["record"]))
	assert.NotContains(t, values, "max_depth")
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{"text", "text"},
		{true, "true"},
		{float64(0.5), "0.5"},
		{[]any{"up", "k"}, `["up","k"]`},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatValue(tt.value))
		})
	}
}
