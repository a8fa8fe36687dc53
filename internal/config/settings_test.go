package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestLoadSettingsFrom_MissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettingsFrom(filepath.Join(t.TempDir(), "settings.json"))

	require.NoError(t, err)
	assert.Equal(t, DefaultMinInliers, settings.GetMinInliers())
	assert.True(t, settings.GetLidarMode())
	assert.True(t, settings.GetDatabaseInMemory())
}

func TestLoadSettingsFrom_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadSettingsFrom(path)

	assert.ErrorContains(t, err, "invalid settings.json")
}

func TestLoadSettingsFrom_ReadsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	content := `{"min_inliers": 10, "lidar_mode": false, "keys": {"record": ["r", "R"], "save": "w"}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	settings, err := LoadSettingsFrom(path)

	require.NoError(t, err)
	assert.Equal(t, 10, settings.GetMinInliers())
	assert.False(t, settings.GetLidarMode())
	assert.Equal(t, KeyBindingValue{"r", "R"}, settings.Keys["record"])
	assert.Equal(t, KeyBindingValue{"w"}, settings.Keys["save"])
}

func TestSaveSettingsTo_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	err := SaveSettingsTo(path, &Settings{MinInliers: intPtr(12)})
	require.NoError(t, err)

	loaded, err := LoadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 12, loaded.GetMinInliers())
}

func TestKeyBindingsConfig_Validate(t *testing.T) {
	valid := []string{"record", "save", "help"}

	tests := []struct {
		name    string
		config  KeyBindingsConfig
		wantErr string
	}{
		{"nil config", nil, ""},
		{"valid", KeyBindingsConfig{"record": {"r"}, "save": {"w"}}, ""},
		{"unknown name", KeyBindingsConfig{"launch": {"l"}}, "unknown key binding"},
		{"empty key", KeyBindingsConfig{"record": {""}}, "contains empty value"},
		{"duplicate", KeyBindingsConfig{"record": {"r"}, "save": {"r"}}, "is assigned to both"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate(valid)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestParameters_Conversions(t *testing.T) {
	settings := Settings{
		MaximumMotionSpeed: floatPtr(2),
		MarkerSize:         floatPtr(15),
		MinInliers:         intPtr(10),
	}

	p := settings.Parameters()

	assert.Equal(t, "2", p["RGBD/LinearSpeedUpdate"])
	assert.Equal(t, "1", p["RGBD/AngularSpeedUpdate"])
	assert.Equal(t, "0.15", p["Marker/Length"])
	assert.Equal(t, "10", p["Vis/MinInliers"])
	assert.Equal(t, "false", p["RGBD/MarkerDetection"])
	assert.NotContains(t, p, "Marker/Dictionary")
}

func TestParameters_MarkerCornerRefinement(t *testing.T) {
	tests := []struct {
		dictionary int
		refinement string
	}{
		{0, "0"},
		{16, "0"},
		{17, "3"},
		{20, "3"},
	}

	for _, tt := range tests {
		settings := Settings{ArUcoMarkerDetection: intPtr(tt.dictionary)}
		p := settings.Parameters()

		assert.Equal(t, "true", p["RGBD/MarkerDetection"])
		assert.Equal(t, tt.refinement, p["Marker/CornerRefinementMethod"], "dictionary %d", tt.dictionary)
	}
}

func TestGetTextureSize(t *testing.T) {
	assert.Equal(t, 4096, Settings{}.GetTextureSize())
	assert.Equal(t, 1024, Settings{TextureResolution: intPtr(-3)}.GetTextureSize())
	assert.Equal(t, 8192, Settings{TextureResolution: intPtr(9)}.GetTextureSize())
}

func TestStore_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	store, err := NewStore(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultMinInliers, store.Settings().GetMinInliers())

	require.NoError(t, SaveSettingsTo(path, &Settings{MinInliers: intPtr(7), DatabaseInMemory: boolPtr(false)}))
	require.NoError(t, store.Reload())

	assert.Equal(t, 7, store.Settings().GetMinInliers())
	assert.False(t, store.Settings().GetDatabaseInMemory())
}

func TestGetSettingsExample_UsesDefaults(t *testing.T) {
	example := GetSettingsExample()

	assert.Equal(t, DefaultMinInliers, example["min_inliers"])
	assert.Equal(t, true, example["lidar_mode"])
	assert.Equal(t, DefaultMaxOptimizationError, example["max_optimization_error"])
	assert.Equal(t, "~/.rgbdslam/scans", example["data_dir"])
}

func TestGetScansDir_Precedence(t *testing.T) {
	t.Setenv("RGBDSLAM_HOME", "/tmp/rgbd-home")
	t.Setenv("RGBDSLAM_DATA_DIR", "")

	assert.Equal(t, filepath.Join("/tmp/rgbd-home", "scans"), GetScansDir(nil))
	assert.Equal(t, "/data/maps", GetScansDir(&Settings{DataDir: "/data/maps"}))

	t.Setenv("RGBDSLAM_DATA_DIR", "/env/maps")
	assert.Equal(t, "/env/maps", GetScansDir(&Settings{DataDir: "/data/maps"}))
}

func TestWithDefaults_KeepsSetFields(t *testing.T) {
	filled := WithDefaults(Settings{MinInliers: intPtr(7)})

	require.NotNil(t, filled.MinInliers)
	assert.Equal(t, 7, *filled.MinInliers)
	require.NotNil(t, filled.MaxOptimizationError)
	assert.Equal(t, DefaultMaxOptimizationError, *filled.MaxOptimizationError)
	require.NotNil(t, filled.Debug)
	assert.False(t, *filled.Debug)
}
