package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// KeyBindingValue supports "a" or ["up", "k"] in JSON
type KeyBindingValue []string

// UnmarshalJSON implements custom unmarshaling for KeyBindingValue
func (kv *KeyBindingValue) UnmarshalJSON(data []byte) error {
	// Try array format first
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*kv = arr
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str != "" {
		*kv = []string{str}
	}
	return nil
}

// MarshalJSON implements custom marshaling for KeyBindingValue
func (kv KeyBindingValue) MarshalJSON() ([]byte, error) {
	if len(kv) == 1 {
		return json.Marshal(kv[0])
	}
	return json.Marshal([]string(kv))
}

// KeyBindingsConfig holds custom key binding overrides as a map.
// Keys are action names (e.g., "record", "save"), values are the key sequences.
type KeyBindingsConfig map[string]KeyBindingValue

// Validate checks for configuration errors in key bindings.
// The validNames parameter should come from ui.GetValidKeyNames().
func (k KeyBindingsConfig) Validate(validNames []string) error {
	if k == nil {
		return nil
	}

	validSet := make(map[string]bool, len(validNames))
	for _, name := range validNames {
		validSet[name] = true
	}

	keyToAction := make(map[string]string)

	for name, keys := range k {
		if !validSet[name] {
			return fmt.Errorf("unknown key binding '%s'", name)
		}

		for _, key := range keys {
			if key == "" {
				return fmt.Errorf("key binding for '%s' contains empty value", name)
			}
			if existing, found := keyToAction[key]; found {
				return fmt.Errorf("key '%s' is assigned to both '%s' and '%s'", key, existing, name)
			}
			keyToAction[key] = name
		}
	}

	return nil
}

// Settings represents the structure of ~/.rgbdslam/settings.json.
// Unset fields fall back to the defaults in defaults.go.
type Settings struct {
	// Application
	DataDir     string            `json:"data_dir,omitempty"`
	Debug       *bool             `json:"debug,omitempty"`
	Keys        KeyBindingsConfig `json:"keys,omitempty"`
	MaxLogFiles *int              `json:"max_log_files,omitempty"`

	// Mapping
	AppendMode                      *bool    `json:"append_mode,omitempty"`
	ArUcoMarkerDetection            *int     `json:"aruco_marker_detection,omitempty"`
	DatabaseInMemory                *bool    `json:"database_in_memory,omitempty"`
	FeatureType                     *int     `json:"feature_type,omitempty"`
	GraphOptimizer                  *int     `json:"graph_optimizer,omitempty"`
	LidarMode                       *bool    `json:"lidar_mode,omitempty"`
	LoopClosureThreshold            *float64 `json:"loop_closure_threshold,omitempty"`
	MarkerDepthErrorEstimation      *float64 `json:"marker_depth_error_estimation,omitempty"`
	MarkerSize                      *float64 `json:"marker_size_cm,omitempty"`
	MaxFeaturesExtractedLoopClosure *int     `json:"max_features_extracted_loop_closure,omitempty"`
	MaxFeaturesExtractedVocabulary  *int     `json:"max_features_extracted_vocabulary,omitempty"`
	MaxOptimizationError            *float64 `json:"max_optimization_error,omitempty"`
	MaximumMotionSpeed              *float64 `json:"maximum_motion_speed,omitempty"`
	MaximumOdometryCacheSize        *int     `json:"maximum_odometry_cache_size,omitempty"`
	MemoryLimit                     *int     `json:"memory_limit,omitempty"`
	MinInliers                      *int     `json:"min_inliers,omitempty"`
	OptimizationFromGraphEnd        *bool    `json:"optimization_from_graph_end,omitempty"`
	ProximityDetection              *bool    `json:"proximity_detection,omitempty"`
	SaveAllFramesInDatabase         *bool    `json:"save_all_frames_in_database,omitempty"`
	SaveGPS                         *bool    `json:"save_gps,omitempty"`
	SimilarityThreshold             *float64 `json:"similarity_threshold,omitempty"`
	TimeLimit                       *int     `json:"time_limit_ms,omitempty"`
	UpdateRate                      *float64 `json:"update_rate_hz,omitempty"`

	// Rendering and assembly
	BackgroundColor       *float64 `json:"background_color,omitempty"`
	Blending              *bool    `json:"blending,omitempty"`
	ColorCorrectionRadius *float64 `json:"color_correction_radius,omitempty"`
	DepthConfidence       *int     `json:"depth_confidence,omitempty"`
	HDMode                *bool    `json:"hd_mode,omitempty"`
	MaxDepth              *float64 `json:"max_depth,omitempty"`
	MeshAngleTolerance    *float64 `json:"mesh_angle_tolerance,omitempty"`
	MeshDecimationFactor  *float64 `json:"mesh_decimation_factor,omitempty"`
	MeshTriangleSize      *int     `json:"mesh_triangle_size,omitempty"`
	MinDepth              *float64 `json:"min_depth,omitempty"`
	NodesFiltering        *bool    `json:"nodes_filtering,omitempty"`
	NoiseFilteringRatio   *float64 `json:"noise_filtering_ratio,omitempty"`
	PointCloudDensity     *int     `json:"point_cloud_density,omitempty"`
	PointSize             *float64 `json:"point_size,omitempty"`
	Smoothing             *bool    `json:"smoothing,omitempty"`
	TextureResolution     *int     `json:"texture_resolution,omitempty"`
}

// LoadSettings loads settings from $RGBDSLAM_HOME/settings.json (or ~/.rgbdslam/settings.json if not set)
// Returns empty Settings if file doesn't exist (not an error)
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(GetSettingsPath())
}

// LoadSettingsFrom loads settings from an explicit path
func LoadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil // Not an error, use defaults
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	if settings.DataDir != "" {
		settings.DataDir = ExpandPath(settings.DataDir)
	}

	return &settings, nil
}

// SaveSettings saves settings to $RGBDSLAM_HOME/settings.json
func SaveSettings(settings *Settings) error {
	return SaveSettingsTo(GetSettingsPath(), settings)
}

// SaveSettingsTo saves settings to an explicit path
func SaveSettingsTo(path string, settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
