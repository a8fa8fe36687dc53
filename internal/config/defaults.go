package config

// Defaults applied when a setting is absent
const (
	DefaultArUcoMarkerDetection            = -1
	DefaultBackgroundColor                 = 0.2
	DefaultColorCorrectionRadius           = 0.02
	DefaultDepthConfidence                 = 2
	DefaultFeatureType                     = 6
	DefaultGraphOptimizer                  = 2
	DefaultLoopClosureThreshold            = 0.11
	DefaultMarkerDepthErrorEstimation      = 0.04
	DefaultMarkerSize                      = 10.0
	DefaultMaxDepth                        = 5.0
	DefaultMaxFeaturesExtractedLoopClosure = 1000
	DefaultMaxFeaturesExtractedVocabulary  = 400
	DefaultMaxLogFiles                     = 1000
	DefaultMaxOptimizationError            = 3.0
	DefaultMaximumMotionSpeed              = 0.0
	DefaultMaximumOdometryCacheSize        = 10
	DefaultMemoryLimit                     = 0
	DefaultMeshAngleTolerance              = 20.0
	DefaultMeshDecimationFactor            = 0.0
	DefaultMeshTriangleSize                = 2
	DefaultMinDepth                        = 0.0
	DefaultMinInliers                      = 25
	DefaultNoiseFilteringRatio             = 0.05
	DefaultPointCloudDensity               = 1
	DefaultPointSize                       = 10.0
	DefaultSimilarityThreshold             = 0.3
	DefaultTextureResolution               = 2
	DefaultTimeLimit                       = 0
	DefaultUpdateRate                      = 1.0
)

func valueOr[T any](p *T, def T) T {
	if p != nil {
		return *p
	}
	return def
}

// GetAppendMode returns whether new scans are appended to the loaded map
func (s Settings) GetAppendMode() bool { return valueOr(s.AppendMode, true) }

// GetArUcoMarkerDetection returns the ArUco dictionary, -1 when disabled
func (s Settings) GetArUcoMarkerDetection() int {
	return valueOr(s.ArUcoMarkerDetection, DefaultArUcoMarkerDetection)
}

func (s Settings) GetBackgroundColor() float64 {
	return valueOr(s.BackgroundColor, DefaultBackgroundColor)
}

func (s Settings) GetBlending() bool { return valueOr(s.Blending, true) }

func (s Settings) GetColorCorrectionRadius() float64 {
	return valueOr(s.ColorCorrectionRadius, DefaultColorCorrectionRadius)
}

// GetDatabaseInMemory returns whether the scratch database is kept in memory
func (s Settings) GetDatabaseInMemory() bool { return valueOr(s.DatabaseInMemory, true) }

func (s Settings) GetDebug() bool { return valueOr(s.Debug, false) }

func (s Settings) GetDepthConfidence() int {
	return valueOr(s.DepthConfidence, DefaultDepthConfidence)
}

func (s Settings) GetFeatureType() int { return valueOr(s.FeatureType, DefaultFeatureType) }

func (s Settings) GetGraphOptimizer() int {
	return valueOr(s.GraphOptimizer, DefaultGraphOptimizer)
}

func (s Settings) GetHDMode() bool { return valueOr(s.HDMode, false) }

// GetLidarMode returns whether depth from the LiDAR is used when available
func (s Settings) GetLidarMode() bool { return valueOr(s.LidarMode, true) }

func (s Settings) GetLoopClosureThreshold() float64 {
	return valueOr(s.LoopClosureThreshold, DefaultLoopClosureThreshold)
}

func (s Settings) GetMarkerDepthErrorEstimation() float64 {
	return valueOr(s.MarkerDepthErrorEstimation, DefaultMarkerDepthErrorEstimation)
}

// GetMarkerSize returns the marker size in centimeters
func (s Settings) GetMarkerSize() float64 { return valueOr(s.MarkerSize, DefaultMarkerSize) }

func (s Settings) GetMaxDepth() float64 { return valueOr(s.MaxDepth, DefaultMaxDepth) }

func (s Settings) GetMaxFeaturesExtractedLoopClosure() int {
	return valueOr(s.MaxFeaturesExtractedLoopClosure, DefaultMaxFeaturesExtractedLoopClosure)
}

func (s Settings) GetMaxFeaturesExtractedVocabulary() int {
	return valueOr(s.MaxFeaturesExtractedVocabulary, DefaultMaxFeaturesExtractedVocabulary)
}

func (s Settings) GetMaxLogFiles() int { return valueOr(s.MaxLogFiles, DefaultMaxLogFiles) }

// GetMaxOptimizationError returns the factor above which a loop closure is
// rejected for a too high graph optimization error
func (s Settings) GetMaxOptimizationError() float64 {
	return valueOr(s.MaxOptimizationError, DefaultMaxOptimizationError)
}

func (s Settings) GetMaximumMotionSpeed() float64 {
	return valueOr(s.MaximumMotionSpeed, DefaultMaximumMotionSpeed)
}

func (s Settings) GetMaximumOdometryCacheSize() int {
	return valueOr(s.MaximumOdometryCacheSize, DefaultMaximumOdometryCacheSize)
}

func (s Settings) GetMemoryLimit() int { return valueOr(s.MemoryLimit, DefaultMemoryLimit) }

func (s Settings) GetMeshAngleTolerance() float64 {
	return valueOr(s.MeshAngleTolerance, DefaultMeshAngleTolerance)
}

func (s Settings) GetMeshDecimationFactor() float64 {
	return valueOr(s.MeshDecimationFactor, DefaultMeshDecimationFactor)
}

func (s Settings) GetMeshTriangleSize() int {
	return valueOr(s.MeshTriangleSize, DefaultMeshTriangleSize)
}

func (s Settings) GetMinDepth() float64 { return valueOr(s.MinDepth, DefaultMinDepth) }

// GetMinInliers returns the minimum visual inliers to accept a loop closure
func (s Settings) GetMinInliers() int { return valueOr(s.MinInliers, DefaultMinInliers) }

func (s Settings) GetNodesFiltering() bool { return valueOr(s.NodesFiltering, false) }

func (s Settings) GetNoiseFilteringRatio() float64 {
	return valueOr(s.NoiseFilteringRatio, DefaultNoiseFilteringRatio)
}

func (s Settings) GetOptimizationFromGraphEnd() bool {
	return valueOr(s.OptimizationFromGraphEnd, true)
}

func (s Settings) GetPointCloudDensity() int {
	return valueOr(s.PointCloudDensity, DefaultPointCloudDensity)
}

func (s Settings) GetPointSize() float64 { return valueOr(s.PointSize, DefaultPointSize) }

func (s Settings) GetProximityDetection() bool { return valueOr(s.ProximityDetection, true) }

func (s Settings) GetSaveAllFramesInDatabase() bool {
	return valueOr(s.SaveAllFramesInDatabase, true)
}

func (s Settings) GetSaveGPS() bool { return valueOr(s.SaveGPS, false) }

func (s Settings) GetSimilarityThreshold() float64 {
	return valueOr(s.SimilarityThreshold, DefaultSimilarityThreshold)
}

func (s Settings) GetSmoothing() bool { return valueOr(s.Smoothing, false) }

func (s Settings) GetTextureResolution() int {
	return valueOr(s.TextureResolution, DefaultTextureResolution)
}

// GetTextureSize converts the texture resolution index into pixels
func (s Settings) GetTextureSize() int {
	idx := s.GetTextureResolution()
	if idx < 0 {
		idx = 0
	}
	if idx > 3 {
		idx = 3
	}
	return 1024 << idx
}

func (s Settings) GetTimeLimit() int { return valueOr(s.TimeLimit, DefaultTimeLimit) }

// GetUpdateRate returns the map update rate in Hz
func (s Settings) GetUpdateRate() float64 { return valueOr(s.UpdateRate, DefaultUpdateRate) }
