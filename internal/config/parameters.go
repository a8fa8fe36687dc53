package config

import "strconv"

// Parameters converts the settings into the key/value set sent to the
// mapping engine
func (s Settings) Parameters() map[string]string {
	p := map[string]string{
		"Rtabmap/DetectionRate":      ftoa(s.GetUpdateRate()),
		"Rtabmap/TimeThr":            strconv.Itoa(s.GetTimeLimit()),
		"Rtabmap/MemoryThr":          strconv.Itoa(s.GetMemoryLimit()),
		"Rtabmap/LoopThr":            ftoa(s.GetLoopClosureThreshold()),
		"Mem/RehearsalSimilarity":    ftoa(s.GetSimilarityThreshold()),
		"Kp/MaxFeatures":             strconv.Itoa(s.GetMaxFeaturesExtractedVocabulary()),
		"Vis/MaxFeatures":            strconv.Itoa(s.GetMaxFeaturesExtractedLoopClosure()),
		"Vis/MinInliers":             strconv.Itoa(s.GetMinInliers()),
		"RGBD/OptimizeMaxError":      ftoa(s.GetMaxOptimizationError()),
		"Kp/DetectorStrategy":        strconv.Itoa(s.GetFeatureType()),
		"Vis/FeatureType":            strconv.Itoa(s.GetFeatureType()),
		"Mem/NotLinkedNodesKept":     strconv.FormatBool(s.GetSaveAllFramesInDatabase()),
		"RGBD/OptimizeFromGraphEnd":  strconv.FormatBool(s.GetOptimizationFromGraphEnd()),
		"RGBD/MaxOdomCacheSize":      strconv.Itoa(s.GetMaximumOdometryCacheSize()),
		"Optimizer/Strategy":         strconv.Itoa(s.GetGraphOptimizer()),
		"RGBD/ProximityBySpace":      strconv.FormatBool(s.GetProximityDetection()),
		"RGBD/LinearSpeedUpdate":     ftoa(s.GetMaximumMotionSpeed()),
		"RGBD/AngularSpeedUpdate":    ftoa(s.GetMaximumMotionSpeed() / 2),
		"Marker/VarianceLinear":      ftoa(s.GetMarkerDepthErrorEstimation()),
		"Marker/Length":              ftoa(s.GetMarkerSize() / 100),
		"App/AppendMode":             strconv.FormatBool(s.GetAppendMode()),
		"App/Blending":               strconv.FormatBool(s.GetBlending()),
		"App/NodesFiltering":         strconv.FormatBool(s.GetNodesFiltering()),
		"App/HDMode":                 strconv.FormatBool(s.GetHDMode()),
		"App/Smoothing":              strconv.FormatBool(s.GetSmoothing()),
		"App/PointCloudDensity":      strconv.Itoa(s.GetPointCloudDensity()),
		"App/MaxDepth":               ftoa(s.GetMaxDepth()),
		"App/MinDepth":               ftoa(s.GetMinDepth()),
		"App/DepthConfidence":        strconv.Itoa(s.GetDepthConfidence()),
		"App/PointSize":              ftoa(s.GetPointSize()),
		"App/MeshAngleTolerance":     ftoa(s.GetMeshAngleTolerance()),
		"App/MeshTriangleSize":       strconv.Itoa(s.GetMeshTriangleSize()),
		"App/MeshDecimationFactor":   ftoa(s.GetMeshDecimationFactor()),
		"App/BackgroundColor":        ftoa(s.GetBackgroundColor()),
		"App/NoiseFilteringRatio":    ftoa(s.GetNoiseFilteringRatio()),
		"App/ColorCorrectionRadius":  ftoa(s.GetColorCorrectionRadius()),
		"App/TextureSize":            strconv.Itoa(s.GetTextureSize()),
		"App/SaveGPS":                strconv.FormatBool(s.GetSaveGPS()),
		"App/DatabaseInMemory":       strconv.FormatBool(s.GetDatabaseInMemory()),
		"App/LidarMode":              strconv.FormatBool(s.GetLidarMode()),
	}

	marker := s.GetArUcoMarkerDetection()
	if marker == -1 {
		p["RGBD/MarkerDetection"] = "false"
	} else {
		p["RGBD/MarkerDetection"] = "true"
		p["Marker/Dictionary"] = strconv.Itoa(marker)
		refinement := 0
		if marker > 16 {
			refinement = 3
		}
		p["Marker/CornerRefinementMethod"] = strconv.Itoa(refinement)
	}

	return p
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
