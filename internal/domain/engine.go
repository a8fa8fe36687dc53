package domain

import (
	"time"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// ViewMode selects how the assembled map is drawn
type ViewMode int

const (
	ViewCloud ViewMode = iota
	ViewMesh
	ViewTexturedMesh
)

// DefaultViewMode is used until the user or a loaded database picks another
const DefaultViewMode = ViewTexturedMesh

// MeshRendering returns the flags passed to the engine for this view mode
func (v ViewMode) MeshRendering() (enabled, withTexture bool) {
	switch v {
	case ViewMesh:
		return true, false
	case ViewTexturedMesh:
		return true, true
	default:
		return false, false
	}
}

func (v ViewMode) String() string {
	switch v {
	case ViewCloud:
		return "cloud"
	case ViewMesh:
		return "mesh"
	case ViewTexturedMesh:
		return "textured_mesh"
	default:
		return "unknown"
	}
}

// CameraType is the engine viewpoint code
type CameraType int

const (
	CameraFirstPerson CameraType = iota
	CameraThirdPerson
	CameraTop
	CameraOrtho
)

func (c CameraType) String() string {
	switch c {
	case CameraFirstPerson:
		return "first_person"
	case CameraThirdPerson:
		return "third_person"
	case CameraTop:
		return "top"
	case CameraOrtho:
		return "ortho"
	default:
		return "unknown"
	}
}

// Status codes returned by the engine when opening a database
const (
	// OpenStatusOptimizationFailed means the graph could not be optimized
	OpenStatusOptimizationFailed = -1
	// OpenStatusOutOfMemory means the map did not fit in memory
	OpenStatusOutOfMemory = -2
	// OpenStatusLoaded means the map loaded without optimized content
	OpenStatusLoaded = 0
)

// OpenStatusHasOptimizedContent reports whether the database carried an
// optimized cloud or mesh that can be shown right away
func OpenStatusHasOptimizedContent(code int) bool {
	return code >= 1 && code <= 3
}

// RenderCode is the value returned by one render pass
type RenderCode int

const (
	RenderOK          RenderCode = 0
	RenderOutOfMemory RenderCode = -1
	RenderError       RenderCode = -2
)

// OptimizationApproach selects the post-processing run by the engine
type OptimizationApproach int

const (
	ApproachStandard         OptimizationApproach = -1
	ApproachGlobalGraph      OptimizationApproach = 0
	ApproachBundleAdjustment OptimizationApproach = 1
	ApproachDetectMoreLoops  OptimizationApproach = 2
	ApproachNoiseFiltering   OptimizationApproach = 4
	ApproachAdjustColorsFast OptimizationApproach = 5
	ApproachAdjustColorsFull OptimizationApproach = 6
	ApproachMeshSmoothing    OptimizationApproach = 7
)

// PostProcessingCanceled is returned by post-processing when it was canceled
const PostProcessingCanceled = -1

const (
	defaultOptimizedMaxPolygons = 200000
	defaultTextureSize          = 4096
)

// Approaches lists the optimization menu in display order
var Approaches = []OptimizationApproach{
	ApproachStandard,
	ApproachGlobalGraph,
	ApproachBundleAdjustment,
	ApproachDetectMoreLoops,
	ApproachNoiseFiltering,
	ApproachAdjustColorsFast,
	ApproachAdjustColorsFull,
	ApproachMeshSmoothing,
}

// Label is the menu entry for the approach
func (a OptimizationApproach) Label() string {
	switch a {
	case ApproachStandard:
		return "Standard Optimization"
	case ApproachGlobalGraph:
		return "Global Graph Optimization"
	case ApproachBundleAdjustment:
		return "Bundle Adjustment"
	case ApproachDetectMoreLoops:
		return "Detect More Loop Closures"
	case ApproachNoiseFiltering:
		return "Noise Filtering"
	case ApproachAdjustColorsFast:
		return "Adjust Colors (Fast)"
	case ApproachAdjustColorsFull:
		return "Adjust Colors (Full)"
	case ApproachMeshSmoothing:
		return "Mesh Smoothing"
	default:
		return "Unknown"
	}
}

// ExportOptions are the assembly parameters sent to the engine
type ExportOptions struct {
	BlockRendering                 bool
	CloudVoxelSize                 float64
	Meshing                        bool
	NormalK                        int
	Optimized                      bool
	OptimizedCleanWhitePolygons    bool
	OptimizedColorRadius           float64
	OptimizedDepth                 int
	OptimizedMaxPolygons           int
	OptimizedMaxTextureDistance    float64
	OptimizedMinClusterSize        int
	OptimizedMinTextureClusterSize int
	OptimizedVoxelSize             float64
	RegenerateCloud                bool
	TextureCount                   int
	TextureSize                    int
}

// Textured reports whether the export produces a textured OBJ
func (o ExportOptions) Textured() bool {
	return o.Meshing && o.TextureSize > 0
}

// ViewMode is the mode to show after the export completes
func (o ExportOptions) ViewMode() ViewMode {
	switch {
	case o.Textured():
		return ViewTexturedMesh
	case o.Meshing:
		return ViewMesh
	default:
		return ViewCloud
	}
}

func newExportOptions(textured, meshing, regenerateCloud bool, maxPolygons, textureSize int) ExportOptions {
	opts := ExportOptions{
		Meshing:                        meshing,
		NormalK:                        18,
		Optimized:                      true,
		OptimizedDepth:                 10,
		OptimizedMaxPolygons:           maxPolygons,
		OptimizedMinClusterSize:        50,
		OptimizedMinTextureClusterSize: 20,
		RegenerateCloud:                regenerateCloud,
		TextureCount:                   1,
	}
	if textured {
		opts.TextureSize = textureSize
	}
	return opts
}

// PointCloudExport assembles the point cloud, optionally regenerated at
// maximum density
func PointCloudExport(maxDensity bool) ExportOptions {
	return newExportOptions(false, false, maxDensity, 0, 0)
}

// MeshExport assembles a colored or textured mesh
func MeshExport(textured bool, textureSize int) ExportOptions {
	if textureSize <= 0 {
		textureSize = defaultTextureSize
	}
	return newExportOptions(textured, true, false, defaultOptimizedMaxPolygons, textureSize)
}

// StandardMeshExport is the textured mesh produced after a standard optimization
func StandardMeshExport(textureSize int) ExportOptions {
	return MeshExport(true, textureSize)
}

// TouchKind is the gesture phase code understood by the engine
type TouchKind int

const (
	TouchDown       TouchKind = 0
	TouchUp         TouchKind = 1
	TouchMove       TouchKind = 2
	TouchSecondDown TouchKind = 5
)

// TrackingState is the AR tracking quality reported with each frame
type TrackingState int

const (
	TrackingNormal TrackingState = iota
	TrackingNotAvailable
	TrackingExcessiveMotion
	TrackingInsufficientFeatures
	TrackingInitializing
	TrackingRelocalizing
)

// Frame is one camera/AR sample
type Frame struct {
	LightEstimate float64
	Position      r3.Vector
	Stamp         time.Time
	Tracking      TrackingState
	Yaw           float64
}

// Stats is one statistics update published by the engine after each map update
type Stats struct {
	FPS                       float64
	HighestHypothesisID       int
	HighestHypothesisValue    float64
	Inliers                   int
	LandmarkDetected          int
	LoopClosureID             int
	Matches                   int
	Nodes                     int
	OptimizationMaxError      float64
	OptimizationMaxErrorRatio float64
	Points                    int
	Polygons                  int
	Rejected                  int
	UpdateTime                time.Duration
	Words                     int
}

// Touch is one finger on the viewport, in view coordinates
type Touch struct {
	ID       int
	Position r2.Point
}
