package domain

// CaptureState is the mode of the capture screen. Exactly one is current.
type CaptureState int

const (
	StateWelcome CaptureState = iota
	StateCameraPreview
	StateMapping
	StateIdle
	StateProcessing
	StateVisualizing
	StateVisualizingWithCamera
	StateVisualizingWhileLoading
)

// CaptureStates lists every state in declaration order
var CaptureStates = []CaptureState{
	StateWelcome,
	StateCameraPreview,
	StateMapping,
	StateIdle,
	StateProcessing,
	StateVisualizing,
	StateVisualizingWithCamera,
	StateVisualizingWhileLoading,
}

var stateNames = map[CaptureState]string{
	StateWelcome:                 "welcome",
	StateCameraPreview:           "camera_preview",
	StateMapping:                 "mapping",
	StateIdle:                    "idle",
	StateProcessing:              "processing",
	StateVisualizing:             "visualizing",
	StateVisualizingWithCamera:   "visualizing_with_camera",
	StateVisualizingWhileLoading: "visualizing_while_loading",
}

// String returns the stable snake_case name of the state
func (s CaptureState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseCaptureState is the inverse of String
func ParseCaptureState(name string) (CaptureState, bool) {
	for state, n := range stateNames {
		if n == name {
			return state, true
		}
	}
	return StateWelcome, false
}

// IsCapturing reports whether the camera feeds the engine in this state
func (s CaptureState) IsCapturing() bool {
	return s == StateCameraPreview || s == StateMapping
}

// Label is the human readable state shown in status bars
func (s CaptureState) Label() string {
	switch s {
	case StateWelcome:
		return "Welcome"
	case StateCameraPreview:
		return "Camera"
	case StateMapping:
		return "Mapping"
	case StateIdle:
		return "Idle"
	case StateProcessing:
		return "Processing"
	case StateVisualizing:
		return "Visualizing"
	case StateVisualizingWithCamera:
		return "Localizing"
	case StateVisualizingWhileLoading:
		return "Loading"
	default:
		return "Unknown"
	}
}
