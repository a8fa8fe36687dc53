package ports

// ARConfig configures one run of the AR session
type ARConfig struct {
	SceneDepth bool
}

// ARSession is the device camera tracking session
type ARSession interface {
	DepthSupported() bool
	Pause()
	Run(cfg ARConfig) error
	SetListener(listener TrackingListener)
}

// PermissionStatus is the camera authorization state
type PermissionStatus int

const (
	PermissionNotDetermined PermissionStatus = iota
	PermissionAuthorized
	PermissionDenied
)

// CameraPermission checks and requests camera access
type CameraPermission interface {
	// OpenSettings sends the user to the system settings page of the app
	OpenSettings()
	Request(done func(granted bool))
	Status() PermissionStatus
}
