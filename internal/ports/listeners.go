package ports

import "rgbdslam/internal/domain"

// ProgressListener receives progress of the running engine operation.
// Called from engine threads.
type ProgressListener interface {
	ProgressUpdated(count, max int)
}

// InitEventListener receives initialization messages while a database loads.
// Called from engine threads.
type InitEventListener interface {
	InitEventReceived(status int, message string)
}

// StatsListener receives statistics after each map update.
// Called from engine threads.
type StatsListener interface {
	StatsUpdated(stats domain.Stats)
}

// EngineObserver is everything the engine reports back
type EngineObserver interface {
	ProgressListener
	InitEventListener
	StatsListener
}

// TrackingListener receives AR session frames and failures.
// Called from the AR session thread.
type TrackingListener interface {
	FrameUpdated(frame domain.Frame)
	SessionFailed(err error)
}

// SnapshotListener is told about every change of the capture session.
// Called on the main thread.
type SnapshotListener interface {
	SessionChanged(snapshot domain.Snapshot)
}
