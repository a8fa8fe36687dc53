package services

import (
	"rgbdslam/internal/domain"
	"rgbdslam/internal/logging"
	"rgbdslam/internal/ports"
)

const (
	lidarDisabledMessage = "LiDAR is disabled (Settings->Mapping->LiDAR Mode = OFF), " +
		"only tracked features will be mapped."
	noLidarMessage = "The device does not have a LiDAR, only tracked features will be mapped. " +
		"A LiDAR is required for accurate 3D reconstruction."
)

func (s *CaptureSession) startCamera() {
	if s.closing {
		return
	}
	switch s.permission.Status() {
	case ports.PermissionAuthorized:
		s.startCameraAuthorized()
	case ports.PermissionNotDetermined:
		s.permission.Request(func(granted bool) {
			s.main.Post(func() {
				if granted {
					s.startCameraAuthorized()
					return
				}
				s.askCameraPermission()
			})
		})
	default:
		s.askCameraPermission()
	}
}

func (s *CaptureSession) askCameraPermission() {
	s.ask("Camera Disabled",
		"Camera permission is required to map. You can enable it in the app settings.",
		[]string{"Settings", "Ignore"},
		func(choice int, _ string) {
			if choice == 0 {
				s.permission.OpenSettings()
			}
		})
}

func (s *CaptureSession) startCameraAuthorized() {
	if s.closing {
		return
	}
	if !s.engine.StartCamera() {
		logging.Logger.Error("Engine failed to start the camera")
		s.notify("Failed to start the camera!")
		return
	}

	lidar := s.settings.Settings().GetLidarMode()
	depth := s.ar.DepthSupported()

	message := ""
	switch {
	case !lidar:
		message = lidarDisabledMessage
		s.setViewMode(domain.ViewCloud)
	case !depth:
		message = noLidarMessage
		s.setViewMode(domain.ViewCloud)
	}

	if err := s.ar.Run(ports.ARConfig{SceneDepth: lidar && depth}); err != nil {
		logging.Logger.Error("AR session failed to start", "error", err)
		s.engine.StopCamera()
		s.sessionFailed(err)
		return
	}

	if s.state == domain.StateVisualizing {
		s.requestTransition(domain.StateVisualizingWithCamera)
	} else {
		s.requestTransition(domain.StateCameraPreview)
	}

	if message != "" {
		s.alert("", message)
	}
}

func (s *CaptureSession) record() {
	if s.state != domain.StateCameraPreview {
		logging.Logger.Debug("Record ignored", "state", s.state)
		return
	}
	s.engine.SetPausedMapping(false)
	s.requestTransition(domain.StateMapping)
}

// stopCapture detaches the camera from the engine without changing state
func (s *CaptureSession) stopCapture() {
	s.ar.Pause()
	s.engine.SetPausedMapping(true)
	s.engine.StopCamera()
	s.setCamera(domain.CameraTop)
}

func (s *CaptureSession) stopMapping(ignoreSaving bool) {
	s.stopCapture()

	switch {
	case s.state == domain.StateVisualizingWithCamera:
		s.engine.SetLocalizationMode(false)
		s.requestTransition(domain.StateVisualizing)
	case s.mapNodes == 0:
		s.requestTransition(domain.StateWelcome)
	default:
		s.requestTransition(domain.StateIdle)
	}

	if ignoreSaving || s.mapNodes == 0 || s.state != domain.StateIdle {
		return
	}
	s.ask("Mapping Stopped! Optimize Now?",
		"You can optimize later from the menu.",
		[]string{"No", "Yes"},
		func(choice int, _ string) {
			if choice == 1 {
				s.optimize(domain.ApproachStandard, true)
			}
		})
}

func (s *CaptureSession) resumeScan() {
	if s.state == domain.StateVisualizing {
		s.closeVisualization()
		s.engine.PostExportation(false)
	}
	s.alert("Append Mode",
		"The camera preview will not be aligned to map on start, move to a previously scanned area, "+
			"then push Record. When a loop closure is detected, new scans will be appended to map.")
	s.setCamera(domain.CameraFirstPerson)
	s.startCamera()
}

func (s *CaptureSession) startLocalization() {
	if s.state != domain.StateVisualizing {
		logging.Logger.Debug("Localization ignored", "state", s.state)
		return
	}
	s.engine.SetLocalizationMode(true)
	s.setCamera(domain.CameraFirstPerson)
	s.startCamera()
}

func (s *CaptureSession) closeVisualization() {
	s.requestTransition(domain.StateIdle)
}

func (s *CaptureSession) sessionFailed(err error) {
	message := "The AR session failed."
	if err != nil {
		message += " " + err.Error()
	}
	s.ask("AR Session Failed", message, []string{"Restart Session"}, func(int, string) {
		if s.state.IsCapturing() || s.state == domain.StateVisualizingWithCamera {
			s.stopMapping(true)
		}
		s.startCamera()
	})
}
