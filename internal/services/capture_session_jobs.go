package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"rgbdslam/internal/domain"
	"rgbdslam/internal/logging"
)

const (
	openOptimizationFailedMessage = "The graph optimization failed while loading the database. " +
		"You may try a different Graph Optimizer (see Mapping options) before loading it again."
	openOutOfMemoryMessage = "Failed to open database: Out of memory! " +
		"Try again after lowering Point Cloud Density in Settings."
)

// startJob runs work on the coordinator. When the job cannot start the
// session goes back to previous.
func (s *CaptureSession) startJob(
	kind domain.JobKind,
	previous domain.CaptureState,
	cancellable bool,
	work JobWork,
	done JobCompletion,
) bool {
	_, err := s.jobs.Run(kind, previous, cancellable, work, func(result domain.JobResult) {
		done(result)
		s.refresh()
	})
	if err != nil {
		logging.Logger.Warn("Job not started", "kind", kind, "error", err)
		if errors.Is(err, domain.ErrJobInProgress) {
			s.notify("Please wait for the current operation to finish")
		}
		s.requestTransition(previous)
		return false
	}
	s.refresh()
	return true
}

func (s *CaptureSession) newScan() {
	if s.closing {
		return
	}
	if h := s.jobs.Pending(); h != nil {
		logging.Logger.Warn("New scan ignored while a job runs", "kind", h.Kind)
		return
	}

	if !s.state.IsCapturing() && !s.scratchOwned {
		if size, ok := s.abandonedScratch(); ok {
			s.askRecovery(size)
			return
		}
	}

	if s.state == domain.StateVisualizing {
		s.closeVisualization()
	}

	s.mapNodes = 0
	s.totalLoopClosures = 0
	s.lastStats = domain.Stats{}
	s.openedDatabasePath = ""
	s.scratchOwned = true

	previous := s.state
	capturing := previous.IsCapturing()
	scratch := s.workspace.ScratchPath()
	inMemory := s.settings.Settings().GetDatabaseInMemory()

	logging.Logger.Info("Starting new scan", "scratch", scratch, "in_memory", inMemory, "capturing", capturing)

	s.requestTransition(domain.StateProcessing)
	s.startJob(domain.JobOpenDatabase, previous, false,
		func(ctx context.Context) domain.JobResult {
			code := s.engine.Open(scratch, inMemory, false, true)
			if code < 0 {
				return domain.Failed(code, fmt.Errorf("engine could not create %s", scratch))
			}
			return domain.Succeeded(code)
		},
		func(result domain.JobResult) {
			s.requestTransition(previous)
			if !result.OK() {
				s.notify("Failed to create a new scan!")
				return
			}
			if capturing {
				return
			}
			s.setCamera(domain.CameraFirstPerson)
			s.startCamera()
		})
}

// abandonedScratch reports a scratch database left behind by a session that
// did not save it
func (s *CaptureSession) abandonedScratch() (int64, bool) {
	size, exists := s.workspace.Stat(s.workspace.ScratchPath())
	return size, exists && size > domain.AbandonedScratchThreshold
}

func (s *CaptureSession) askRecovery(size int64) {
	message := fmt.Sprintf("The previous session (%s) was not correctly saved, do you want to recover it?",
		humanize.Bytes(uint64(size)))

	s.ask("Recovery", message, []string{"Ignore", "Cancel", "Yes"}, func(choice int, _ string) {
		switch choice {
		case 0:
			if err := s.workspace.Remove(s.workspace.ScratchPath()); err != nil {
				logging.Logger.Warn("Failed to delete abandoned scratch database", "error", err)
				s.notify("Failed to delete the previous session!")
				return
			}
			s.newScan()
		case 2:
			s.recoverScratch()
		}
	})
}

func (s *CaptureSession) recoverScratch() {
	name := domain.RecoveredScanName(s.clock.Now())
	scratch := s.workspace.ScratchPath()
	staging := s.workspace.RecoveryPath()
	out := s.workspace.ScanPath(name)
	previous := s.state

	s.scratchOwned = true
	s.requestTransition(domain.StateProcessing)
	s.startJob(domain.JobRecover, previous, true,
		func(ctx context.Context) domain.JobResult {
			if !s.engine.Recover(scratch, staging) {
				_ = s.workspace.Remove(staging)
				return domain.Failed(0, fmt.Errorf("engine could not recover %s", scratch))
			}
			if err := s.workspace.Move(staging, out); err != nil {
				return domain.Failed(0, err)
			}
			if err := s.workspace.Remove(scratch); err != nil {
				logging.Logger.Warn("Failed to delete recovered scratch database", "error", err)
			}
			if err := s.library.Register(context.WithoutCancel(ctx), out); err != nil {
				logging.Logger.Warn("Failed to register recovered scan", "path", out, "error", err)
			}
			return domain.JobResult{Outcome: domain.OutcomeSucceeded, Path: out}
		},
		func(result domain.JobResult) {
			switch {
			case result.OK():
				s.requestTransition(previous)
				s.notify("Database saved!")
				s.openDatabase(result.Path)
			case result.Canceled():
				s.requestTransition(previous)
				s.notify("Recovery canceled")
			default:
				s.requestTransition(previous)
				s.notify("Recovery failed!")
			}
		})
}

func (s *CaptureSession) askSave() {
	def := domain.RecoveredScanName(s.clock.Now())
	if s.openedDatabasePath != "" {
		def = domain.ScanNameFromPath(s.openedDatabasePath)
	}
	s.askText("Save Scan", "Database Name (*.db):", def, func(text string) {
		s.saveDatabase(text, false)
	})
}

func (s *CaptureSession) saveDatabase(name string, overwrite bool) {
	name, err := domain.ValidateScanName(name)
	if err != nil {
		s.notify(fmt.Sprintf("Invalid name: %v", err))
		return
	}

	path := s.workspace.ScanPath(name)
	if _, exists := s.workspace.Stat(path); exists && !overwrite && path != s.openedDatabasePath {
		s.ask("File Already Exists",
			fmt.Sprintf("Do you want to overwrite \"%s\"?", name),
			[]string{"No", "Yes"},
			func(choice int, _ string) {
				if choice == 1 {
					s.saveDatabase(name, true)
				}
			})
		return
	}

	scratch := s.workspace.ScratchPath()
	previous := s.state
	s.requestTransition(domain.StateProcessing)
	s.startJob(domain.JobSaveDatabase, previous, false,
		func(ctx context.Context) domain.JobResult {
			if !s.engine.Save(path) {
				return domain.Failed(0, fmt.Errorf("engine could not save %s", path))
			}
			if err := s.workspace.Remove(scratch); err != nil {
				logging.Logger.Warn("Failed to delete scratch database", "error", err)
			}
			if err := s.library.Register(context.WithoutCancel(ctx), path); err != nil {
				logging.Logger.Warn("Failed to register saved scan", "path", path, "error", err)
			}
			return domain.JobResult{Outcome: domain.OutcomeSucceeded, Path: path}
		},
		func(result domain.JobResult) {
			s.requestTransition(previous)
			if !result.OK() {
				s.notify("Saving database failed!")
				return
			}
			s.openedDatabasePath = result.Path
			s.notify(fmt.Sprintf("Database \"%s\" successfully saved!", name))
		})
}

func (s *CaptureSession) openDatabase(path string) {
	if s.closing {
		return
	}
	switch {
	case s.state == domain.StateVisualizing:
		s.closeVisualization()
		s.engine.PostExportation(false)
	case s.state == domain.StateVisualizingWithCamera:
		s.stopCapture()
		s.engine.SetLocalizationMode(false)
	case s.state.IsCapturing():
		s.stopCapture()
	}

	previous := s.state
	s.mapNodes = 0
	s.totalLoopClosures = 0
	s.lastStats = domain.Stats{}
	s.openedDatabasePath = path
	s.scratchOwned = true

	s.requestTransition(domain.StateProcessing)
	s.startJob(domain.JobOpenDatabase, previous, false,
		func(ctx context.Context) domain.JobResult {
			code := s.engine.Open(path, true, false, false)
			if code < 0 {
				return domain.Failed(code, fmt.Errorf("engine could not open %s", path))
			}
			if err := s.library.Opened(context.WithoutCancel(ctx), path); err != nil {
				logging.Logger.Warn("Failed to record opened scan", "path", path, "error", err)
			}
			return domain.JobResult{Outcome: domain.OutcomeSucceeded, Code: code, Path: path}
		},
		func(result domain.JobResult) {
			switch {
			case result.Code == domain.OpenStatusOptimizationFailed:
				s.openFailed(openOptimizationFailedMessage)
			case result.Code == domain.OpenStatusOutOfMemory:
				s.openFailed(openOutOfMemoryMessage)
			case !result.OK():
				s.openFailed(fmt.Sprintf("Failed to open database \"%s\"!", domain.ScanNameFromPath(path)))
			case domain.OpenStatusHasOptimizedContent(result.Code):
				s.requestTransition(domain.StateVisualizing)
				s.resetHUD(true)
			default:
				s.setCamera(domain.CameraTop)
				s.requestTransition(domain.StateIdle)
				s.notify("Database loaded!")
			}
		})
}

func (s *CaptureSession) openFailed(message string) {
	s.openedDatabasePath = ""
	s.requestTransition(domain.StateIdle)
	s.alert("Error", message)
}

func (s *CaptureSession) export(opts domain.ExportOptions) {
	if s.state == domain.StateVisualizing {
		s.closeVisualization()
		s.engine.PostExportation(false)
	}

	previous := s.state
	s.requestTransition(domain.StateProcessing)
	s.startJob(domain.JobExport, previous, true,
		func(ctx context.Context) domain.JobResult {
			if !s.engine.ExportMesh(opts) {
				return domain.Failed(0, errors.New("engine could not assemble the map"))
			}
			return domain.Succeeded(0)
		},
		func(result domain.JobResult) {
			switch {
			case result.OK():
				if !opts.Meshing && s.cameraType != domain.CameraOrtho {
					s.setCamera(domain.CameraTop)
				}
				s.setViewMode(opts.ViewMode())
				s.requestTransition(domain.StateVisualizing)
				s.engine.PostExportation(true)
			case result.Canceled():
				s.requestTransition(previous)
				s.notify("Export canceled")
			default:
				s.requestTransition(previous)
				s.notify("Exporting map failed!")
			}
		})
}

// optimize post-processes the map. With export, a textured mesh is
// assembled afterwards and shown.
func (s *CaptureSession) optimize(approach domain.OptimizationApproach, withExport bool) {
	if s.state == domain.StateVisualizing {
		s.closeVisualization()
		s.engine.PostExportation(false)
	}

	previous := s.state
	opts := domain.StandardMeshExport(s.settings.Settings().GetTextureSize())

	s.requestTransition(domain.StateProcessing)
	s.startJob(domain.JobOptimize, previous, true,
		func(ctx context.Context) domain.JobResult {
			loops := s.engine.PostProcessing(approach)
			switch {
			case loops == domain.PostProcessingCanceled:
				return domain.JobResult{Outcome: domain.OutcomeCanceled, Code: loops}
			case loops < 0:
				return domain.Failed(loops, fmt.Errorf("post-processing %s failed", approach.Label()))
			}
			if withExport && !s.engine.ExportMesh(opts) {
				return domain.Failed(loops, errors.New("engine could not assemble the optimized mesh"))
			}
			return domain.Succeeded(loops)
		},
		func(result domain.JobResult) {
			if withExport && result.OK() {
				s.setViewMode(domain.ViewTexturedMesh)
				s.setCamera(domain.CameraTop)
				s.requestTransition(domain.StateVisualizing)
				s.engine.PostExportation(true)
				return
			}

			s.requestTransition(previous)
			switch {
			case result.OK():
				s.notify(fmt.Sprintf("Optimization done! Increased loop closures = %d", result.Code))
			case result.Canceled():
				s.notify("Optimization canceled")
			case withExport:
				s.notify("Optimization failed!")
			default:
				s.notify("Optimization failed")
			}
		})
}

func (s *CaptureSession) writeExportedMesh(name string) {
	name, err := domain.ValidateScanName(name)
	if err != nil {
		s.notify(fmt.Sprintf("Invalid name: %v", err))
		return
	}

	dir := s.workspace.ExportDir()
	archive := s.workspace.ExportArchivePath(name)
	previous := s.state

	s.requestTransition(domain.StateProcessing)
	s.startJob(domain.JobWriteExportedMesh, previous, false,
		func(ctx context.Context) domain.JobResult {
			if err := s.workspace.ResetExportDir(); err != nil {
				return domain.Failed(0, err)
			}
			if !s.engine.WriteExportedMesh(dir, name) {
				return domain.Failed(0, fmt.Errorf("engine could not write mesh to %s", dir))
			}
			if err := s.archiver.Zip(ctx, dir, archive); err != nil {
				return domain.Failed(0, err)
			}
			return domain.JobResult{Outcome: domain.OutcomeSucceeded, Path: archive}
		},
		func(result domain.JobResult) {
			s.requestTransition(previous)
			if !result.OK() {
				s.notify("Exporting mesh failed!")
				return
			}
			s.presenter.Share(result.Path)
		})
}
