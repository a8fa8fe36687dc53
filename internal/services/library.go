package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/benbjohnson/clock"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"rgbdslam/internal/domain"
	"rgbdslam/internal/logging"
	"rgbdslam/internal/ports"
)

const verifyConcurrency = 4

var _ ports.ScanLibrary = (*LibraryService)(nil)

// LibraryService keeps the scan catalog in step with the databases on disk
type LibraryService struct {
	clock     clock.Clock
	files     ports.ScanFileLister
	inspector ports.ScanInspector
	repo      ports.ScanRepository
	workspace ports.Workspace
}

// NewLibraryService creates a new LibraryService
func NewLibraryService(
	repo ports.ScanRepository,
	files ports.ScanFileLister,
	inspector ports.ScanInspector,
	workspace ports.Workspace,
	clk clock.Clock,
) *LibraryService {
	return &LibraryService{
		clock:     clk,
		files:     files,
		inspector: inspector,
		repo:      repo,
		workspace: workspace,
	}
}

// Register records a saved or recovered database in the catalog
func (s *LibraryService) Register(ctx context.Context, path string) error {
	files, err := s.files.ListFiles(ctx)
	if err != nil {
		return err
	}
	scan, ok := lo.Find(files, func(sc domain.Scan) bool { return sc.Path == path })
	if !ok {
		return fmt.Errorf("%s: %w", domain.ScanNameFromPath(path), domain.ErrScanNotFound)
	}

	nodes, err := s.inspector.Inspect(ctx, path)
	if err != nil {
		logging.Logger.Warn("Failed to inspect scan", "path", path, "error", err)
	}
	scan.Nodes = nodes
	scan.UpdatedAt = s.clock.Now()

	if err := s.repo.Upsert(ctx, scan); err != nil {
		return fmt.Errorf("failed to register scan %s: %w", scan.Name, err)
	}
	logging.Logger.Info("Scan registered", "name", scan.Name, "nodes", nodes, "size", scan.SizeBytes)
	return nil
}

// Opened records that a database was opened. Databases copied into the data
// directory by hand are registered on first open.
func (s *LibraryService) Opened(ctx context.Context, path string) error {
	name := domain.ScanNameFromPath(path)
	err := s.repo.MarkOpened(ctx, name, s.clock.Now())
	if !errors.Is(err, domain.ErrScanNotFound) {
		return err
	}
	if err := s.Register(ctx, path); err != nil {
		return err
	}
	return s.repo.MarkOpened(ctx, name, s.clock.Now())
}

// List returns the scans on disk, most recently updated first. Catalog
// entries whose database is gone are pruned.
func (s *LibraryService) List(ctx context.Context) ([]domain.Scan, error) {
	files, err := s.files.ListFiles(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	known := lo.KeyBy(catalog, func(sc domain.Scan) string { return sc.Name })
	onDisk := lo.KeyBy(files, func(sc domain.Scan) string { return sc.Name })

	scans := lo.Map(files, func(file domain.Scan, _ int) domain.Scan {
		if entry, ok := known[file.Name]; ok {
			file.CreatedAt = entry.CreatedAt
			file.LastOpenedAt = entry.LastOpenedAt
			file.Nodes = entry.Nodes
		}
		return file
	})

	for _, stale := range lo.Reject(catalog, func(sc domain.Scan, _ int) bool { return lo.HasKey(onDisk, sc.Name) }) {
		logging.Logger.Info("Pruning catalog entry without database", "name", stale.Name)
		if err := s.repo.Delete(ctx, stale.Name); err != nil {
			logging.Logger.Warn("Failed to prune catalog entry", "name", stale.Name, "error", err)
		}
	}

	sort.SliceStable(scans, func(i, j int) bool {
		return scans[i].UpdatedAt.After(scans[j].UpdatedAt)
	})
	return scans, nil
}

// Delete removes a scan database and its catalog entry
func (s *LibraryService) Delete(ctx context.Context, name string) error {
	name, err := domain.ValidateScanName(name)
	if err != nil {
		return err
	}

	path := s.workspace.ScanPath(name)
	if _, exists := s.workspace.Stat(path); !exists {
		return fmt.Errorf("%s: %w", name, domain.ErrScanNotFound)
	}
	if err := s.workspace.Remove(path); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, name); err != nil && !errors.Is(err, domain.ErrScanNotFound) {
		return fmt.Errorf("failed to delete catalog entry: %w", err)
	}

	logging.Logger.Info("Scan deleted", "name", name)
	return nil
}

// Verify opens every scan database and reports the node count of each.
// Readable databases refresh their catalog entry.
func (s *LibraryService) Verify(ctx context.Context) ([]domain.ScanCheck, error) {
	files, err := s.files.ListFiles(ctx)
	if err != nil {
		return nil, err
	}

	checks := make([]domain.ScanCheck, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(verifyConcurrency)

	for i, file := range files {
		g.Go(func() error {
			nodes, err := s.inspector.Inspect(gctx, file.Path)
			checks[i] = domain.ScanCheck{Err: err, Name: file.Name, Nodes: nodes, Path: file.Path}
			if err != nil {
				logging.Logger.Warn("Scan failed verification", "name", file.Name, "error", err)
				// Non-fatal, keep checking the others
				return nil
			}
			file.Nodes = nodes
			return s.repo.Upsert(gctx, file)
		})
	}

	if err := g.Wait(); err != nil {
		return checks, fmt.Errorf("failed to verify scans: %w", err)
	}
	return checks, nil
}
