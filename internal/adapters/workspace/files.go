package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"

	"rgbdslam/internal/domain"
	"rgbdslam/internal/ports"
)

var _ ports.ScanFileLister = (*Workspace)(nil)

// ListFiles returns the scan databases in the data directory, name sorted.
// Scratch databases and the export area are skipped.
func (w *Workspace) ListFiles(ctx context.Context) ([]domain.Scan, error) {
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scans := lo.FilterMap(entries, func(e os.DirEntry, _ int) (domain.Scan, bool) {
		if e.IsDir() || !strings.HasSuffix(e.Name(), domain.DatabaseExt) || domain.IsReservedDatabase(e.Name()) {
			return domain.Scan{}, false
		}
		info, err := e.Info()
		if err != nil {
			return domain.Scan{}, false
		}
		return domain.Scan{
			CreatedAt: info.ModTime().UTC(),
			Name:      domain.ScanNameFromPath(e.Name()),
			Path:      filepath.Join(w.root, e.Name()),
			SizeBytes: info.Size(),
			UpdatedAt: info.ModTime().UTC(),
		}, true
	})

	sort.Slice(scans, func(i, j int) bool { return scans[i].Name < scans[j].Name })
	return scans, nil
}
