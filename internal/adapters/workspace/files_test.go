package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rgbdslam/internal/domain"
)

func TestWorkspace_ListFiles(t *testing.T) {
	ws, err := New(t.TempDir())
	require.NoError(t, err)

	write := func(name string, size int) {
		require.NoError(t, os.WriteFile(filepath.Join(ws.Root(), name), make([]byte, size), 0644))
	}
	write("office.db", 10)
	write("attic.db", 20)
	write(domain.ScratchDatabaseName, 30)
	write(domain.RecoveryDatabaseName, 30)
	write("notes.txt", 5)
	require.NoError(t, ws.ResetExportDir())

	scans, err := ws.ListFiles(context.Background())
	require.NoError(t, err)

	names := lo.Map(scans, func(s domain.Scan, _ int) string { return s.Name })
	assert.Equal(t, []string{"attic", "office"}, names)
	assert.Equal(t, int64(20), scans[0].SizeBytes)
	assert.Equal(t, ws.ScanPath("office"), scans[1].Path)
}

func TestWorkspace_ListFilesCanceled(t *testing.T) {
	ws, err := New(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = ws.ListFiles(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
