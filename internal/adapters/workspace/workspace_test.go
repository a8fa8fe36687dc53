package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rgbdslam/internal/domain"
)

func TestWorkspace_Paths(t *testing.T) {
	root := t.TempDir()
	ws, err := New(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "office.db"), ws.ScanPath("office"))
	assert.Equal(t, filepath.Join(root, domain.ScratchDatabaseName), ws.ScratchPath())
	assert.Equal(t, filepath.Join(root, domain.RecoveryDatabaseName), ws.RecoveryPath())
	assert.Equal(t, filepath.Join(root, "Export"), ws.ExportDir())
	assert.Equal(t, filepath.Join(root, "office.zip"), ws.ExportArchivePath("office"))
}

func TestWorkspace_StatRemoveMove(t *testing.T) {
	ws, err := New(t.TempDir())
	require.NoError(t, err)

	scratch := ws.ScratchPath()
	_, exists := ws.Stat(scratch)
	assert.False(t, exists)

	require.NoError(t, os.WriteFile(scratch, make([]byte, 42), 0644))
	size, exists := ws.Stat(scratch)
	assert.True(t, exists)
	assert.Equal(t, int64(42), size)

	target := ws.ScanPath("moved")
	require.NoError(t, ws.Move(scratch, target))
	_, exists = ws.Stat(target)
	assert.True(t, exists)

	require.NoError(t, ws.Remove(target))
	require.NoError(t, ws.Remove(target), "removing a missing file is not an error")

	_, exists = ws.Stat(ws.ExportDir())
	assert.False(t, exists, "directories are not files")
}

func TestWorkspace_ResetExportDir(t *testing.T) {
	ws, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, ws.ResetExportDir())
	stale := filepath.Join(ws.ExportDir(), "old.obj")
	require.NoError(t, os.WriteFile(stale, []byte("v 0 0 0"), 0644))

	require.NoError(t, ws.ResetExportDir())

	entries, err := os.ReadDir(ws.ExportDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWorkspace_LockIsExclusive(t *testing.T) {
	root := t.TempDir()
	first, err := New(root)
	require.NoError(t, err)
	second, err := New(root)
	require.NoError(t, err)

	lock, err := first.Lock()
	require.NoError(t, err)

	_, err = second.Lock()
	assert.ErrorIs(t, err, domain.ErrWorkspaceLocked)

	require.NoError(t, lock.Release())
	require.NoError(t, lock.Release())

	again, err := second.Lock()
	require.NoError(t, err)
	require.NoError(t, again.Release())
}
