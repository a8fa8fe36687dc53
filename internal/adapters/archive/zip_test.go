package archive

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZipArchiver_Zip(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "mesh.obj"), []byte("v 0 0 0\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(src, "textures"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "textures", "mesh.jpg"), []byte("jpeg"), 0644))
	dest := filepath.Join(t.TempDir(), "mesh.zip")

	require.NoError(t, NewZipArchiver().Zip(context.Background(), src, dest))

	r, err := zip.OpenReader(dest)
	require.NoError(t, err)
	defer r.Close()

	contents := map[string]string{}
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		contents[f.Name] = string(data)
	}

	assert.Equal(t, map[string]string{
		"mesh.obj":          "v 0 0 0\n",
		"textures/mesh.jpg": "jpeg",
	}, contents)
}

func TestZipArchiver_CanceledRemovesArchive(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "mesh.obj"), []byte("v"), 0644))
	dest := filepath.Join(t.TempDir(), "mesh.zip")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewZipArchiver().Zip(ctx, src, dest)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, dest)
}

func TestZipArchiver_MissingSource(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "mesh.zip")

	err := NewZipArchiver().Zip(context.Background(), filepath.Join(t.TempDir(), "nope"), dest)

	assert.Error(t, err)
	assert.NoFileExists(t, dest)
}
