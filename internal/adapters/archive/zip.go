package archive

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"

	"rgbdslam/internal/logging"
	"rgbdslam/internal/ports"
)

// ZipArchiver packs export directories into zip files
type ZipArchiver struct{}

var _ ports.Archiver = (*ZipArchiver)(nil)

// NewZipArchiver creates a ZipArchiver
func NewZipArchiver() *ZipArchiver {
	return &ZipArchiver{}
}

// Zip writes every regular file under srcDir into dest. Entries are stored
// relative to srcDir. A partial archive is removed on failure.
func (a *ZipArchiver) Zip(ctx context.Context, srcDir, dest string) (err error) {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(dest)
		}
	}()

	zw := zip.NewWriter(out)
	files := 0
	walkErr := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if err := addFile(zw, path, filepath.ToSlash(rel)); err != nil {
			return fmt.Errorf("failed to add %s: %w", rel, err)
		}
		files++
		return nil
	})

	closeErr := zw.Close()
	if fileErr := out.Close(); closeErr == nil {
		closeErr = fileErr
	}
	if walkErr != nil {
		return walkErr
	}
	if closeErr != nil {
		return fmt.Errorf("failed to finish archive: %w", closeErr)
	}

	logging.Logger.Info("Archive written", "path", dest, "files", files)
	return nil
}

func addFile(zw *zip.Writer, path, name string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, in)
	return err
}
