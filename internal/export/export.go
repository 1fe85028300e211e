// Package export hands encrypted configuration artifacts to their destination.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/AlexZinkM/lily-wallet-setup/internal/common"
)

const (
	filePerm = 0o600
	dirPerm  = 0o700
)

// Exporter accepts an artifact, its content type and a file name
type Exporter interface {
	Export(ctx context.Context, data []byte, contentType, fileName string) error
}

// FileExistsError is an error when file already exists and is not empty
type FileExistsError struct {
	Path string
}

func (e *FileExistsError) Error() string {
	return fmt.Sprintf("file is not empty: %s", e.Path)
}

// IsFileExistsError checks if error is FileExistsError
func IsFileExistsError(err error) bool {
	var fe *FileExistsError
	return errors.As(err, &fe)
}

// DirExporter writes artifacts into a directory
type DirExporter struct {
	Dir string
}

// NewDirExporter creates a DirExporter for dir
func NewDirExporter(dir string) *DirExporter {
	return &DirExporter{Dir: dir}
}

// PathFor returns where Export would write fileName
func (e *DirExporter) PathFor(fileName string) string {
	if runtime.GOOS == "windows" {
		fileName = common.SafeFileName(fileName)
	}
	return filepath.Join(e.Dir, filepath.Base(fileName))
}

// Export writes data atomically. An existing non-empty file is never replaced.
func (e *DirExporter) Export(ctx context.Context, data []byte, _ string, fileName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(data) == 0 {
		return errors.New("refusing to export an empty artifact")
	}

	path := e.PathFor(fileName)
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}

	if fileInfo, err := os.Stat(path); err == nil && fileInfo.Size() > 0 {
		return &FileExistsError{Path: path}
	}

	return atomicWriteFile(path, data, filePerm)
}

func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	_ = os.Remove(tmp)

	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}
