// Package fileops provides the filesystem primitives behind the project documents
package fileops

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileSystemOperations provides filesystem operations
type FileSystemOperations struct {
	logger *zap.Logger
}

// NewFileSystemOperations creates a new filesystem operations implementation
func NewFileSystemOperations(logger *zap.Logger) *FileSystemOperations {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSystemOperations{
		logger: logger.Named("filesystem"),
	}
}

// ReadFile reads the entire contents of a file
func (f *FileSystemOperations) ReadFile(ctx context.Context, path string) ([]byte, error) {
	f.logger.Debug("Reading file", zap.String("path", path))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	f.logger.Debug("File read successfully",
		zap.String("path", path),
		zap.Int("size", len(data)))

	return data, nil
}

// WriteFile writes data next to path under a temporary name and renames it
// into place, so readers see either the old or the new document.
func (f *FileSystemOperations) WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error {
	f.logger.Debug("Writing file",
		zap.String("path", path),
		zap.Int("size", len(data)),
		zap.String("permissions", perm.String()))

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		f.logger.Error("Failed to create directory",
			zap.String("dir", dir),
			zap.Error(err))
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		if rmErr := os.Remove(tmpName); rmErr != nil && !os.IsNotExist(rmErr) {
			f.logger.Warn("Failed to remove temp file", zap.String("path", tmpName), zap.Error(rmErr))
		}
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close file %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		cleanup()
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		f.logger.Error("Failed to move file into place",
			zap.String("path", path),
			zap.Error(err))
		cleanup()
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	f.logger.Info("File written successfully",
		zap.String("path", path),
		zap.Int("size", len(data)))

	return nil
}

// DeleteFile removes a file
func (f *FileSystemOperations) DeleteFile(ctx context.Context, path string) error {
	f.logger.Debug("Deleting file", zap.String("path", path))

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", path, err)
	}

	f.logger.Info("File deleted successfully", zap.String("path", path))
	return nil
}

// RemoveIfExists deletes path when it is present. A missing file is not an error.
func (f *FileSystemOperations) RemoveIfExists(ctx context.Context, path string) (bool, error) {
	exists, err := f.Exists(ctx, path)
	if err != nil {
		return false, err
	}
	if !exists {
		f.logger.Debug("Nothing to delete", zap.String("path", path))
		return false, nil
	}
	if err := f.DeleteFile(ctx, path); err != nil {
		return false, err
	}
	return true, nil
}

// Exists checks if a file or directory exists
func (f *FileSystemOperations) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check existence of %s: %w", path, err)
}

// CreateDirectory creates a directory with all parents
func (f *FileSystemOperations) CreateDirectory(ctx context.Context, path string, perm os.FileMode) error {
	f.logger.Debug("Creating directory",
		zap.String("path", path),
		zap.String("permissions", perm.String()))

	if err := os.MkdirAll(path, perm); err != nil {
		f.logger.Error("Failed to create directory",
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	return nil
}
