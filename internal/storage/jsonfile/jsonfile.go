// Package jsonfile provides a storage.Storage backed by a single JSON
// file on disk.
package jsonfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// TempFilePrefix prefixes the scratch file used during writes.
	TempFilePrefix = ".students-tmp-"

	filePerm = 0o644
	dirPerm  = 0o755
)

// File is a whole-file medium. It is not safe for concurrent writers;
// storage.Store serializes access.
type File struct {
	path string
}

// New returns a File for path, creating the parent directory if needed.
// The file itself is only created by the first Write.
func New(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("jsonfile.New: empty path")
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, fmt.Errorf("jsonfile.New: create dir: %w", err)
	}

	return &File{path: path}, nil
}

// Path returns the file location.
func (f *File) Path() string {
	return f.path
}

// Read returns the file contents, or nil when the file does not exist.
func (f *File) Read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Read: %w", err)
	}
	return data, nil
}

// Write replaces the file contents.
func (f *File) Write(data []byte) error {
	if err := writeFileAtomic(f.path, data, filePerm); err != nil {
		return fmt.Errorf("Write: %w", err)
	}
	return nil
}

// Close is a no-op; the file is opened per call.
func (f *File) Close() error {
	return nil
}

// writeFileAtomic writes to a temp file in the same directory and renames
// it over filename, so readers see either the old or the new contents.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	tmpFile, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}

	return nil
}
