// Package storage keeps attachment files on local disk under
// collision-resistant names so identical original filenames never overwrite
// each other.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore writes attachment payloads below a single root directory.
type DiskStore struct {
	dir string
}

// SaveResult describes a stored file.
type SaveResult struct {
	StoredName string
	Size       int64
}

// NewDiskStore creates the root directory if needed.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save writes the reader to disk under a fresh opaque name, keeping the
// original extension. A temp file plus rename keeps partially written files
// out of the store.
func (s *DiskStore) Save(reader io.Reader, originalFilename string) (*SaveResult, error) {
	storedName := storageName(originalFilename)
	fullPath := filepath.Join(s.dir, storedName)
	tmpPath := fullPath + ".tmp"

	f, err := os.Create(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	size, err := io.Copy(f, reader)
	if err != nil {
		f.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("close file: %w", err)
	}
	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("rename file: %w", err)
	}

	return &SaveResult{StoredName: storedName, Size: size}, nil
}

// Open returns the stored file for reading. The caller closes it.
func (s *DiskStore) Open(storedName string) (*os.File, error) {
	f, err := os.Open(filepath.Join(s.dir, filepath.Base(storedName)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", storedName)
		}
		return nil, fmt.Errorf("open file %s: %w", storedName, err)
	}
	return f, nil
}

// Remove deletes the stored file. Missing files are not an error: the
// metadata record is the source of truth and removal is idempotent.
func (s *DiskStore) Remove(storedName string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(storedName)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file %s: %w", storedName, err)
	}
	return nil
}

// Path returns the absolute location of a stored file.
func (s *DiskStore) Path(storedName string) string {
	return filepath.Join(s.dir, filepath.Base(storedName))
}

func storageName(originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	return uuid.NewString() + ext
}
