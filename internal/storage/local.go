package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileStore saves and retrieves file bodies by relative path. Resume
// and avatar rows only hold the path; this is the other half.
type FileStore interface {
	Save(path string, r io.Reader) (int64, error)
	Open(path string) (io.ReadCloser, error)
	Remove(path string) error
}

// LocalStore keeps files under a single root directory on disk.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) Save(path string, r io.Reader) (int64, error) {
	full := filepath.Join(s.root, filepath.Clean(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		return 0, fmt.Errorf("failed to write file: %w", err)
	}
	return n, nil
}

func (s *LocalStore) Open(path string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.root, filepath.Clean(path)))
}

func (s *LocalStore) Remove(path string) error {
	err := os.Remove(filepath.Join(s.root, filepath.Clean(path)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
