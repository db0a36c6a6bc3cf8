package authstore

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/errors"
)

// FileStorage persists the blob as a file named after the key inside dir.
// The CLI uses it to keep a login across invocations.
type FileStorage struct {
	dir string
	key string
}

func NewFileStorage(dir, key string) *FileStorage {
	return &FileStorage{dir: dir, key: key}
}

func (s *FileStorage) path() string {
	return filepath.Join(s.dir, s.key+".json")
}

func (s *FileStorage) Get(_ context.Context) ([]byte, bool, error) {
	blob, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, "read blob", slog.String("path", s.path()))
	}
	return blob, true, nil
}

func (s *FileStorage) Set(_ context.Context, blob []byte) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return errors.Wrap(err, "create storage dir", slog.String("dir", s.dir))
	}
	if err := os.WriteFile(s.path(), blob, 0o600); err != nil {
		return errors.Wrap(err, "write blob", slog.String("path", s.path()))
	}
	return nil
}

func (s *FileStorage) Delete(_ context.Context) error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove blob", slog.String("path", s.path()))
	}
	return nil
}
