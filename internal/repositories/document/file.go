package document

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// FileConfig holds configuration for the JSON file backend
type FileConfig struct {
	// Dir is the directory holding one <key>.json file per document
	Dir string
}

// fileBackend keeps each document in its own JSON file
type fileBackend struct {
	dir string
}

// NewFile creates a file backend, creating the directory if needed
func NewFile(cfg *FileConfig) (*fileBackend, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Dir == "" {
		return nil, errors.New("directory cannot be empty")
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create data directory")
	}

	return &fileBackend{dir: cfg.Dir}, nil
}

// Read returns the contents of the document file
func (b *fileBackend) Read(_ context.Context, key string) ([]byte, error) {
	path, err := b.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrDocumentNotFound
		}
		return nil, errors.Wrap(err, "failed to read document file")
	}

	return data, nil
}

// Write replaces the document file through a temp file and rename
func (b *fileBackend) Write(_ context.Context, key string, data []byte) error {
	path, err := b.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(b.dir, key+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to write temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close temp file")
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(err, "failed to replace document file")
	}

	return nil
}

func (b *fileBackend) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", errors.Errorf("invalid document key %q", key)
	}
	return filepath.Join(b.dir, key+".json"), nil
}
