package gameday

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// fileStore keeps the state as one JSON document on disk.
type fileStore struct {
	path string
}

// NewFileStore returns a Repository backed by the JSON document at path.
func NewFileStore(path string) Repository {
	return &fileStore{path: path}
}

func (f *fileStore) Load() (State, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("No state file found, starting empty", "path", f.path)
		return State{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrPersistence, f.path, err)
	}
	state, err := UnmarshalState(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return state, nil
}

// Save writes to a temporary file first and renames it over the old document.
func (f *fileStore) Save(state State) error {
	data, err := MarshalState(state)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrPersistence, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %w", ErrPersistence, tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrPersistence, tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("%w: rename to %s: %w", ErrPersistence, f.path, err)
	}
	log.Debug("Saved state file", "path", f.path, "days", len(state))
	return nil
}
