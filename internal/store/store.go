// Package store persists the stock records across process restarts.
// The on-disk form is a single JSON document holding one snapshot per
// product: id, bounded sales history, and the in-progress day count.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"restock-engine/internal/stock"
)

// Store reads and writes the snapshot document at a fixed path
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Load reads the snapshot document. A missing file is not an error and
// yields (nil, nil); the caller builds fresh records from the catalog.
// A present but unparsable document is an error; the caller logs it and
// falls back to fresh state.
func (s *Store) Load() ([]stock.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}

	var snapshots []stock.Snapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to parse save file: %w", err)
	}
	if snapshots == nil {
		return nil, fmt.Errorf("save file holds no records")
	}

	return snapshots, nil
}

// Save writes the snapshot document. The write goes to a temp file in
// the same directory and is renamed into place, so a failed write
// leaves the prior document intact.
func (s *Store) Save(snapshots []stock.Snapshot) error {
	data, err := json.MarshalIndent(snapshots, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp save file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close save file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace save file: %w", err)
	}

	return nil
}
