// Package history keeps the most recent batch of variations on local disk so
// it survives restarts.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mahmudulbisd/stockgen-ai-pro/models"
)

// Store persists a single batch at Path.
type Store struct {
	Path string
}

// NewStore returns a Store writing to path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Save replaces the stored batch. An empty batch leaves the file untouched.
func (s *Store) Save(variations []models.StockAssetVariation) error {
	if len(variations) == 0 {
		return nil
	}

	data, err := json.Marshal(variations)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), ".history-*")
	if err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}

// Load returns the stored batch, or nil if nothing has been saved yet.
func (s *Store) Load() ([]models.StockAssetVariation, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var variations []models.StockAssetVariation
	if err := json.Unmarshal(data, &variations); err != nil {
		return nil, fmt.Errorf("decoding history: %w", err)
	}
	return variations, nil
}
