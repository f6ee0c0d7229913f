package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"lottokit/internal/pkg/models"
)

// Ensure FileStore implements Store
var _ Store = (*FileStore)(nil)

// FileStore persists each game's records as a JSON array in <dir>/<game>.json.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(game string) string {
	return filepath.Join(s.dir, game+".json")
}

func (s *FileStore) Load(game string) ([]models.DrawRecord, error) {
	data, err := os.ReadFile(s.path(game))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var records []models.DrawRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse store file %s: %w", s.path(game), err)
	}
	return records, nil
}

func (s *FileStore) Save(game string, records []models.DrawRecord) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}

	// Write-then-rename so a crashed run never leaves a torn file behind.
	tmp := s.path(game) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path(game)); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}
