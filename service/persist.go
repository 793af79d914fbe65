package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/TejasDeepLearning/tenant-dashboard-3/model"
)

// Persistence loads and saves a named agreement collection. Load failure
// is handled by the store as an empty collection; save failure propagates
// to the caller of the mutating operation.
type Persistence interface {
	Load(name string) ([]model.Agreement, error)
	Save(name string, records []model.Agreement) error
}

// JSONFileStore persists each collection as one JSON file on local disk.
type JSONFileStore struct {
	paths map[string]string
}

// NewJSONFileStore maps collection names to file paths.
func NewJSONFileStore(paths map[string]string) *JSONFileStore {
	return &JSONFileStore{paths: paths}
}

func (s *JSONFileStore) path(name string) (string, error) {
	p, ok := s.paths[name]
	if !ok {
		return "", fmt.Errorf("unknown collection: %s", name)
	}
	return p, nil
}

func (s *JSONFileStore) Load(name string) ([]model.Agreement, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Agreement{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var records []model.Agreement
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}

// Save writes the full collection through a temp file and rename so a
// crashed write never leaves a truncated collection behind.
func (s *JSONFileStore) Save(name string, records []model.Agreement) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	if records == nil {
		records = []model.Agreement{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
