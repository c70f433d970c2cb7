package preference

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"tldr-summary/internal/domain/entity"
)

type fileDocument struct {
	Platform string `yaml:"selected_ai_platform"`
	Model    string `yaml:"selected_ai_model"`
}

// FileStore keeps the preference in a YAML document. The file is read on
// every Load so edits apply without a restart. A missing file is an empty
// preference.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load implements Store.
func (s *FileStore) Load(context.Context) (entity.Preference, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entity.Preference{}, nil
	}
	if err != nil {
		return entity.Preference{}, fmt.Errorf("read preference file: %w", err)
	}

	var doc fileDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return entity.Preference{}, fmt.Errorf("parse preference file %s: %w", s.path, err)
	}
	return normalize(doc.Platform, doc.Model), nil
}

// Save implements Store. The document is written to a temporary file and
// renamed into place.
func (s *FileStore) Save(_ context.Context, pref entity.Preference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(fileDocument{Platform: pref.Provider.String(), Model: pref.Model})
	if err != nil {
		return fmt.Errorf("encode preference: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".preference-*.yaml")
	if err != nil {
		return fmt.Errorf("save preference: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save preference: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save preference: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("save preference: %w", err)
	}
	return nil
}
