package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultPath returns the settings file under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "kmctl", "settings.yaml"), nil
}

// FileStore keeps settings in a YAML file.
type FileStore struct {
	Path string
}

// NewFileStore returns a store at path, or at DefaultPath when path is empty.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &FileStore{Path: path}, nil
}

// Load reads the file. A missing file is not an error.
func (s *FileStore) Load() (Settings, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	var out Settings
	if err := yaml.Unmarshal(data, &out); err != nil {
		return Settings{}, fmt.Errorf("failed to parse %s: %w", s.Path, err)
	}
	return out, nil
}

// Save writes the file, creating its directory.
func (s *FileStore) Save(v Settings) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return os.Rename(tmp, s.Path)
}

// MemoryStore keeps settings in memory.
type MemoryStore struct {
	mu    sync.Mutex
	value Settings
	Saves int
}

// NewMemoryStore returns a store holding initial.
func NewMemoryStore(initial Settings) *MemoryStore {
	return &MemoryStore{value: initial}
}

func (s *MemoryStore) Load() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, nil
}

func (s *MemoryStore) Save(v Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
	s.Saves++
	return nil
}
