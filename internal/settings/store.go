package settings

import (
	"bytes"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	// settingsFileName is the name of the default settings file.
	settingsFileName = "settings.yaml"
	// userConfigDir is the subdirectory under home for replkit configuration.
	userConfigDir = ".config/replkit"
)

// Store loads and saves the settings map.
type Store interface {
	Load() (map[string]any, error)
	Save(map[string]any) error
}

// UnsupportedFormatError is returned for a file extension FileStore cannot
// encode.
type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported settings format %q (use .yaml, .yml or .toml)", filepath.Ext(e.Path))
}

// DefaultPath returns ~/.config/replkit/settings.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir, settingsFileName), nil
}

// FileStore provides thread-safe access to a settings file.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store for path. The format follows the extension.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the settings file path.
func (s *FileStore) Path() string {
	return s.path
}

type format int

const (
	formatYAML format = iota
	formatTOML
)

func (s *FileStore) format() (format, error) {
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".toml":
		return formatTOML, nil
	}
	return 0, &UnsupportedFormatError{Path: s.path}
}

// Load reads and parses the settings file. A missing file yields an empty
// map.
func (s *FileStore) Load() (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := s.format()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	values := map[string]any{}
	switch f {
	case formatYAML:
		err = yaml.Unmarshal(data, &values)
	case formatTOML:
		_, err = toml.Decode(string(data), &values)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", s.path, err)
	}
	if values == nil {
		values = map[string]any{}
	}
	return values, nil
}

// Save writes values to the settings file, creating its directory if
// needed.
func (s *FileStore) Save(values map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.format()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	var data []byte
	switch f {
	case formatYAML:
		data, err = yaml.Marshal(values)
	case formatTOML:
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(values)
		data = buf.Bytes()
	}
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// MemoryStore keeps settings in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]any
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store holding a copy of values.
func NewMemoryStore(values map[string]any) *MemoryStore {
	return &MemoryStore{values: maps.Clone(values)}
}

// Load returns a copy of the stored values.
func (m *MemoryStore) Load() (map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.values == nil {
		return map[string]any{}, nil
	}
	return maps.Clone(m.values), nil
}

// Save replaces the stored values.
func (m *MemoryStore) Save(values map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = maps.Clone(values)
	return nil
}
