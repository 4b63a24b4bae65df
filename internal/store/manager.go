// Package store persists user-defined rename patterns.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/takeshy/reshape/internal/logging"
	"github.com/takeshy/reshape/internal/model"
)

const (
	defaultConfigDir = ".reshape"
	patternsFile     = "patterns.json"
)

var (
	// ErrPatternExists is returned when adding a pattern that is already stored.
	ErrPatternExists = errors.New("pattern already exists")
	// ErrEmptyPattern is returned when adding a blank pattern.
	ErrEmptyPattern = errors.New("pattern must not be empty")
)

// Manager handles custom pattern storage. It is safe for concurrent use.
type Manager struct {
	dataPath string
	patterns []model.RenamePattern
	mu       sync.RWMutex
}

// DefaultConfigDir returns ~/.reshape.
func DefaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, defaultConfigDir), nil
}

// NewManager loads the patterns file in configDir (~/.reshape when empty).
// A missing file is an empty store; an unreadable or corrupt one is logged and
// treated as empty.
func NewManager(configDir string) (*Manager, error) {
	if configDir == "" {
		dir, err := DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	m := &Manager{dataPath: filepath.Join(configDir, patternsFile)}

	if err := m.load(); err != nil && !os.IsNotExist(err) {
		logging.Warn("ignoring unreadable pattern file", logging.String("path", m.dataPath), logging.Err(err))
		m.patterns = nil
	}

	return m, nil
}

// Path returns the location of the patterns file.
func (m *Manager) Path() string {
	return m.dataPath
}

// load loads patterns from file
func (m *Manager) load() error {
	data, err := os.ReadFile(m.dataPath)
	if err != nil {
		return err
	}

	var patterns []model.RenamePattern
	if err := json.Unmarshal(data, &patterns); err != nil {
		return err
	}
	m.patterns = patterns
	return nil
}

// Save writes patterns to file, creating the config directory if needed.
func (m *Manager) Save() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	patterns := m.patterns
	if patterns == nil {
		patterns = []model.RenamePattern{}
	}
	data, err := json.MarshalIndent(patterns, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal patterns: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.dataPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(m.dataPath, data, 0644)
}

// List returns the custom patterns.
func (m *Manager) List() []model.RenamePattern {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.RenamePattern, len(m.patterns))
	copy(out, m.patterns)
	return out
}

// All returns the default patterns followed by the custom ones.
func (m *Manager) All() []model.RenamePattern {
	return append(DefaultPatterns(), m.List()...)
}

// Add stores a new pattern. Patterns are compared case-insensitively.
func (m *Manager) Add(pattern, description string) error {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return ErrEmptyPattern
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.patterns {
		if strings.EqualFold(p.Pattern, pattern) {
			return fmt.Errorf("%w: %s", ErrPatternExists, pattern)
		}
	}
	m.patterns = append(m.patterns, model.RenamePattern{Pattern: pattern, Description: strings.TrimSpace(description)})
	return nil
}

// Remove deletes every stored pattern equal to pattern (case-insensitively)
// and reports whether anything was removed.
func (m *Manager) Remove(pattern string) bool {
	pattern = strings.TrimSpace(pattern)

	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.patterns[:0]
	removed := false
	for _, p := range m.patterns {
		if strings.EqualFold(p.Pattern, pattern) {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	m.patterns = kept
	return removed
}
