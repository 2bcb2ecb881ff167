// Package file provides the TOML-backed configuration store.
// Configuration lives in a single file under the zipsight config
// directory and falls back to defaults when absent.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/zipsight-labs/zipsight-cli/internal/core/domain"
)

// DefaultDirName is the config directory under the user's home.
const DefaultDirName = ".zipsight"

// Settings is the persisted client configuration.
type Settings struct {
	// ServerURL is the analysis service base URL.
	ServerURL string `toml:"server_url"`

	// TimeoutSeconds is the per-request timeout.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// PageSize is the number of rows shown per table page.
	PageSize int `toml:"page_size"`

	// BlockSize is the number of pagination controls shown at once.
	BlockSize int `toml:"block_size"`

	// ChartDir is where rendered chart images are written.
	ChartDir string `toml:"chart_dir"`
}

// Timeout returns the request timeout as a duration.
func (s Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// ConfigStore loads and saves Settings from a TOML file.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	settings Settings
}

// NewConfigStore creates a store rooted at configDir.
// If configDir is empty, defaults to ~/.zipsight/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, DefaultDirName)
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		settings: defaults(configDir),
	}

	if err := s.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	return s, nil
}

// defaults returns the settings used when no config file exists.
func defaults(configDir string) Settings {
	return Settings{
		ServerURL:      "http://localhost:5000",
		TimeoutSeconds: 60,
		PageSize:       domain.DefaultPageSize,
		BlockSize:      domain.DefaultBlockSize,
		ChartDir:       filepath.Join(configDir, "charts"),
	}
}

// Settings returns the current settings.
func (s *ConfigStore) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update applies and persists new settings, keeping defaults for any
// zero-valued field.
func (s *ConfigStore) Update(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := defaults(filepath.Dir(s.filePath))
	if settings.ServerURL == "" {
		settings.ServerURL = base.ServerURL
	}
	if settings.TimeoutSeconds <= 0 {
		settings.TimeoutSeconds = base.TimeoutSeconds
	}
	if settings.PageSize <= 0 {
		settings.PageSize = base.PageSize
	}
	if settings.BlockSize <= 0 {
		settings.BlockSize = base.BlockSize
	}
	if settings.ChartDir == "" {
		settings.ChartDir = base.ChartDir
	}

	s.settings = settings
	return s.save()
}

// Load reads settings from disk, layering them over defaults.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	settings := defaults(filepath.Dir(s.filePath))
	if err := toml.Unmarshal(data, &settings); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	s.settings = settings
	return nil
}

// Save persists the current settings to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// FilePath returns the location of the config file.
func (s *ConfigStore) FilePath() string {
	return s.filePath
}
