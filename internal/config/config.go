// Package config loads scriptflow settings from a YAML file, writing the
// defaults on first use.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the default config location when set.
const EnvConfigPath = "SCRIPTFLOW_CONFIG"

// Settings holds user-tunable configuration.
type Settings struct {
	// TimeoutSeconds bounds each Execute call.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// CacheCapacity bounds the per-session file cache.
	CacheCapacity int `yaml:"cache_capacity"`

	// MaxFileSize is the largest file the context will read, in bytes.
	MaxFileSize int64 `yaml:"max_file_size"`

	// OwnerDir is the session owner directory used for path resolution.
	OwnerDir string `yaml:"owner_dir"`

	// AutoExecute runs extracted blocks by default; when false every run
	// is a dry run unless forced on the command line.
	AutoExecute bool `yaml:"auto_execute"`
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		TimeoutSeconds: 30,
		CacheCapacity:  5,
		MaxFileSize:    1024 * 1024,
		AutoExecute:    true,
	}
}

// Load reads settings from path, or from $SCRIPTFLOW_CONFIG, or from
// ~/.scriptflow/config.yaml. A missing file is created with defaults.
func Load(path string) (Settings, error) {
	resolved := resolvePath(path)

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			settings := DefaultSettings()
			if err := writeDefault(resolved, settings); err != nil {
				return Settings{}, err
			}
			return settings, nil
		}
		return Settings{}, err
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, err
	}
	return hydrateDefaults(settings), nil
}

func resolvePath(path string) string {
	if path != "" {
		return path
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return custom
	}
	return filepath.Join(userHomeDir(), ".scriptflow", "config.yaml")
}

func hydrateDefaults(settings Settings) Settings {
	defaults := DefaultSettings()
	if settings.TimeoutSeconds <= 0 {
		settings.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if settings.CacheCapacity <= 0 {
		settings.CacheCapacity = defaults.CacheCapacity
	}
	if settings.MaxFileSize <= 0 {
		settings.MaxFileSize = defaults.MaxFileSize
	}
	return settings
}

func writeDefault(path string, settings Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}
