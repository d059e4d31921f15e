package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file
const (
	EnvGit            = "GITSYNC_GIT"
	EnvLogFile        = "GITSYNC_LOG_FILE"
	EnvLogMaxSize     = "GITSYNC_LOG_MAX_SIZE"
	EnvLogMaxBackups  = "GITSYNC_LOG_MAX_BACKUPS"
	EnvLogMaxAge      = "GITSYNC_LOG_MAX_AGE"
	EnvNoColor        = "NO_COLOR"
	EnvConfigHome     = "XDG_CONFIG_HOME"
	defaultGitBinary  = "git"
	configDirName     = "gitsync"
	configFileName    = "config.yaml"
	defaultMaxSizeMB  = 1
	defaultMaxBackups = 2
	defaultMaxAgeDays = 30
)

// LogConfig controls the optional log file rotation
type LogConfig struct {
	MaxSize    int `yaml:"maxSize,omitempty"`
	MaxBackups int `yaml:"maxBackups,omitempty"`
	MaxAge     int `yaml:"maxAge,omitempty"`
}

// UserConfig represents the user configuration
type UserConfig struct {
	Git     string    `yaml:"git,omitempty"`
	LogFile string    `yaml:"logFile,omitempty"`
	Log     LogConfig `yaml:"log,omitempty"`
	Color   *bool     `yaml:"color,omitempty"`
}

// Default returns the configuration used when no file or environment overrides exist
func Default() *UserConfig {
	return &UserConfig{
		Git: defaultGitBinary,
		Log: LogConfig{
			MaxSize:    defaultMaxSizeMB,
			MaxBackups: defaultMaxBackups,
			MaxAge:     defaultMaxAgeDays,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/gitsync/config.yaml, falling back to ~/.config
func DefaultPath() string {
	if dir := os.Getenv(EnvConfigHome); dir != "" {
		return filepath.Join(dir, configDirName, configFileName)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", configDirName, configFileName)
}

// Load reads the configuration at path and applies environment overrides.
// An empty path means DefaultPath. A missing file is not an error.
func Load(path string) (*UserConfig, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	cfg.fillDefaults()

	return cfg, nil
}

func (c *UserConfig) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *UserConfig) applyEnv() {
	if git := os.Getenv(EnvGit); git != "" {
		c.Git = git
	}
	if logFile := os.Getenv(EnvLogFile); logFile != "" {
		c.LogFile = logFile
	}
	if v, ok := positiveEnv(EnvLogMaxSize); ok {
		c.Log.MaxSize = v
	}
	if maxBackupsStr := os.Getenv(EnvLogMaxBackups); maxBackupsStr != "" {
		if maxBackups, err := strconv.Atoi(maxBackupsStr); err == nil && maxBackups >= 0 {
			c.Log.MaxBackups = maxBackups
		}
	}
	if v, ok := positiveEnv(EnvLogMaxAge); ok {
		c.Log.MaxAge = v
	}
	if os.Getenv(EnvNoColor) != "" {
		off := false
		c.Color = &off
	}
}

// fillDefaults replaces zero values a file may have left behind
func (c *UserConfig) fillDefaults() {
	if c.Git == "" {
		c.Git = defaultGitBinary
	}
	if c.Log.MaxSize <= 0 {
		c.Log.MaxSize = defaultMaxSizeMB
	}
	if c.Log.MaxAge <= 0 {
		c.Log.MaxAge = defaultMaxAgeDays
	}
}

// ColorEnabled reports whether console output may be colored
func (c *UserConfig) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}

func positiveEnv(name string) (int, bool) {
	s := os.Getenv(name)
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
