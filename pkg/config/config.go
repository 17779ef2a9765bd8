// Package config provides configuration management for the sideload
// installer. It handles loading, validating, and saving application settings
// from a YAML file, and provides sensible defaults so the tool works with no
// configuration at all.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shiro123444/sideload/pkg/errors"
	"github.com/shiro123444/sideload/pkg/fsutil"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Settings Settings `yaml:"settings"`
}

// Settings represents general application settings.
type Settings struct {
	// Layout overrides. Empty values fall back to the XDG defaults.
	DataDir    string `yaml:"data_dir,omitempty"`
	BinDir     string `yaml:"bin_dir,omitempty"`
	DesktopDir string `yaml:"desktop_dir,omitempty"`

	// Container settings used by the distrobox strategy.
	ContainerName  string `yaml:"container_name"`
	ContainerImage string `yaml:"container_image"`

	// ServerProbeTimeout bounds the --help probe used for server
	// detection.
	ServerProbeTimeout time.Duration `yaml:"server_probe_timeout"`

	// Default integration behavior, overridable per install via flags.
	CreateDesktopIcon bool `yaml:"create_desktop_icon"`
	AddToMenu         bool `yaml:"add_to_menu"`

	// HooksDir holds optional Tengo hook scripts. Empty disables hooks.
	HooksDir string `yaml:"hooks_dir,omitempty"`

	LogLevel string `yaml:"log_level"` // error, warn, info, debug
}

// Default configuration values.
const (
	DefaultContainerName  = "ubuntu-apps"
	DefaultContainerImage = "ubuntu:24.04"

	// DefaultServerProbeTimeout is how long the --help probe may run.
	DefaultServerProbeTimeout = 2 * time.Second

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Settings: Settings{
			ContainerName:      DefaultContainerName,
			ContainerImage:     DefaultContainerImage,
			ServerProbeTimeout: DefaultServerProbeTimeout,
			CreateDesktopIcon:  true,
			AddToMenu:          true,
			LogLevel:           "info",
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the
// default configuration.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve config path: %s", path)
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// applyDefaults fills in zero values left by a partial config file.
func (c *Config) applyDefaults() {
	if c.Settings.ContainerName == "" {
		c.Settings.ContainerName = DefaultContainerName
	}
	if c.Settings.ContainerImage == "" {
		c.Settings.ContainerImage = DefaultContainerImage
	}
	if c.Settings.ServerProbeTimeout == 0 {
		c.Settings.ServerProbeTimeout = DefaultServerProbeTimeout
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = "info"
	}
}

// SaveConfig saves configuration to a file.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve config path: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeDefault); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	// Write through a temp file so a crash never leaves a half-written
	// config behind.
	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return errors.Wrap(err, "failed to create config file")
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(err, "failed to encode config")
	}

	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(err, "failed to replace config file")
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if c.Settings.ServerProbeTimeout < 0 {
		return errors.Wrap(errors.ErrConfigValidation, "server_probe_timeout cannot be negative")
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Settings.LogLevel)] {
		return errors.Wrapf(errors.ErrConfigValidation, "invalid log level: %s", c.Settings.LogLevel)
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
// When the home directory cannot be resolved it falls back to a path
// relative to the working directory.
func GetDefaultConfigPath() string {
	configHome, err := fsutil.ConfigHome()
	if err != nil {
		return filepath.Join(".config", "sideload", "config.yaml")
	}
	return filepath.Join(configHome, "sideload", "config.yaml")
}
