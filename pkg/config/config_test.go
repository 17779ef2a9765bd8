package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shiro123444/sideload/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultContainerName, cfg.Settings.ContainerName)
	assert.Equal(t, DefaultContainerImage, cfg.Settings.ContainerImage)
	assert.Equal(t, DefaultServerProbeTimeout, cfg.Settings.ServerProbeTimeout)
	assert.True(t, cfg.Settings.CreateDesktopIcon)
	assert.True(t, cfg.Settings.AddToMenu)
	assert.Equal(t, "info", cfg.Settings.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultContainerName, cfg.Settings.ContainerName)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.ErrorIs(t, err, errors.ErrEmptyConfigPath)
}

func TestLoadConfig_PartialFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("settings:\n  log_level: debug\n"), 0o644))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Settings.LogLevel)
	assert.Equal(t, DefaultContainerName, cfg.Settings.ContainerName)
	assert.Equal(t, DefaultServerProbeTimeout, cfg.Settings.ServerProbeTimeout)
}

func TestLoadConfigFromReader_ParseError(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader("settings: [not a map"))
	assert.ErrorIs(t, err, errors.ErrConfigParse)
}

func TestLoadConfigFromReader_InvalidLogLevel(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader("settings:\n  log_level: loud\n"))
	assert.ErrorIs(t, err, errors.ErrConfigValidation)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Settings.ContainerName = "custom-box"
	cfg.Settings.ServerProbeTimeout = 5 * time.Second
	cfg.Settings.CreateDesktopIcon = false

	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "custom-box", loaded.Settings.ContainerName)
	assert.Equal(t, 5*time.Second, loaded.Settings.ServerProbeTimeout)
	assert.False(t, loaded.Settings.CreateDesktopIcon)
}

func TestSetValue(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.SetValue("container_name", "box"))
	require.NoError(t, cfg.SetValue("server_probe_timeout", "3s"))
	require.NoError(t, cfg.SetValue("create_desktop_icon", "false"))
	require.NoError(t, cfg.SetValue("log_level", "debug"))

	assert.Equal(t, "box", cfg.Settings.ContainerName)
	assert.Equal(t, 3*time.Second, cfg.Settings.ServerProbeTimeout)
	assert.False(t, cfg.Settings.CreateDesktopIcon)
	assert.Equal(t, "debug", cfg.Settings.LogLevel)
}

func TestSetValue_InvalidValues(t *testing.T) {
	cfg := DefaultConfig()

	assert.Error(t, cfg.SetValue("create_desktop_icon", "maybe"))
	assert.Error(t, cfg.SetValue("server_probe_timeout", "soon"))
	assert.Error(t, cfg.SetValue("no_such_key", "x"))
}

func TestGetValue(t *testing.T) {
	cfg := DefaultConfig()

	value, err := cfg.GetValue("container_image")
	require.NoError(t, err)
	assert.Equal(t, DefaultContainerImage, value)

	value, err = cfg.GetValue("add_to_menu")
	require.NoError(t, err)
	assert.Equal(t, "true", value)

	_, err = cfg.GetValue("no_such_key")
	assert.Error(t, err)
}

func TestToMap(t *testing.T) {
	m := DefaultConfig().ToMap()

	assert.Equal(t, DefaultContainerName, m["container_name"])
	assert.Equal(t, "true", m["create_desktop_icon"])
	assert.Equal(t, DefaultServerProbeTimeout.String(), m["server_probe_timeout"])
}
