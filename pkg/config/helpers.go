package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// SetValue sets a configuration value by key.
// Supported keys:
//   - data_dir, bin_dir, desktop_dir: string - layout overrides
//   - container_name, container_image: string - distrobox settings
//   - server_probe_timeout: duration - e.g. "2s"
//   - create_desktop_icon, add_to_menu: bool
//   - hooks_dir: string
//   - log_level: string - debug, info, warn, error
func (c *Config) SetValue(key, value string) error {
	switch key {
	case "data_dir":
		c.Settings.DataDir = value
	case "bin_dir":
		c.Settings.BinDir = value
	case "desktop_dir":
		c.Settings.DesktopDir = value
	case "container_name":
		c.Settings.ContainerName = value
	case "container_image":
		c.Settings.ContainerImage = value
	case "server_probe_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %s", key, value)
		}
		c.Settings.ServerProbeTimeout = d
	case "create_desktop_icon":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %s", key, value)
		}
		c.Settings.CreateDesktopIcon = boolVal
	case "add_to_menu":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %s", key, value)
		}
		c.Settings.AddToMenu = boolVal
	case "hooks_dir":
		c.Settings.HooksDir = value
	case "log_level":
		c.Settings.LogLevel = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// GetValue retrieves a configuration value by key as a string.
func (c *Config) GetValue(key string) (string, error) {
	switch key {
	case "data_dir":
		return c.Settings.DataDir, nil
	case "bin_dir":
		return c.Settings.BinDir, nil
	case "desktop_dir":
		return c.Settings.DesktopDir, nil
	case "container_name":
		return c.Settings.ContainerName, nil
	case "container_image":
		return c.Settings.ContainerImage, nil
	case "server_probe_timeout":
		return c.Settings.ServerProbeTimeout.String(), nil
	case "create_desktop_icon":
		return strconv.FormatBool(c.Settings.CreateDesktopIcon), nil
	case "add_to_menu":
		return strconv.FormatBool(c.Settings.AddToMenu), nil
	case "hooks_dir":
		return c.Settings.HooksDir, nil
	case "log_level":
		return c.Settings.LogLevel, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// ToMap converts the settings to a flat map keyed by yaml tag. This is
// useful for displaying the configuration.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string)

	settingsValue := reflect.ValueOf(c.Settings)
	settingsType := settingsValue.Type()

	for i := 0; i < settingsValue.NumField(); i++ {
		field := settingsType.Field(i)
		yamlTag := field.Tag.Get("yaml")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}
		yamlKey := strings.Split(yamlTag, ",")[0]

		fieldValue := settingsValue.Field(i)
		var strValue string
		switch v := fieldValue.Interface().(type) {
		case time.Duration:
			strValue = v.String()
		case bool:
			strValue = strconv.FormatBool(v)
		case string:
			strValue = v
		default:
			strValue = fmt.Sprintf("%v", v)
		}
		result[yamlKey] = strValue
	}

	return result
}
