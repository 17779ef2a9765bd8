package fsutil

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// DataHome returns the per-user data root.
// It honors XDG_DATA_HOME and falls back to ~/.local/share.
func DataHome() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return xdg, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}

// BinHome returns the per-user executable directory (~/.local/bin).
func BinHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "bin"), nil
}

// ConfigHome returns the per-user configuration root.
// It honors XDG_CONFIG_HOME and falls back to ~/.config.
func ConfigHome() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}

// DesktopDir returns the user's desktop folder. The localized name is read
// from the XDG user-dirs configuration when present; otherwise the literal
// "Desktop" under the home directory is used. The returned directory may not
// exist.
func DesktopDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configHome, err := ConfigHome()
	if err == nil {
		if dir := readUserDirsEntry(filepath.Join(configHome, "user-dirs.dirs"), "XDG_DESKTOP_DIR", home); dir != "" {
			return dir, nil
		}
	}
	return filepath.Join(home, "Desktop"), nil
}

// readUserDirsEntry parses a single XDG_*_DIR assignment out of a
// user-dirs.dirs file, expanding a leading $HOME.
func readUserDirsEntry(path, key, home string) string {
	file, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, key+"=") {
			continue
		}
		value := strings.Trim(strings.TrimPrefix(line, key+"="), `"`)
		value = strings.ReplaceAll(value, "$HOME", home)
		if value != "" {
			return filepath.Clean(value)
		}
	}
	return ""
}
