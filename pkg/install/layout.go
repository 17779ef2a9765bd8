// Package install materializes an install plan on the user's filesystem and
// can reverse everything it created, keyed only by the normalized app id.
package install

import (
	"path/filepath"

	"github.com/shiro123444/sideload/pkg/fsutil"
)

// Layout holds the fixed per-user install locations. All of them derive
// from the normalized app id, which is what makes uninstall possible
// without any persisted manifest.
type Layout struct {
	// DataRoot is the parent of per-app payload directories
	// (~/.local/share).
	DataRoot string
	// BinDir holds wrapper scripts and symlinks (~/.local/bin).
	BinDir string
	// IconsDir holds installed icons (~/.local/share/icons).
	IconsDir string
	// AppsDir holds desktop entries (~/.local/share/applications).
	AppsDir string
	// DesktopDir is the user's desktop folder, used for the optional
	// entry mirror. May not exist.
	DesktopDir string
}

// DefaultLayout resolves the standard per-user locations.
func DefaultLayout() (Layout, error) {
	dataHome, err := fsutil.DataHome()
	if err != nil {
		return Layout{}, err
	}
	binHome, err := fsutil.BinHome()
	if err != nil {
		return Layout{}, err
	}
	desktopDir, err := fsutil.DesktopDir()
	if err != nil {
		return Layout{}, err
	}
	return Layout{
		DataRoot:   dataHome,
		BinDir:     binHome,
		IconsDir:   filepath.Join(dataHome, "icons"),
		AppsDir:    filepath.Join(dataHome, "applications"),
		DesktopDir: desktopDir,
	}, nil
}

// EnsureBaseDirs creates the directories installs write into. The desktop
// folder is deliberately left alone: if the user has none, no mirror is
// written.
func (l Layout) EnsureBaseDirs() error {
	for _, dir := range []string{l.BinDir, l.IconsDir, l.AppsDir} {
		if err := fsutil.EnsureDir(dir); err != nil {
			return err
		}
	}
	return nil
}

// InstallDir is the payload directory for an app.
func (l Layout) InstallDir(appID string) string {
	return filepath.Join(l.DataRoot, appID)
}

// WrapperPath is the wrapper script or symlink for an app.
func (l Layout) WrapperPath(appID string) string {
	return filepath.Join(l.BinDir, appID)
}

// LauncherPath is the generated terminal launcher script for server apps.
func (l Layout) LauncherPath(appID string) string {
	return filepath.Join(l.BinDir, appID+"-launcher.sh")
}

// IconPath is the installed icon path for an app, keeping the source
// icon's extension.
func (l Layout) IconPath(appID, ext string) string {
	return filepath.Join(l.IconsDir, appID+ext)
}

// EntryPath is the desktop entry path for an app.
func (l Layout) EntryPath(appID string) string {
	return filepath.Join(l.AppsDir, appID+".desktop")
}
