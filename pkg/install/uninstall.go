package install

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/shiro123444/sideload/internal/logger"
	"github.com/shiro123444/sideload/pkg/model"
)

// UninstallManager removes everything an install created. It needs only
// the application name: every target location derives from the normalized
// app id. All deletions are best-effort and a missing target is not an
// error, so uninstalling a never-installed app is a no-op.
type UninstallManager struct {
	Layout Layout
}

// NewUninstallManager creates an UninstallManager over the given layout.
func NewUninstallManager(layout Layout) *UninstallManager {
	return &UninstallManager{Layout: layout}
}

// Uninstall removes the install directory, the wrapper or symlink, any
// desktop entries referencing the app id, and the server launcher script.
// It returns the normalized app id the removal was keyed by.
func (u *UninstallManager) Uninstall(name string) string {
	appID := model.NormalizeAppID(name)

	if err := os.RemoveAll(u.Layout.InstallDir(appID)); err != nil {
		logger.Warn("failed to remove install directory", logger.Fields{"error": err.Error()})
	}

	// Lstat so dangling symlinks are caught too.
	wrapper := u.Layout.WrapperPath(appID)
	if _, err := os.Lstat(wrapper); err == nil {
		_ = os.Remove(wrapper)
	}

	for _, dir := range []string{u.Layout.AppsDir, u.Layout.DesktopDir} {
		removeMatchingEntries(dir, appID)
	}

	launcher := u.Layout.LauncherPath(appID)
	if _, err := os.Stat(launcher); err == nil {
		_ = os.Remove(launcher)
	}

	removeInstalledIcons(u.Layout.IconsDir, appID)

	logger.Info("uninstalled", logger.Fields{"app": appID})
	return appID
}

// removeInstalledIcons deletes icons installed as <id>.<ext>, whatever the
// extension was.
func removeInstalledIcons(iconsDir, appID string) {
	entries, err := os.ReadDir(iconsDir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if strings.TrimSuffix(name, filepath.Ext(name)) == appID {
			_ = os.Remove(filepath.Join(iconsDir, name))
		}
	}
}

// removeMatchingEntries deletes every file in dir whose name contains the
// app id. This catches both synthesized entries (<id>.desktop) and
// rewritten package entries that kept their original filename.
func removeMatchingEntries(dir, appID string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.Contains(entry.Name(), appID) {
			_ = os.Remove(filepath.Join(dir, entry.Name()))
		}
	}
}
