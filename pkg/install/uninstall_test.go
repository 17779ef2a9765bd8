package install

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func installFixture(t *testing.T, layout Layout, appID string) {
	t.Helper()
	writeFile(t, layout.InstallDir(appID), "bin/"+appID, "#!/bin/sh\n", 0o755)
	writeFile(t, layout.BinDir, appID, "#!/bin/bash\n", 0o755)
	writeFile(t, layout.BinDir, appID+"-launcher.sh", "#!/bin/bash\n", 0o755)
	writeFile(t, layout.AppsDir, appID+".desktop", "[Desktop Entry]\n", 0o644)
	writeFile(t, layout.DesktopDir, appID+".desktop", "[Desktop Entry]\n", 0o755)
	writeFile(t, layout.IconsDir, appID+".png", "", 0o644)
}

func TestUninstall_RemovesEveryArtifact(t *testing.T) {
	layout := testLayout(t)
	require.NoError(t, os.MkdirAll(layout.DesktopDir, 0o755))
	installFixture(t, layout, "my-app")

	appID := NewUninstallManager(layout).Uninstall("My App")

	assert.Equal(t, "my-app", appID)
	for _, path := range []string{
		layout.InstallDir("my-app"),
		layout.WrapperPath("my-app"),
		layout.LauncherPath("my-app"),
		filepath.Join(layout.AppsDir, "my-app.desktop"),
		filepath.Join(layout.DesktopDir, "my-app.desktop"),
		filepath.Join(layout.IconsDir, "my-app.png"),
	} {
		_, err := os.Lstat(path)
		assert.True(t, os.IsNotExist(err), "expected %s to be removed", path)
	}
}

func TestUninstall_LeavesOtherAppsAlone(t *testing.T) {
	layout := testLayout(t)
	require.NoError(t, os.MkdirAll(layout.DesktopDir, 0o755))
	installFixture(t, layout, "keep-me")
	installFixture(t, layout, "remove-me")

	NewUninstallManager(layout).Uninstall("remove-me")

	_, err := os.Stat(layout.InstallDir("keep-me"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(layout.AppsDir, "keep-me.desktop"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(layout.IconsDir, "keep-me.png"))
	assert.NoError(t, err)
}

func TestUninstall_NeverInstalledIsNoOp(t *testing.T) {
	layout := testLayout(t)

	appID := NewUninstallManager(layout).Uninstall("ghost")

	assert.Equal(t, "ghost", appID)
}

func TestUninstall_RemovesRenamedEntryContainingAppID(t *testing.T) {
	layout := testLayout(t)
	// DEB packages keep their own entry filename, which contains the app
	// id but is not exactly <app-id>.desktop.
	writeFile(t, layout.AppsDir, "com.vendor.my-app.desktop", "[Desktop Entry]\n", 0o644)

	NewUninstallManager(layout).Uninstall("my-app")

	_, err := os.Stat(filepath.Join(layout.AppsDir, "com.vendor.my-app.desktop"))
	assert.True(t, os.IsNotExist(err))
}
