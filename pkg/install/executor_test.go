package install

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shiro123444/sideload/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayout(t *testing.T) Layout {
	t.Helper()
	root := t.TempDir()
	layout := Layout{
		DataRoot:   filepath.Join(root, "share"),
		BinDir:     filepath.Join(root, "bin"),
		IconsDir:   filepath.Join(root, "share", "icons"),
		AppsDir:    filepath.Join(root, "share", "applications"),
		DesktopDir: filepath.Join(root, "Desktop"),
	}
	require.NoError(t, layout.EnsureBaseDirs())
	return layout
}

func writeFile(t *testing.T, root, rel, content string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	return path
}

func debFixture(t *testing.T, name string) (*model.Package, model.InstallPlan) {
	t.Helper()
	p := model.NewPackage(name + "_1.0_amd64.deb")
	p.Name = name
	p.ExtractRoot = t.TempDir()
	writeFile(t, p.ExtractRoot, "opt/"+name+"/bin/"+name, "#!/bin/sh\n", 0o755)
	writeFile(t, p.ExtractRoot, "opt/"+name+"/data.txt", "data", 0o644)
	return p, model.InstallPlan{
		PayloadSourceDir: filepath.Join(p.ExtractRoot, "opt", name),
		Mode:             model.ModeWholeDirectory,
	}
}

func TestInstallDebPayload_WholeDirectory(t *testing.T) {
	layout := testLayout(t)
	e := NewExecutor(layout)
	p, pl := debFixture(t, "myapp")

	installDir, execPath, err := e.InstallDebPayload(p, pl)

	require.NoError(t, err)
	assert.Equal(t, layout.InstallDir("myapp"), installDir)
	assert.Equal(t, filepath.Join(installDir, "bin", "myapp"), execPath)

	content, err := os.ReadFile(filepath.Join(installDir, "data.txt"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))
}

func TestInstallDebPayload_NoPayloadIsNoOp(t *testing.T) {
	layout := testLayout(t)
	e := NewExecutor(layout)
	p := model.NewPackage("meta_1.0_all.deb")
	p.Name = "meta"

	installDir, execPath, err := e.InstallDebPayload(p, model.InstallPlan{})

	require.NoError(t, err)
	assert.Empty(t, installDir)
	assert.Empty(t, execPath)
	_, statErr := os.Stat(layout.InstallDir("meta"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestInstallDebPayload_LooseBinaries(t *testing.T) {
	layout := testLayout(t)
	e := NewExecutor(layout)
	p := model.NewPackage("myapp_1.0_amd64.deb")
	p.Name = "myapp"
	p.ExtractRoot = t.TempDir()
	writeFile(t, p.ExtractRoot, "usr/bin/myapp", "#!/bin/sh\n", 0o755)
	writeFile(t, p.ExtractRoot, "usr/bin/helper", "#!/bin/sh\n", 0o755)

	pl := model.InstallPlan{
		PayloadSourceDir: filepath.Join(p.ExtractRoot, "usr", "bin"),
		Mode:             model.ModeLooseBinaries,
	}

	installDir, execPath, err := e.InstallDebPayload(p, pl)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(installDir, "myapp"), execPath)
	_, statErr := os.Stat(filepath.Join(installDir, "helper"))
	assert.NoError(t, statErr)
}

func TestInstallDebPayload_PreservesUsrLibAsLib(t *testing.T) {
	layout := testLayout(t)
	e := NewExecutor(layout)
	p, pl := debFixture(t, "myapp")
	writeFile(t, p.ExtractRoot, "usr/lib/libdep.so", "", 0o644)

	installDir, _, err := e.InstallDebPayload(p, pl)

	require.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(installDir, "lib", "libdep.so"))
	assert.NoError(t, statErr)
}

func TestInstallDebPayload_ReinstallReplacesWholesale(t *testing.T) {
	layout := testLayout(t)
	e := NewExecutor(layout)

	p, pl := debFixture(t, "myapp")
	installDir, _, err := e.InstallDebPayload(p, pl)
	require.NoError(t, err)
	writeFile(t, installDir, "stale-file", "left over", 0o644)

	p2, pl2 := debFixture(t, "myapp")
	installDir2, _, err := e.InstallDebPayload(p2, pl2)
	require.NoError(t, err)

	assert.Equal(t, installDir, installDir2)
	_, statErr := os.Stat(filepath.Join(installDir2, "stale-file"))
	assert.True(t, os.IsNotExist(statErr), "reinstall must replace, not merge")
}

func TestInstallTarGzPayload(t *testing.T) {
	layout := testLayout(t)
	e := NewExecutor(layout)
	p := model.NewPackage("tool-1.0.tar.gz")
	p.Name = "tool"
	p.ExtractRoot = t.TempDir()
	exe := writeFile(t, p.ExtractRoot, "bin/tool", "#!/bin/sh\n", 0o755)
	pl := model.InstallPlan{
		PayloadSourceDir:  p.ExtractRoot,
		Mode:              model.ModeWholeDirectory,
		PrimaryExecutable: exe,
	}

	installDir, execPath, err := e.InstallTarGzPayload(p, pl)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(installDir, "bin", "tool"), execPath)
	info, statErr := os.Stat(execPath)
	require.NoError(t, statErr)
	assert.NotZero(t, info.Mode()&0o111)
}

func TestWriteWrapper(t *testing.T) {
	layout := testLayout(t)
	e := NewExecutor(layout)
	installDir := layout.InstallDir("myapp")
	writeFile(t, installDir, "lib/liba.so", "", 0o644)
	exe := writeFile(t, installDir, "bin/myapp", "#!/bin/sh\n", 0o755)

	wrapperPath, err := e.WriteWrapper("myapp", exe)

	require.NoError(t, err)
	assert.Equal(t, layout.WrapperPath("myapp"), wrapperPath)

	info, statErr := os.Stat(wrapperPath)
	require.NoError(t, statErr)
	assert.NotZero(t, info.Mode()&0o111)

	content, readErr := os.ReadFile(wrapperPath)
	require.NoError(t, readErr)
	script := string(content)
	assert.Contains(t, script, "#!/bin/bash")
	assert.Contains(t, script, "export LD_LIBRARY_PATH=\""+filepath.Join(installDir, "lib")+":$LD_LIBRARY_PATH\"")
	assert.Contains(t, script, "exec "+"\""+exe+"\" \"$@\"")
}

func TestWriteWrapper_NoLibDirs(t *testing.T) {
	layout := testLayout(t)
	e := NewExecutor(layout)
	installDir := layout.InstallDir("myapp")
	exe := writeFile(t, installDir, "myapp", "#!/bin/sh\n", 0o755)

	wrapperPath, err := e.WriteWrapper("myapp", exe)

	require.NoError(t, err)
	content, readErr := os.ReadFile(wrapperPath)
	require.NoError(t, readErr)
	assert.NotContains(t, string(content), "LD_LIBRARY_PATH")
}

func TestLinkExecutable_ReplacesPriorLink(t *testing.T) {
	layout := testLayout(t)
	e := NewExecutor(layout)
	oldTarget := writeFile(t, t.TempDir(), "old", "", 0o755)
	newTarget := writeFile(t, t.TempDir(), "new", "", 0o755)

	_, err := e.LinkExecutable("tool", oldTarget)
	require.NoError(t, err)
	linkPath, err := e.LinkExecutable("tool", newTarget)
	require.NoError(t, err)

	resolved, readErr := os.Readlink(linkPath)
	require.NoError(t, readErr)
	assert.Equal(t, newTarget, resolved)
}

func TestInstallIcon(t *testing.T) {
	layout := testLayout(t)
	e := NewExecutor(layout)
	p := model.NewPackage("tool-1.0.tar.gz")
	p.Name = "tool"
	p.ExtractRoot = t.TempDir()
	p.IconPath = writeFile(t, p.ExtractRoot, "icons/tool-256.png", "png-bytes", 0o644)

	dest := e.InstallIcon(p)

	assert.Equal(t, layout.IconPath("tool", ".png"), dest)
	content, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))
}

func TestInstallIcon_MissingIsBestEffort(t *testing.T) {
	layout := testLayout(t)
	e := NewExecutor(layout)
	p := model.NewPackage("tool-1.0.tar.gz")
	p.Name = "tool"

	assert.Empty(t, e.InstallIcon(p))

	p.IconPath = "/nonexistent/icon.png"
	assert.Empty(t, e.InstallIcon(p))
}
