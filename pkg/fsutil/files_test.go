package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopy_PreservesPermissions(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("#!/bin/sh\n"), 0o755))

	require.NoError(t, Copy(src, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\n", string(content))
}

func TestCopy_OverwritesExistingWithSourcePerms(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0o755))
	require.NoError(t, os.WriteFile(dst, []byte("old"), 0o600))

	require.NoError(t, Copy(src, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestCopy_MissingSource(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, Copy(filepath.Join(dir, "missing"), filepath.Join(dir, "dst")))
}

func TestCopyDir(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "copy")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "bin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "bin", "tool"), []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "README"), []byte("docs"), 0o644))
	require.NoError(t, os.Symlink("bin/tool", filepath.Join(src, "tool-link")))

	require.NoError(t, CopyDir(src, dst))

	info, err := os.Stat(filepath.Join(dst, "bin", "tool"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o111)

	target, err := os.Readlink(filepath.Join(dst, "tool-link"))
	require.NoError(t, err)
	assert.Equal(t, "bin/tool", target)
}

func TestIsExecutable(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "exe")
	plain := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(exe, nil, 0o755))
	require.NoError(t, os.WriteFile(plain, nil, 0o644))

	exeInfo, err := os.Stat(exe)
	require.NoError(t, err)
	plainInfo, err := os.Stat(plain)
	require.NoError(t, err)
	dirInfo, err := os.Stat(dir)
	require.NoError(t, err)

	assert.True(t, IsExecutable(exeInfo))
	assert.False(t, IsExecutable(plainInfo))
	assert.False(t, IsExecutable(dirInfo), "directories carry exec bits but are not executables")
}
