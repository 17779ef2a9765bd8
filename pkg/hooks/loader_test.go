package hooks_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shiro123444/sideload/pkg/hooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pre-install.tengo"), []byte(`// pre`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "post-remove.tengo"), []byte(`// post`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unknown-hook.tengo"), []byte(`// ignored`), 0o644))

	m := hooks.NewTengoExecutor()
	require.NoError(t, hooks.LoadFromDir(m, dir))

	assert.True(t, m.HasHook(hooks.PreInstall))
	assert.True(t, m.HasHook(hooks.PostRemove))
	assert.False(t, m.HasHook(hooks.PostInstall))
	assert.False(t, m.HasHook(hooks.PreRemove))
}

func TestLoadFromDir_MissingDirIsNotAnError(t *testing.T) {
	m := hooks.NewTengoExecutor()
	assert.NoError(t, hooks.LoadFromDir(m, filepath.Join(t.TempDir(), "missing")))
}
