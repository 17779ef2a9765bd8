package meta

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shiro123444/sideload/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	return path
}

func TestInfer_DebFromFilename(t *testing.T) {
	p := model.NewPackage("/downloads/myapp_2.3.1_amd64.deb")
	p.ExtractRoot = t.TempDir()

	require.NoError(t, NewInferencer().Infer(p))

	assert.Equal(t, "myapp", p.Name)
	assert.Equal(t, "2.3.1", p.Version)
	assert.Equal(t, "myapp", p.AppID())
	assert.Empty(t, p.MenuEntrySource)
	assert.Empty(t, p.IconPath)
}

func TestInfer_DebDesktopEntryOverridesFilename(t *testing.T) {
	p := model.NewPackage("myapp_2.3.1_amd64.deb")
	p.ExtractRoot = t.TempDir()
	entry := writeFile(t, p.ExtractRoot, "usr/share/applications/myapp.desktop",
		"[Desktop Entry]\nName=My App\nComment=Does app things\nExec=/opt/myapp/bin/myapp\n", 0o644)

	require.NoError(t, NewInferencer().Infer(p))

	assert.Equal(t, "My App", p.Name)
	assert.Equal(t, "Does app things", p.Description)
	assert.Equal(t, "my-app", p.AppID())
	assert.Equal(t, entry, p.MenuEntrySource)
	// Filename-derived version survives: desktop entries carry no version.
	assert.Equal(t, "2.3.1", p.Version)
}

func TestInfer_DebSkipsURLHandlerEntries(t *testing.T) {
	p := model.NewPackage("myapp_1.0_amd64.deb")
	p.ExtractRoot = t.TempDir()
	writeFile(t, p.ExtractRoot, "usr/share/applications/myapp-url-handler.desktop",
		"[Desktop Entry]\nName=Handler\n", 0o644)
	real := writeFile(t, p.ExtractRoot, "usr/share/applications/zz-myapp.desktop",
		"[Desktop Entry]\nName=Real App\n", 0o644)

	require.NoError(t, NewInferencer().Infer(p))

	assert.Equal(t, real, p.MenuEntrySource)
	assert.Equal(t, "Real App", p.Name)
}

func TestInfer_TarGzSingleExecutableNamesApp(t *testing.T) {
	p := model.NewPackage("bundle-9.9-linux.tar.gz")
	p.ExtractRoot = t.TempDir()
	writeFile(t, p.ExtractRoot, "bin/supertool", "#!/bin/sh\n", 0o755)
	writeFile(t, p.ExtractRoot, "docs/README", "readme", 0o644)

	require.NoError(t, NewInferencer().Infer(p))

	assert.Equal(t, "supertool", p.Name)
	assert.Equal(t, "9.9", p.Version)
	assert.Equal(t, "supertool application", p.Description)
}

func TestInfer_TarGzMultipleExecutablesFallBackToFilename(t *testing.T) {
	p := model.NewPackage("tool-1.2-linux.tar.gz")
	p.ExtractRoot = t.TempDir()
	writeFile(t, p.ExtractRoot, "tool", "#!/bin/sh\n", 0o755)
	writeFile(t, p.ExtractRoot, "helper", "#!/bin/sh\n", 0o755)

	require.NoError(t, NewInferencer().Infer(p))

	assert.Equal(t, "tool", p.Name)
	assert.Equal(t, "1.2", p.Version)
}

func TestInfer_TarGzVersionIsFirstDigitToken(t *testing.T) {
	tests := []struct {
		archive  string
		expected string
	}{
		{"tool-1.2-linux.tar.gz", "1.2"},
		{"tool-linux-3.4.5.tar.gz", "3.4.5"},
		{"tool-linux.tar.gz", ""},
		{"tool-x86-2.0.tar.gz", "2.0"},
	}
	for _, tt := range tests {
		t.Run(tt.archive, func(t *testing.T) {
			p := model.NewPackage(tt.archive)
			p.ExtractRoot = t.TempDir()
			// Two executables so naming falls back to the filename too.
			writeFile(t, p.ExtractRoot, "a", "#!/bin/sh\n", 0o755)
			writeFile(t, p.ExtractRoot, "b", "#!/bin/sh\n", 0o755)

			require.NoError(t, NewInferencer().Infer(p))
			assert.Equal(t, tt.expected, p.Version)
		})
	}
}

func TestInfer_TarGzNoIconIsNotAnError(t *testing.T) {
	p := model.NewPackage("tool-1.0.tar.gz")
	p.ExtractRoot = t.TempDir()
	writeFile(t, p.ExtractRoot, "tool", "#!/bin/sh\n", 0o755)

	require.NoError(t, NewInferencer().Infer(p))
	assert.Empty(t, p.IconPath)
}
