// Package desktop synthesizes and rewrites desktop-menu entries for
// installed applications, including the server/daemon launch heuristic and
// the reconstruction of installed-app records from existing entries.
package desktop

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/shiro123444/sideload/internal/logger"
	"github.com/shiro123444/sideload/pkg/fsutil"
	"github.com/shiro123444/sideload/pkg/install"
)

// DefaultProbeTimeout bounds the --help probe used for server detection.
const DefaultProbeTimeout = 2 * time.Second

// Builder writes desktop entries into the per-user applications directory
// and optionally mirrors them onto the desktop folder.
type Builder struct {
	Layout       install.Layout
	ProbeTimeout time.Duration
}

// NewBuilder creates a Builder with the default probe timeout.
func NewBuilder(layout install.Layout) *Builder {
	return &Builder{Layout: layout, ProbeTimeout: DefaultProbeTimeout}
}

// RewriteEntry rewrites a desktop entry shipped inside a package so it
// launches the installed binary. Exec= lines are retargeted at the resolved
// executable (keeping the original trailing arguments); when no executable
// was resolved, the /usr/share/ and /opt/ prefixes are rewritten to the
// install root as a best-effort fallback. Icon= lines are retargeted at the
// installed icon when one exists. Everything else passes through unchanged.
//
// The returned bool reports whether the menu database refresh was verified;
// the entry write itself is always verified.
func (b *Builder) RewriteEntry(srcPath, appID, execPath string, mirror bool) (bool, error) {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return false, fmt.Errorf("failed to read desktop entry %s: %w", srcPath, err)
	}

	var out []string
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "Exec="):
			out = append(out, b.rewriteExecLine(line, execPath))
		case strings.HasPrefix(line, "Icon="):
			out = append(out, b.rewriteIconLine(line))
		default:
			out = append(out, line)
		}
	}
	content := strings.Join(out, "\n") + "\n"

	entryPath := filepath.Join(b.Layout.AppsDir, filepath.Base(srcPath))
	if err := os.WriteFile(entryPath, []byte(content), fsutil.FileModeDefault); err != nil {
		return false, fmt.Errorf("failed to write desktop entry: %w", err)
	}

	if mirror {
		b.mirrorToDesktop(filepath.Base(srcPath), content)
	}
	return b.refreshMenuDatabase(), nil
}

func (b *Builder) rewriteExecLine(line, execPath string) string {
	if execPath == "" {
		line = strings.ReplaceAll(line, "/usr/share/", b.Layout.DataRoot+"/")
		return strings.ReplaceAll(line, "/opt/", b.Layout.DataRoot+"/")
	}
	origCmd := strings.TrimSpace(strings.TrimPrefix(line, "Exec="))
	fields := strings.Fields(origCmd)
	var args []string
	if len(fields) > 1 {
		args = fields[1:]
	}
	if len(args) > 0 {
		return fmt.Sprintf("Exec=%s %s", execPath, strings.Join(args, " "))
	}
	return "Exec=" + execPath
}

func (b *Builder) rewriteIconLine(line string) string {
	iconName := strings.TrimSpace(strings.TrimPrefix(line, "Icon="))
	// Try <name>.png first, then an exact-name match in the icon dir.
	withPNG := filepath.Join(b.Layout.IconsDir, iconName+".png")
	if _, err := os.Stat(withPNG); err == nil {
		return "Icon=" + withPNG
	}
	exact := filepath.Join(b.Layout.IconsDir, iconName)
	if _, err := os.Stat(exact); err == nil {
		return "Icon=" + exact
	}
	return line
}

// CreateEntry synthesizes a desktop entry for a package that shipped none.
// Server apps launch through a generated terminal script; everything else
// gets a direct Exec line.
//
// The returned bool reports whether the menu database refresh was verified.
func (b *Builder) CreateEntry(name, appID, execPath, iconPath string, isServer, mirror bool) (bool, error) {
	iconLine := iconPath
	if iconLine == "" {
		iconLine = "application-x-executable"
	}

	execLine := execPath
	terminal := "false"
	if isServer {
		launcherPath, err := b.writeLauncher(name, appID, execPath)
		if err != nil {
			return false, err
		}
		if term, termArgs, ok := findTerminal(); ok {
			parts := append([]string{term}, termArgs...)
			execLine = strings.Join(append(parts, launcherPath), " ")
		} else {
			execLine = launcherPath
			terminal = "true"
		}
	}

	content := fmt.Sprintf(`[Desktop Entry]
Name=%s
Comment=%s Application
GenericName=%s
Exec=%s
Icon=%s
Type=Application
StartupNotify=false
StartupWMClass=%s
Categories=Utility;
Keywords=%s;
Terminal=%s
`, name, name, name, execLine, iconLine, name, appID, terminal)

	entryPath := b.Layout.EntryPath(appID)
	if err := os.WriteFile(entryPath, []byte(content), fsutil.FileModeDefault); err != nil {
		return false, fmt.Errorf("failed to write desktop entry: %w", err)
	}
	logger.Info("menu entry created", logger.Fields{"path": entryPath})

	if mirror {
		b.mirrorToDesktop(appID+".desktop", content)
	}
	return b.refreshMenuDatabase(), nil
}

// mirrorToDesktop duplicates an entry onto the user's desktop folder and
// marks it trusted so the shell launches it without a warning. Both steps
// are best-effort.
func (b *Builder) mirrorToDesktop(filename, content string) {
	if _, err := os.Stat(b.Layout.DesktopDir); err != nil {
		return
	}
	path := filepath.Join(b.Layout.DesktopDir, filename)
	if err := os.WriteFile(path, []byte(content), fsutil.FileModeExec); err != nil {
		logger.Warn("failed to write desktop icon", logger.Fields{"error": err.Error()})
		return
	}
	markTrusted(path)
}

// markTrusted sets the GIO trusted-metadata attribute on a desktop copy.
// Fire-and-forget: the exit status is not inspected.
func markTrusted(path string) {
	_ = exec.Command("gio", "set", path, "metadata::trusted", "true").Run()
}

// refreshMenuDatabase asks the desktop environment to re-read the
// applications directory. Best-effort; returns whether it verifiably
// succeeded.
func (b *Builder) refreshMenuDatabase() bool {
	if err := exec.Command("update-desktop-database", b.Layout.AppsDir).Run(); err != nil {
		logger.Debug("menu database refresh failed", logger.Fields{"error": err.Error()})
		return false
	}
	return true
}
