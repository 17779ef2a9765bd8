package desktop

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shiro123444/sideload/pkg/fsutil"
	"github.com/shiro123444/sideload/pkg/install"
)

// InstalledApp is an application record reconstructed from a desktop entry
// under the managed install tree. There is no separate manifest: installed
// state is entirely rebuilt by scanning the applications directory.
type InstalledApp struct {
	DisplayName string
	Filename    string
	EntryPath   string
	Icon        string
	ExecCommand string
	Comment     string
	Categories  string
	Terminal    bool
}

// ParseInstalledApp reads a desktop entry and reconstructs the app record.
// Entries whose content does not reference the managed install roots are
// rejected (ok=false): they belong to the system, not to this tool.
func ParseInstalledApp(path string, layout install.Layout) (*InstalledApp, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	content := string(data)
	if !strings.Contains(content, layout.DataRoot) && !strings.Contains(content, layout.BinDir) {
		return nil, false
	}

	app := &InstalledApp{
		DisplayName: strings.TrimSuffix(filepath.Base(path), ".desktop"),
		Filename:    filepath.Base(path),
		EntryPath:   path,
	}

	nameSet := false
	for _, line := range strings.Split(content, "\n") {
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "Name":
			if !nameSet {
				app.DisplayName = value
				nameSet = true
			}
		case "Icon":
			app.Icon = value
		case "Exec":
			app.ExecCommand = value
		case "Comment":
			app.Comment = value
		case "Categories":
			app.Categories = value
		case "Terminal":
			app.Terminal = strings.EqualFold(value, "true")
		}
	}
	return app, true
}

// ScanInstalled reconstructs every managed app from the layout's
// applications directory. Unreadable or unmanaged entries are skipped.
func ScanInstalled(layout install.Layout) []*InstalledApp {
	entries, err := os.ReadDir(layout.AppsDir)
	if err != nil {
		return nil
	}
	var apps []*InstalledApp
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".desktop") {
			continue
		}
		if app, ok := ParseInstalledApp(filepath.Join(layout.AppsDir, entry.Name()), layout); ok {
			apps = append(apps, app)
		}
	}
	return apps
}

// Save rewrites the app's desktop entry with the record's current fields,
// updates any desktop-folder copy, and refreshes the menu database.
func (a *InstalledApp) Save(layout install.Layout) error {
	terminal := "false"
	if a.Terminal {
		terminal = "true"
	}
	content := fmt.Sprintf(`[Desktop Entry]
Name=%s
Comment=%s
Exec=%s
Icon=%s
Type=Application
Categories=%s
Terminal=%s
StartupNotify=false
`, a.DisplayName, a.Comment, a.ExecCommand, a.Icon, a.Categories, terminal)

	if err := os.WriteFile(a.EntryPath, []byte(content), fsutil.FileModeDefault); err != nil {
		return fmt.Errorf("failed to save desktop entry: %w", err)
	}

	desktopCopy := filepath.Join(layout.DesktopDir, a.Filename)
	if _, err := os.Stat(desktopCopy); err == nil {
		if err := os.WriteFile(desktopCopy, []byte(content), fsutil.FileModeExec); err == nil {
			markTrusted(desktopCopy)
		}
	}

	b := Builder{Layout: layout}
	b.refreshMenuDatabase()
	return nil
}
