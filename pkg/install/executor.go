package install

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shiro123444/sideload/internal/logger"
	"github.com/shiro123444/sideload/pkg/fsutil"
	"github.com/shiro123444/sideload/pkg/model"
	"github.com/shiro123444/sideload/pkg/plan"
)

// Executor performs the filesystem mutation for an install. Reinstalling
// the same app id is destructive-idempotent: the prior install directory is
// replaced wholesale, never merged.
type Executor struct {
	Layout Layout
}

// NewExecutor creates an Executor over the given layout.
func NewExecutor(layout Layout) *Executor {
	return &Executor{Layout: layout}
}

// InstallDebPayload copies a DEB payload into the install directory per the
// plan and resolves the primary executable over the copied tree. A plan
// without a payload is a no-op returning empty paths; DEB installs then
// proceed with icon and menu side effects only.
func (e *Executor) InstallDebPayload(p *model.Package, pl model.InstallPlan) (installDir, execPath string, err error) {
	if !pl.HasPayload() {
		return "", "", nil
	}
	appID := p.AppID()
	installDir = e.Layout.InstallDir(appID)

	if err := os.RemoveAll(installDir); err != nil {
		return "", "", fmt.Errorf("failed to clear previous install at %s: %w", installDir, err)
	}

	switch pl.Mode {
	case model.ModeWholeDirectory:
		if err := fsutil.CopyDir(pl.PayloadSourceDir, installDir); err != nil {
			return "", "", err
		}
		execPath = plan.FindPayloadExecutable(installDir, appID, p.Name)
	case model.ModeLooseBinaries:
		if err := e.copyLooseFiles(pl.PayloadSourceDir, installDir); err != nil {
			return "", "", err
		}
		execPath = plan.FindLooseExecutable(installDir, appID)
	}

	e.copyPackageLibs(p.ExtractRoot, installDir)
	return installDir, execPath, nil
}

// InstallTarGzPayload copies the entire extracted tree and returns the
// installed location of the planned primary executable.
func (e *Executor) InstallTarGzPayload(p *model.Package, pl model.InstallPlan) (installDir, execPath string, err error) {
	appID := p.AppID()
	installDir = e.Layout.InstallDir(appID)

	if err := os.RemoveAll(installDir); err != nil {
		return "", "", fmt.Errorf("failed to clear previous install at %s: %w", installDir, err)
	}
	if err := fsutil.CopyDir(p.ExtractRoot, installDir); err != nil {
		return "", "", err
	}

	rel, err := filepath.Rel(p.ExtractRoot, pl.PrimaryExecutable)
	if err != nil {
		return "", "", fmt.Errorf("executable %s is outside the extracted tree: %w", pl.PrimaryExecutable, err)
	}
	return installDir, filepath.Join(installDir, rel), nil
}

// copyLooseFiles copies the regular files of src flat into dst.
func (e *Executor) copyLooseFiles(src, dst string) error {
	if err := fsutil.EnsureDir(dst); err != nil {
		return err
	}
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := fsutil.Copy(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// copyPackageLibs preserves the package's usr/lib as lib/ under the install
// dir so the wrapper can point LD_LIBRARY_PATH at it. Skipped when the
// payload already brought its own lib directory. Best-effort.
func (e *Executor) copyPackageLibs(extractRoot, installDir string) {
	srcLib := filepath.Join(extractRoot, "usr", "lib")
	if info, err := os.Stat(srcLib); err != nil || !info.IsDir() {
		return
	}
	dstLib := filepath.Join(installDir, "lib")
	if _, err := os.Stat(dstLib); err == nil {
		return
	}
	if err := fsutil.CopyDir(srcLib, dstLib); err != nil {
		logger.Warn("failed to copy package libraries", logger.Fields{"error": err.Error()})
	}
}

// WriteWrapper writes the launcher wrapper script for an app. It prepends
// the resolved library directories to LD_LIBRARY_PATH when any exist, then
// execs the real binary forwarding all arguments.
func (e *Executor) WriteWrapper(appID, execPath string) (string, error) {
	wrapperPath := e.Layout.WrapperPath(appID)
	libDirs := plan.ResolveLibraryDirs(e.Layout.InstallDir(appID))

	var b strings.Builder
	b.WriteString("#!/bin/bash\n")
	if len(libDirs) > 0 {
		fmt.Fprintf(&b, "export LD_LIBRARY_PATH=\"%s:$LD_LIBRARY_PATH\"\n", strings.Join(libDirs, ":"))
	}
	fmt.Fprintf(&b, "exec %q \"$@\"\n", execPath)

	if err := os.WriteFile(wrapperPath, []byte(b.String()), fsutil.FileModeExec); err != nil {
		return "", fmt.Errorf("failed to write wrapper script: %w", err)
	}
	return wrapperPath, nil
}

// LinkExecutable replaces any prior file or link at the app's bin path
// with a symlink to the installed binary.
func (e *Executor) LinkExecutable(appID, target string) (string, error) {
	linkPath := e.Layout.WrapperPath(appID)
	if _, err := os.Lstat(linkPath); err == nil {
		if err := os.Remove(linkPath); err != nil {
			return "", fmt.Errorf("failed to remove previous link at %s: %w", linkPath, err)
		}
	}
	if err := os.Symlink(target, linkPath); err != nil {
		return "", fmt.Errorf("failed to create symlink: %w", err)
	}
	return linkPath, nil
}

// InstallIcon copies the package's icon into the icon directory, renamed to
// the app id with the original extension. Best-effort: a missing or
// uncopyable icon logs a warning and returns an empty path.
func (e *Executor) InstallIcon(p *model.Package) string {
	if p.IconPath == "" {
		return ""
	}
	if _, err := os.Stat(p.IconPath); err != nil {
		return ""
	}
	dest := e.Layout.IconPath(p.AppID(), filepath.Ext(p.IconPath))
	if err := fsutil.Copy(p.IconPath, dest); err != nil {
		logger.Warn("failed to install icon", logger.Fields{"error": err.Error()})
		return ""
	}
	return dest
}
