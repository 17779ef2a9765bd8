package plan

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shiro123444/sideload/pkg/fsutil"
)

// Extension exclusion sets for executable discovery. Shared objects and
// helper scripts carry the executable bit but are never the application
// entry point; DEB payloads additionally ship marked-executable assets.
var (
	payloadExcludedExts = map[string]bool{
		".so": true, ".a": true, ".sh": true,
		".png": true, ".svg": true, ".jpg": true,
		".txt": true, ".md": true,
	}
	tarGzExcludedExts = map[string]bool{
		".so": true, ".a": true, ".sh": true,
	}
)

// ExecutableCandidates walks the tree and returns every regular file with
// an executable permission bit whose extension is not excluded. The walk
// order is deterministic (lexical) but carries no semantic meaning; callers
// treating "first" as "best" are applying the documented fallback rule, not
// an ordering guarantee.
func ExecutableCandidates(root string, excluded map[string]bool) []string {
	var out []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if excluded[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if fsutil.IsExecutable(info) {
			out = append(out, path)
		}
		return nil
	})
	return out
}

// FindPayloadExecutable picks the primary executable inside an installed
// whole-directory payload: a candidate whose base name case-insensitively
// equals the normalized or original app name wins, else the first candidate.
// Empty means no executable was found, which is a soft outcome for DEB
// installs.
func FindPayloadExecutable(installedDir, appID, originalName string) string {
	candidates := ExecutableCandidates(installedDir, payloadExcludedExts)
	if match := preferNamed(candidates, appID, strings.ToLower(originalName)); match != "" {
		return match
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return ""
}

// FindLooseExecutable picks the primary executable among files copied flat
// into the install directory: a file whose extension-stripped name matches
// the normalized app id wins, else the first file with the executable bit.
func FindLooseExecutable(dir, appID string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(stemOf(entry.Name()), appID) {
			return filepath.Join(dir, entry.Name())
		}
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if fsutil.IsExecutable(info) {
			return filepath.Join(dir, entry.Name())
		}
	}
	return ""
}

// ResolveLibraryDirs returns the runtime library search directories under
// an install dir, in the order the wrapper script exports them. Both lib/
// and a preserved usr/lib may be present simultaneously.
func ResolveLibraryDirs(installDir string) []string {
	var out []string
	for _, sub := range []string{"lib", filepath.Join("usr", "lib")} {
		dir := filepath.Join(installDir, sub)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			out = append(out, dir)
		}
	}
	return out
}

// preferNamed returns the first candidate whose extension-stripped base
// name case-insensitively equals one of the given names.
func preferNamed(candidates []string, names ...string) string {
	for _, c := range candidates {
		stem := stemOf(filepath.Base(c))
		for _, name := range names {
			if name != "" && strings.EqualFold(stem, name) {
				return c
			}
		}
	}
	return ""
}

func stemOf(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
