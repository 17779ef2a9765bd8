package meta

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Icon scoring weights. Larger wins; ties resolve to the first candidate in
// walk order.
const (
	scoreNameHint = 100 // filename contains "icon" or "logo"
	scoreAppMatch = 50  // filename contains the inferred app name
	scorePNG      = 10  // PNG beats SVG/ICO/XPM at equal quality hints
)

// iconSizeTokens are checked against the full path, largest first; only the
// first match contributes its numeric value.
var iconSizeTokens = []struct {
	token string
	value int
}{
	{"256", 256},
	{"128", 128},
	{"64", 64},
	{"48", 48},
}

var iconExtensions = map[string]bool{
	".png": true,
	".svg": true,
	".ico": true,
	".xpm": true,
}

// debIconRule is one step of the fixed DEB icon search: a directory pattern
// matcher applied inside a search dir before moving to the next rule.
type debIconRule func(relPath string) bool

var debIconRules = []debIconRule{
	func(rel string) bool { return parentDirHasPrefix(rel, "256") && strings.HasSuffix(rel, ".png") },
	func(rel string) bool { return parentDirHasPrefix(rel, "128") && strings.HasSuffix(rel, ".png") },
	func(rel string) bool { return strings.HasSuffix(rel, ".png") },
	func(rel string) bool { return strings.HasSuffix(rel, ".svg") },
}

// findDebIcon implements the DEB icon search order: pixmaps before icons,
// and within each directory large PNGs before any PNG before any SVG.
// The first match wins; there is no cross-directory scoring.
func findDebIcon(root string) string {
	searchDirs := []string{
		filepath.Join(root, "usr", "share", "pixmaps"),
		filepath.Join(root, "usr", "share", "icons"),
	}
	for _, dir := range searchDirs {
		files := listFilesRelative(dir)
		if len(files) == 0 {
			continue
		}
		for _, rule := range debIconRules {
			for _, rel := range files {
				if rule(strings.ToLower(rel)) {
					return filepath.Join(dir, rel)
				}
			}
		}
	}
	return ""
}

// findBestIcon scores every icon candidate in the tree and returns the
// highest-scoring path, or empty when the tree carries no icons at all.
// Scoring runs over the path relative to root, so digits in the scratch
// directory name cannot masquerade as size tokens.
func findBestIcon(root, appName string) string {
	var best string
	bestScore := -1
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !iconExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		// Strict comparison keeps the first-encountered candidate on ties.
		if s := ScoreIcon(rel, appName); s > bestScore {
			best = path
			bestScore = s
		}
		return nil
	})
	return best
}

// ScoreIcon assigns a deterministic score to an icon candidate. The rules
// are ordered and independent: name hints dominate, app-name matches come
// next, then the first size token found in the path, then format.
func ScoreIcon(path, appName string) int {
	score := 0
	name := strings.ToLower(filepath.Base(path))
	fullPath := strings.ToLower(path)

	if strings.Contains(name, "icon") || strings.Contains(name, "logo") {
		score += scoreNameHint
	}
	if appName != "" && strings.Contains(name, strings.ToLower(appName)) {
		score += scoreAppMatch
	}
	for _, size := range iconSizeTokens {
		if strings.Contains(fullPath, size.token) {
			score += size.value
			break
		}
	}
	if strings.HasSuffix(name, ".png") {
		score += scorePNG
	}
	return score
}

// listFilesRelative returns all regular files under dir as paths relative
// to dir, in walk order. A missing dir yields nil.
func listFilesRelative(dir string) []string {
	var out []string
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			return nil
		}
		out = append(out, rel)
		return nil
	})
	return out
}

// parentDirHasPrefix reports whether the immediate parent directory of rel
// starts with the given prefix. Only the direct parent counts: a PNG in
// 256x256/foo.png matches "256", but 256x256/apps/foo.png does not.
func parentDirHasPrefix(rel, prefix string) bool {
	parent := filepath.Base(filepath.Dir(rel))
	return parent != "." && strings.HasPrefix(parent, prefix)
}
