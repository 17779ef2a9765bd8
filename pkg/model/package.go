// Package model defines the core types shared across the install engine:
// the package being installed, the install plan produced for it, and the
// result reported back to the caller.
package model

import (
	"os"
	"strings"

	"github.com/shiro123444/sideload/internal/logger"
)

// PackageType classifies an archive by its filename.
type PackageType int

// Supported package types.
const (
	TypeUnknown PackageType = iota
	TypeDeb
	TypeTarGz
)

// String returns a human-readable name for the package type.
func (t PackageType) String() string {
	switch t {
	case TypeDeb:
		return "deb"
	case TypeTarGz:
		return "tar.gz"
	default:
		return "unknown"
	}
}

// DetectType classifies a file path by its extension. The comparison is
// case-insensitive on the base name.
func DetectType(path string) PackageType {
	base := strings.ToLower(baseName(path))
	switch {
	case strings.HasSuffix(base, ".deb"):
		return TypeDeb
	case strings.HasSuffix(base, ".tar.gz"), strings.HasSuffix(base, ".tgz"):
		return TypeTarGz
	default:
		return TypeUnknown
	}
}

func baseName(path string) string {
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// Package carries everything known about an archive as it moves through
// the pipeline. Fields past Type are filled in by extraction and metadata
// inference.
type Package struct {
	SourcePath string
	Type       PackageType

	Name        string
	Version     string
	Description string

	// IconPath points at the best icon found inside the extracted tree,
	// empty when none was found.
	IconPath string

	// MenuEntrySource is the path of a .desktop file shipped inside the
	// package, empty when the package ships none.
	MenuEntrySource string

	// ExtractRoot is the scratch directory holding the extracted tree.
	ExtractRoot string

	cleaned bool
}

// NewPackage builds a Package for the archive at path, classifying it by
// filename.
func NewPackage(path string) *Package {
	return &Package{SourcePath: path, Type: DetectType(path)}
}

// Stem returns the archive base name with its package extension stripped.
func (p *Package) Stem() string {
	base := baseName(p.SourcePath)
	for _, suffix := range []string{".tar.gz", ".tgz", ".deb"} {
		if strings.HasSuffix(strings.ToLower(base), suffix) {
			return base[:len(base)-len(suffix)]
		}
	}
	return base
}

// AppID returns the normalized identifier used for install directories,
// wrapper names and desktop entries.
func (p *Package) AppID() string {
	return NormalizeAppID(p.Name)
}

// Cleanup removes the extraction scratch directory. It is safe to call
// more than once; only the first call does any work.
func (p *Package) Cleanup() {
	if p.cleaned || p.ExtractRoot == "" {
		return
	}
	p.cleaned = true
	if err := os.RemoveAll(p.ExtractRoot); err != nil {
		logger.Warnf("failed to remove scratch directory %s: %v", p.ExtractRoot, err)
	}
}

// NormalizeAppID lowercases a display name, trims surrounding whitespace
// and replaces inner spaces with hyphens. Applying it twice yields the
// same result.
func NormalizeAppID(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
