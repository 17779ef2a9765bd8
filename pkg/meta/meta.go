// Package meta infers application identity (name, version, description,
// icon, menu entry) from an extracted package tree. DEB packages carry
// partial metadata; tar.gz bundles carry none, so everything is derived
// from filename conventions and filesystem heuristics.
package meta

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	goversion "github.com/hashicorp/go-version"
	"github.com/shiro123444/sideload/internal/logger"
	"github.com/shiro123444/sideload/pkg/fsutil"
	"github.com/shiro123444/sideload/pkg/model"
)

// Inferencer populates a Package's metadata from its extracted tree.
type Inferencer struct{}

// NewInferencer creates an Inferencer.
func NewInferencer() *Inferencer {
	return &Inferencer{}
}

// Infer fills in name, version, description, icon and menu-entry source on
// the package. It requires a populated ExtractRoot.
func (i *Inferencer) Infer(p *model.Package) error {
	switch p.Type {
	case model.TypeDeb:
		i.inferDeb(p)
	case model.TypeTarGz:
		i.inferTarGz(p)
	}
	return nil
}

// inferDeb derives metadata from the name_version_arch filename convention,
// then lets any desktop entry inside the tree override it.
func (i *Inferencer) inferDeb(p *model.Package) {
	parts := strings.Split(p.Stem(), "_")
	if len(parts) > 0 && parts[0] != "" {
		p.Name = parts[0]
	} else {
		p.Name = p.Stem()
	}
	if len(parts) > 1 {
		p.Version = normalizeVersion(parts[1])
	}

	if entry := findMenuEntry(p.ExtractRoot); entry != "" {
		p.MenuEntrySource = entry
		name, comment := parseEntryIdentity(entry)
		if name != "" {
			p.Name = name
		}
		if comment != "" {
			p.Description = comment
		}
	}

	p.IconPath = findDebIcon(p.ExtractRoot)
}

// inferTarGz names the app after its sole executable when there is exactly
// one, otherwise after the first hyphen token of the filename. The version
// is the first filename token that starts with a digit.
func (i *Inferencer) inferTarGz(p *model.Package) {
	stem := p.Stem()
	parts := strings.Split(stem, "-")

	executables := listExecutables(p.ExtractRoot)
	if len(executables) == 1 {
		base := filepath.Base(executables[0])
		p.Name = strings.TrimSuffix(base, filepath.Ext(base))
	} else if len(parts) > 0 && parts[0] != "" {
		p.Name = parts[0]
	} else {
		p.Name = stem
	}

	for _, part := range parts {
		if part != "" && part[0] >= '0' && part[0] <= '9' {
			p.Version = normalizeVersion(part)
			break
		}
	}

	p.Description = fmt.Sprintf("%s application", p.Name)
	p.IconPath = findBestIcon(p.ExtractRoot, p.Name)
	if p.IconPath != "" {
		logger.Debug("selected icon", logger.Fields{"icon": p.IconPath})
	}
}

// normalizeVersion validates a version token. Tokens that parse as a
// version are kept verbatim; unparseable tokens (e.g. "linux64") are kept
// too, since filename conventions are loose — validation only exists so the
// inspect output can flag oddities at debug level.
func normalizeVersion(token string) string {
	if _, err := goversion.NewVersion(token); err != nil {
		logger.Debug("version token does not parse", logger.Fields{"token": token})
	}
	return token
}

// listExecutables returns every regular file in the tree with an executable
// permission bit, in walk order.
func listExecutables(root string) []string {
	var out []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
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
