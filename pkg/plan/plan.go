// Package plan decides where a package's real payload lives and which file
// is its primary executable. The heuristics are fixed ordered rule lists
// over the extracted tree; tie-breaks always go to the earliest rule, then
// to encounter order within a rule.
package plan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/shiro123444/sideload/internal/logger"
	"github.com/shiro123444/sideload/pkg/errors"
	"github.com/shiro123444/sideload/pkg/model"
)

// payloadRule is one step of the DEB payload location procedure. It returns
// the chosen directory and install mode, or ok=false to fall through to the
// next rule.
type payloadRule struct {
	name   string
	locate func(root string, names []string) (dir string, mode model.InstallMode, ok bool)
}

// payloadRules is the fixed priority order: a vendor dir under opt/ first,
// then a name-matched dir under usr/lib or usr/share, then loose binaries
// in usr/bin.
var payloadRules = []payloadRule{
	{name: "opt", locate: locateOptDir},
	{name: "usr-named", locate: locateNamedDir},
	{name: "usr-bin", locate: locateLooseBin},
}

// PlanDeb locates the payload directory for an extracted DEB tree.
// No payload is a valid outcome: the returned plan simply has no
// PayloadSourceDir and installation continues with icon and menu side
// effects only. Executable discovery for whole-directory payloads happens
// after the copy, over the installed tree.
func PlanDeb(p *model.Package) model.InstallPlan {
	names := payloadSearchNames(p)
	for _, rule := range payloadRules {
		if dir, mode, ok := rule.locate(p.ExtractRoot, names); ok {
			logger.Debug("payload located", logger.Fields{
				"rule": rule.name,
				"dir":  dir,
				"mode": mode.String(),
			})
			return model.InstallPlan{PayloadSourceDir: dir, Mode: mode}
		}
	}
	return model.InstallPlan{}
}

// payloadSearchNames is the ordered list of directory names tried under
// usr/lib and usr/share: normalized id, original name, then the first
// underscore token of the archive filename.
func payloadSearchNames(p *model.Package) []string {
	fileToken := strings.Split(p.Stem(), "_")[0]
	return []string{p.AppID(), p.Name, fileToken}
}

func locateOptDir(root string, _ []string) (string, model.InstallMode, bool) {
	entries, err := os.ReadDir(filepath.Join(root, "opt"))
	if err != nil {
		return "", 0, false
	}
	for _, entry := range entries {
		if entry.IsDir() {
			return filepath.Join(root, "opt", entry.Name()), model.ModeWholeDirectory, true
		}
	}
	return "", 0, false
}

func locateNamedDir(root string, names []string) (string, model.InstallMode, bool) {
	for _, base := range []string{filepath.Join(root, "usr", "lib"), filepath.Join(root, "usr", "share")} {
		if _, err := os.Stat(base); err != nil {
			continue
		}
		for _, name := range names {
			if name == "" {
				continue
			}
			candidate := filepath.Join(base, name)
			if info, err := os.Stat(candidate); err == nil && info.IsDir() {
				return candidate, model.ModeWholeDirectory, true
			}
		}
	}
	return "", 0, false
}

func locateLooseBin(root string, _ []string) (string, model.InstallMode, bool) {
	binDir := filepath.Join(root, "usr", "bin")
	entries, err := os.ReadDir(binDir)
	if err != nil || len(entries) == 0 {
		return "", 0, false
	}
	return binDir, model.ModeLooseBinaries, true
}

// PlanTarGz selects the primary executable of a tar.gz tree. Unlike DEB
// planning, an empty candidate set is fatal here.
func PlanTarGz(p *model.Package) (model.InstallPlan, error) {
	candidates := ExecutableCandidates(p.ExtractRoot, tarGzExcludedExts)
	if len(candidates) == 0 {
		return model.InstallPlan{}, errors.Wrapf(errors.ErrNoExecutable, "%s", filepath.Base(p.SourcePath))
	}
	return model.InstallPlan{
		PayloadSourceDir:  p.ExtractRoot,
		Mode:              model.ModeWholeDirectory,
		PrimaryExecutable: candidates[0],
	}, nil
}
