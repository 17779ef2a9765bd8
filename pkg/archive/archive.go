// Package archive classifies and unpacks source packages into a private
// scratch directory owned by the Package record.
package archive

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mholt/archives"
	"github.com/shiro123444/sideload/internal/logger"
	"github.com/shiro123444/sideload/pkg/errors"
	"github.com/shiro123444/sideload/pkg/fsutil"
	"github.com/shiro123444/sideload/pkg/model"
)

const scratchPrefix = "sideload-"

// Extractor unpacks DEB and tar.gz archives.
type Extractor struct {
	// dpkgDeb is the native DEB extraction command. Overridable in tests.
	dpkgDeb string
}

// NewExtractor creates an Extractor using the system dpkg-deb tool.
func NewExtractor() *Extractor {
	return &Extractor{dpkgDeb: "dpkg-deb"}
}

// Extract unpacks the package into a freshly created scratch directory and
// records it on the Package. The scratch directory remains the Package's
// responsibility on every path, including failure: callers are expected to
// defer Package.Cleanup.
func (e *Extractor) Extract(ctx context.Context, p *model.Package) error {
	if p.Type == model.TypeUnknown {
		return errors.Wrapf(errors.ErrUnknownPackageType, "%s", filepath.Base(p.SourcePath))
	}

	root, err := os.MkdirTemp("", scratchPrefix)
	if err != nil {
		return errors.Wrap(errors.ErrExtractionFailed, err.Error())
	}
	p.ExtractRoot = root

	switch p.Type {
	case model.TypeDeb:
		err = e.extractDeb(ctx, p.SourcePath, root)
	case model.TypeTarGz:
		err = extractTarGz(ctx, p.SourcePath, root)
	}
	if err != nil {
		return errors.Wrap(errors.ErrExtractionFailed, err.Error())
	}

	logger.Debug("package extracted", logger.Fields{
		"source": p.SourcePath,
		"root":   root,
	})
	return nil
}

// extractTarGz unpacks a gzipped tarball, preserving permission bits and
// symlinks. The executable bits matter downstream: plan discovery keys off
// them.
func extractTarGz(ctx context.Context, archivePath, destDir string) error {
	fsys, err := archives.FileSystem(ctx, archivePath, nil)
	if err != nil {
		return fmt.Errorf("failed to open archive file: %w", err)
	}
	if closer, ok := fsys.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}

	// FileSystem falls back to a plain-file FS when it cannot identify the
	// stream. Walking that would look like an empty archive, so an
	// unreadable tarball must fail here instead.
	if _, ok := fsys.(archives.FileFS); ok {
		return fmt.Errorf("unreadable archive: %s", filepath.Base(archivePath))
	}

	if err := os.MkdirAll(destDir, fsutil.DirModeDefault); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		return extractEntry(fsys, path, destDir, d)
	})
}

// extractEntry processes a single archive entry and writes it to destDir.
func extractEntry(fsys fs.FS, path, destDir string, d fs.DirEntry) error {
	if path == "." {
		return nil
	}

	targetPath := filepath.Join(destDir, path)

	if d.IsDir() {
		return os.MkdirAll(targetPath, fsutil.DirModeDefault)
	}

	info, err := d.Info()
	if err != nil {
		return fmt.Errorf("failed to get file info for %s: %w", path, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		return writeSymlink(fsys, path, targetPath)
	}
	return writeRegularFile(fsys, path, targetPath, info)
}

// writeSymlink creates a symlink at targetPath with contents from the archive entry at path.
func writeSymlink(fsys fs.FS, path, targetPath string) error {
	linkTarget, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read symlink %s: %w", path, err)
	}
	defer func() { _ = linkTarget.Close() }()

	targetBytes, err := io.ReadAll(linkTarget)
	if err != nil {
		return fmt.Errorf("failed to read symlink target %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), fsutil.DirModeDefault); err != nil {
		return fmt.Errorf("failed to create parent directory for symlink %s: %w", path, err)
	}

	_ = os.Remove(targetPath)
	return os.Symlink(string(targetBytes), targetPath)
}

// writeRegularFile writes a regular file from the archive entry to targetPath
// and preserves its permission bits.
func writeRegularFile(fsys fs.FS, path, targetPath string, info fs.FileInfo) error {
	srcFile, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", path, err)
	}
	defer func() { _ = srcFile.Close() }()

	if err := os.MkdirAll(filepath.Dir(targetPath), fsutil.DirModeDefault); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", path, err)
	}

	dstFile, err := fsutil.CreateFilePerm(targetPath, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", targetPath, err)
	}
	defer func() { _ = dstFile.Close() }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file %s: %w", path, err)
	}

	return os.Chmod(targetPath, info.Mode().Perm())
}
