package archive

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/blakesmith/ar"
	"github.com/klauspost/compress/zstd"
	"github.com/shiro123444/sideload/internal/logger"
	"github.com/shiro123444/sideload/pkg/fsutil"
	"github.com/ulikunitz/xz"
)

// extractDeb unpacks a .deb into destDir, leaving the package's filesystem
// tree (usr/, opt/, ...) at the root. It prefers the native dpkg-deb tool
// and falls back to reading the ar container directly when that is missing
// or fails.
func (e *Extractor) extractDeb(ctx context.Context, debPath, destDir string) error {
	cmd := exec.CommandContext(ctx, e.dpkgDeb, "-x", debPath, destDir)
	if err := cmd.Run(); err != nil {
		logger.Debug("dpkg-deb unavailable, using ar fallback", logger.Fields{
			"error": err.Error(),
		})
		return extractDebFallback(debPath, destDir)
	}
	return nil
}

// extractDebFallback walks the .deb's ar container looking for the embedded
// data.tar* member and extracts it in place.
func extractDebFallback(debPath, destDir string) error {
	f, err := os.Open(debPath)
	if err != nil {
		return fmt.Errorf("failed to open .deb file: %w", err)
	}
	defer func() { _ = f.Close() }()

	arReader := ar.NewReader(f)
	for {
		header, err := arReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read ar entry: %w", err)
		}

		// GNU ar pads member names; data.tar may carry any compression
		// suffix depending on how the package was built.
		name := strings.TrimSpace(header.Name)
		if strings.HasPrefix(name, "data.tar") {
			return extractDataTar(arReader, name, destDir)
		}
	}

	return fmt.Errorf("no data.tar member found in %s", filepath.Base(debPath))
}

// extractDataTar decompresses and unpacks the data.tar member. Debian
// archives use gzip, xz or zstd depending on the build tooling.
func extractDataTar(r io.Reader, name, destDir string) error {
	var tarReader *tar.Reader

	switch {
	case strings.HasSuffix(name, ".gz"):
		gzReader, err := gzip.NewReader(r)
		if err != nil {
			return fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() { _ = gzReader.Close() }()
		tarReader = tar.NewReader(gzReader)
	case strings.HasSuffix(name, ".xz"):
		xzReader, err := xz.NewReader(r)
		if err != nil {
			return fmt.Errorf("failed to create xz reader: %w", err)
		}
		tarReader = tar.NewReader(xzReader)
	case strings.HasSuffix(name, ".zst"):
		zstReader, err := zstd.NewReader(r)
		if err != nil {
			return fmt.Errorf("failed to create zstd reader: %w", err)
		}
		defer zstReader.Close()
		tarReader = tar.NewReader(zstReader)
	default:
		tarReader = tar.NewReader(r)
	}

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read tar entry: %w", err)
		}

		cleanPath := strings.TrimPrefix(header.Name, "./")
		if cleanPath == "" || cleanPath == "." {
			continue
		}
		targetPath := filepath.Join(destDir, cleanPath)

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(targetPath, fsutil.DirModeDefault); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", targetPath, err)
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(targetPath), fsutil.DirModeDefault); err != nil {
				return fmt.Errorf("failed to create parent directory for symlink: %w", err)
			}
			_ = os.Remove(targetPath)
			if err := os.Symlink(header.Linkname, targetPath); err != nil {
				return fmt.Errorf("failed to create symlink %s: %w", targetPath, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(targetPath), fsutil.DirModeDefault); err != nil {
				return fmt.Errorf("failed to create parent directory: %w", err)
			}
			outFile, err := fsutil.CreateFilePerm(targetPath, os.FileMode(header.Mode).Perm())
			if err != nil {
				return fmt.Errorf("failed to create file %s: %w", targetPath, err)
			}
			_, err = io.Copy(outFile, tarReader)
			_ = outFile.Close()
			if err != nil {
				return fmt.Errorf("failed to write file %s: %w", targetPath, err)
			}
		default:
			// Hard links and device nodes don't appear in the
			// application payloads this tool handles.
		}
	}

	return nil
}
