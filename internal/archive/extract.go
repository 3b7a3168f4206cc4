// Package archive unpacks downloaded release archives, rejecting entries
// that would escape the destination directory.
package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/driftnet-io/drift-releases/internal/model"
)

// maxEntryBytes caps a single extracted entry (1 GB). Release archives hold
// single binaries of a few tens of megabytes; the cap guards against
// decompression bombs.
const maxEntryBytes = 1 << 30

// defaultFileMode is applied to zip entries, whose format does not reliably
// record unix permissions. The archives hold executables, so the exec bit
// is part of the default.
const defaultFileMode = os.FileMode(0o755)

// Extract unpacks the archive at archivePath into destDir, choosing the
// format from the file extension, and returns destDir. Drift release
// archives expand flat binaries directly into the destination, so destDir
// is the usable binary directory on success. Entries already extracted
// before an unsafe one is encountered are left in place.
func Extract(archivePath, destDir string) (string, error) {
	info, err := os.Stat(destDir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", model.ErrDestinationNotFound, destDir)
	}

	name := strings.ToLower(filepath.Base(archivePath))
	switch {
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		err = extractTarGz(archivePath, destDir)
	case strings.HasSuffix(name, ".zip"):
		err = extractZip(archivePath, destDir)
	default:
		return "", fmt.Errorf("%w: %s", model.ErrUnsupportedArchiveFormat, filepath.Base(archivePath))
	}
	if err != nil {
		return "", err
	}
	return destDir, nil
}

// entryPath validates that the entry name stays lexically inside destDir
// and returns the joined output path.
func entryPath(destDir, name string) (string, error) {
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", fmt.Errorf("%w: %q escapes the destination directory", model.ErrUnsafeArchiveEntry, name)
	}
	return filepath.Join(destDir, filepath.FromSlash(name)), nil
}

func extractTarGz(archivePath, destDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("reading gzip stream of %s: %w", archivePath, err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tar entry: %w", err)
		}

		out, err := entryPath(destDir, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(out, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", out, err)
			}
		case tar.TypeReg:
			// Tar records permissions; the exec bit on binaries survives
			// extraction.
			if err := writeFile(out, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return err
			}
		default:
			// Symlinks and special files never appear in release archives;
			// skip rather than create paths outside our control.
		}
	}
}

func extractZip(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", archivePath, err)
	}
	defer r.Close()

	for _, f := range r.File {
		out, err := entryPath(destDir, f.Name)
		if err != nil {
			return err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(out, 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", out, err)
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("opening entry %s: %w", f.Name, err)
		}
		mode := f.Mode().Perm()
		if mode == 0 {
			mode = defaultFileMode
		}
		err = writeFile(out, rc, mode)
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", filepath.Dir(path), err)
	}
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := io.Copy(out, io.LimitReader(r, maxEntryBytes)); err != nil {
		out.Close()
		return fmt.Errorf("extracting %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
