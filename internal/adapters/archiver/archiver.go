// Package archiver implements ports.Archiver over stdlib archive/zip,
// archive/tar and compress/gzip, the same combination the rest of the
// retrieved corpus reaches for when it touches archives at all.
package archiver

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/labt-build/labt/internal/core/domain"
	"github.com/labt-build/labt/internal/core/ports"
	"go.trai.ch/zerr"
)

// Archiver implements ports.Archiver.
type Archiver struct{}

// New creates an Archiver.
func New() *Archiver { return &Archiver{} }

// Write creates a zip archive at dst from entries, staged to a temp sibling
// and renamed into place so a reader never observes a partial archive.
func (a *Archiver) Write(dst string, entries []ports.ArchiveEntry) error {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create archive parent directory")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(dst)+".tmp-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create staging archive")
	}
	tmpPath := tmp.Name()

	if err := writeZip(tmp, entries); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to close staging archive")
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to rename staging archive into place")
	}
	return nil
}

func writeZip(w io.Writer, entries []ports.ArchiveEntry) error {
	zw := zip.NewWriter(w)
	for _, e := range entries {
		name := filepath.ToSlash(e.Name)
		if e.IsDir {
			if _, err := zw.Create(name + "/"); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to write archive directory entry"), "entry", name)
			}
			continue
		}
		if err := writeZipFile(zw, name, e.Path); err != nil {
			return err
		}
	}
	return zw.Close()
}

func writeZipFile(zw *zip.Writer, name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open entry source file"), "entry", name)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat entry source file"), "entry", name)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to build archive header"), "entry", name)
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create archive entry"), "entry", name)
	}
	if _, err := io.Copy(w, f); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write archive entry contents"), "entry", name)
	}
	return nil
}

// Extract extracts names (or every entry, if names is empty) from the
// archive at src into dst. The archive format is detected from src's
// extension: ".zip" or a ".tar"/".tar.gz"/".tgz" variant.
func (a *Archiver) Extract(src, dst string, names []string) error {
	if isTarArchive(src) {
		return extractTar(src, dst, names)
	}
	return extractZip(src, dst, names)
}

func isTarArchive(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasSuffix(lower, ".tar") || strings.HasSuffix(lower, ".tar.gz") || strings.HasSuffix(lower, ".tgz")
}

func extractZip(src, dst string, names []string) error {
	zr, err := zip.OpenReader(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open zip archive"), "path", src)
	}
	defer zr.Close()

	wanted := toSet(names)
	for _, f := range zr.File {
		if len(wanted) > 0 && !wanted[f.Name] {
			continue
		}
		target, err := safeJoin(dst, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o750); err != nil {
				return zerr.Wrap(err, "failed to create extracted directory")
			}
			continue
		}
		if err := extractZipEntry(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractZipEntry(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create extracted entry's parent directory")
	}
	r, err := f.Open()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open archive entry"), "entry", f.Name)
	}
	defer r.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, f.Mode())
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create extracted file"), "entry", f.Name)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write extracted file"), "entry", f.Name)
	}
	return nil
}

func extractTar(src, dst string, names []string) error {
	f, err := os.Open(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open tar archive"), "path", src)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(src), "gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to open gzip stream"), "path", src)
		}
		defer gz.Close()
		r = gz
	}

	wanted := toSet(names)
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to read tar entry"), "path", src)
		}
		if len(wanted) > 0 && !wanted[hdr.Name] {
			continue
		}
		target, err := safeJoin(dst, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o750); err != nil {
				return zerr.Wrap(err, "failed to create extracted directory")
			}
		case tar.TypeReg:
			if err := extractTarEntry(tr, target, os.FileMode(hdr.Mode)); err != nil {
				return err
			}
		}
	}
}

func extractTarEntry(r io.Reader, target string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create extracted entry's parent directory")
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create extracted file"), "path", target)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write extracted file"), "path", target)
	}
	return nil
}

// safeJoin joins dst and name, rejecting any entry whose normalized path
// would land outside dst.
func safeJoin(dst, name string) (string, error) {
	target := filepath.Join(dst, name)
	rel, err := filepath.Rel(dst, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", zerr.With(domain.ErrZipSlip, "entry", name)
	}
	return target, nil
}

func toSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
