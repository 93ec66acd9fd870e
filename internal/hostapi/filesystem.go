package hostapi

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/labt-build/labt/internal/core/domain"
	"go.trai.ch/zerr"
)

// FS implements the Host API's filesystem surface: every relative path is
// resolved against the project root a HostAPI is bound to.
type FS struct {
	root string
}

func newFS(root string) *FS { return &FS{root: root} }

// FS returns the filesystem capability object.
func (h *HostAPI) FS() *FS { return h.fsOnce() }

func (h *HostAPI) fsOnce() *FS {
	if h.fs == nil {
		h.fs = newFS(h.projectRoot)
	}
	return h.fs
}

func (f *FS) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(f.root, path)
}

// Mkdir creates path, failing if it already exists.
func (f *FS) Mkdir(path string) error {
	target := f.resolve(path)
	if _, err := os.Stat(target); err == nil {
		return zerr.With(domain.ErrTargetExists, "path", path)
	}
	if err := os.Mkdir(target, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", path)
	}
	return nil
}

// MkdirAll creates path and any missing parents; idempotent.
func (f *FS) MkdirAll(path string) error {
	if err := os.MkdirAll(f.resolve(path), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directories"), "path", path)
	}
	return nil
}

// Copy copies src to dst. Copying a directory requires recursive; copying a
// file into an existing directory appends the source's basename.
func (f *FS) Copy(src, dst string, recursive bool) error {
	srcPath, dstPath := f.resolve(src), f.resolve(dst)

	info, err := os.Stat(srcPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat copy source"), "path", src)
	}

	if info.IsDir() {
		if !recursive {
			return zerr.With(zerr.With(domain.ErrInvalidName, "reason", "directory copy requires recursive"), "path", src)
		}
		return copyDir(srcPath, dstPath)
	}

	if dstInfo, err := os.Stat(dstPath); err == nil && dstInfo.IsDir() {
		dstPath = filepath.Join(dstPath, filepath.Base(srcPath))
	}
	return copyFile(srcPath, dstPath, info.Mode())
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return zerr.Wrap(err, "failed to open copy source")
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create copy destination directory")
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return zerr.Wrap(err, "failed to create copy destination")
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return zerr.Wrap(err, "failed to copy file contents")
	}
	return nil
}

func copyDir(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0o750)
		}
		return copyFile(path, target, info.Mode())
	})
}

// Mv renames src to dst.
func (f *FS) Mv(src, dst string) error {
	if err := os.Rename(f.resolve(src), f.resolve(dst)); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, "failed to move path"), "src", src), "dst", dst)
	}
	return nil
}

// Rm removes target; recursive is required to remove a non-empty directory.
func (f *FS) Rm(target string, recursive bool) error {
	path := f.resolve(target)
	if recursive {
		if err := os.RemoveAll(path); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to remove path"), "path", target)
		}
		return nil
	}
	if err := os.Remove(path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove path"), "path", target)
	}
	return nil
}

// Exists reports whether path exists.
func (f *FS) Exists(path string) bool {
	_, err := os.Stat(f.resolve(path))
	return err == nil
}

// IsNewer reports whether a is strictly newer than b: true if b does not
// exist, false if a does not exist, otherwise compared by modification
// time.
func (f *FS) IsNewer(a, b string) bool {
	return IsNewer(f.resolve(a), f.resolve(b))
}

// IsNewer is the standalone decision procedure shared with the plugin
// driver's staleness check.
func IsNewer(a, b string) bool {
	bInfo, bErr := os.Stat(b)
	if bErr != nil {
		return true
	}
	aInfo, aErr := os.Stat(a)
	if aErr != nil {
		return false
	}
	return aInfo.ModTime().After(bInfo.ModTime())
}

// Glob returns paths under the project root matching pattern, in sorted
// order.
func (f *FS) Glob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(f.resolve(pattern))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to evaluate glob"), "pattern", pattern)
	}
	sort.Strings(matches)
	return matches, nil
}
