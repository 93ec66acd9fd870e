// Package fsutil provides the staging-then-atomic-rename discipline every
// on-disk write in labt goes through, so readers never observe a partial
// write.
package fsutil

import (
	"os"
	"path/filepath"

	"go.trai.ch/zerr"
)

// AtomicWriteFile writes data to a temporary sibling of path, then renames it
// into place. The parent directory is created if needed.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create parent directory")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create staging file")
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to write staging file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to close staging file")
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to set staging file permissions")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return zerr.Wrap(err, "failed to rename staging file into place")
	}
	return nil
}

// AtomicRenameDir stages a directory tree at stagingPath and renames it into
// finalPath. If finalPath already exists it is removed first, so an install
// that overwrites a different version performs uninstall-then-install under
// the same discipline.
func AtomicRenameDir(stagingPath, finalPath string) error {
	if err := os.MkdirAll(filepath.Dir(finalPath), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create parent directory")
	}
	if _, err := os.Stat(finalPath); err == nil {
		if err := os.RemoveAll(finalPath); err != nil {
			return zerr.Wrap(err, "failed to remove existing directory before rename")
		}
	}
	if err := os.Rename(stagingPath, finalPath); err != nil {
		return zerr.Wrap(err, "failed to rename staging directory into place")
	}
	return nil
}

// RemoveStaging best-effort removes a staging path; used on abort/failure
// paths where the primary error takes precedence.
func RemoveStaging(stagingPath string) {
	_ = os.RemoveAll(stagingPath)
}
