// Package artifactcache implements the content-addressed artifact cache
// rooted at <home>/cache, one directory per (group, artifact, version) with
// the artifact and its descriptor siblings inside.
package artifactcache

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/labt-build/labt/internal/core/domain"
	"github.com/labt-build/labt/internal/core/ports"
	"github.com/labt-build/labt/internal/fsutil"
	"go.trai.ch/zerr"
)

// Store implements ports.ArtifactCache rooted at a directory.
type Store struct {
	root string
}

var _ ports.ArtifactCache = (*Store)(nil)

// New creates a Store rooted at root (typically <home>/cache).
func New(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// PathFor returns the absolute path the artifact would occupy.
func (s *Store) PathFor(coord domain.ArtifactCoordinate) string {
	return filepath.Join(s.root, coord.CachePath(), coord.FileName())
}

// Contains reports whether the artifact is already cached.
func (s *Store) Contains(coord domain.ArtifactCoordinate) (bool, error) {
	_, err := os.Stat(s.PathFor(coord))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, zerr.With(zerr.Wrap(err, "failed to stat cache entry"), "coordinate", coord.String())
}

// Store atomically writes the artifact and its sibling descriptor files.
func (s *Store) Store(coord domain.ArtifactCoordinate, data []byte, siblings map[string][]byte) error {
	dir := filepath.Join(s.root, coord.CachePath())

	if err := fsutil.AtomicWriteFile(filepath.Join(dir, coord.FileName()), data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to store cache entry"), "coordinate", coord.String())
	}

	for name, content := range siblings {
		//nolint:gosec // name is a fixed descriptor filename (e.g. ".pom"), not user input
		if err := fsutil.AtomicWriteFile(filepath.Join(dir, name), content, 0o644); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to store cache sibling file"), "coordinate", coord.String())
		}
	}

	return nil
}

// Open returns the bytes of a cached artifact's primary file.
func (s *Store) Open(coord domain.ArtifactCoordinate) ([]byte, error) {
	//nolint:gosec // path is derived from a validated coordinate, not raw user input
	data, err := os.ReadFile(s.PathFor(coord))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open cache entry"), "coordinate", coord.String())
	}
	return data, nil
}
