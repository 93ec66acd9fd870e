// Package projectfile implements ports.ProjectStore: ancestor-walk project
// root discovery and TOML decode/encode of the project file and lockfile.
package projectfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/labt-build/labt/internal/core/domain"
	"github.com/labt-build/labt/internal/core/ports"
	"github.com/labt-build/labt/internal/fsutil"
	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/zerr"
)

// ProjectFilename is the name of the project file every build looks for
// while walking ancestors.
const ProjectFilename = "Labt.toml"

// LockfileFilename is the name of the lockfile, always a sibling of the
// project file.
const LockfileFilename = "Labt.lock"

// Store implements ports.ProjectStore.
type Store struct {
	logger ports.Logger
}

var _ ports.ProjectStore = (*Store)(nil)

// New creates a new Store.
func New(logger ports.Logger) *Store {
	return &Store{logger: logger}
}

// FindRoot walks ancestors from cwd until Labt.toml is found.
func (s *Store) FindRoot(cwd string) (string, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve working directory")
	}

	for {
		candidate := filepath.Join(dir, ProjectFilename)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(domain.ErrProjectNotFound, "searched_from", cwd)
		}
		dir = parent
	}
}

// LoadProject parses Labt.toml at root.
func (s *Store) LoadProject(root string) (*domain.ProjectConfig, error) {
	path := filepath.Join(root, ProjectFilename)

	//nolint:gosec // path is joined from a discovered project root, not raw user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read project file"), "path", path)
	}

	var cfg domain.ProjectConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrMalformedProjectFile, err.Error()), "path", path)
	}

	return &cfg, nil
}

// SaveProject serializes cfg as Labt.toml at root, replacing the whole
// document. Field order follows ProjectConfig's struct field order; for
// comment-preserving single-dependency edits use AddDependency.
func (s *Store) SaveProject(root string, cfg *domain.ProjectConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return zerr.Wrap(err, "failed to marshal project file")
	}
	path := filepath.Join(root, ProjectFilename)
	if err := fsutil.AtomicWriteFile(path, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write project file"), "path", path)
	}
	return nil
}

// AddDependency edits the project file in place: the artifact's
// [dependencies.<artifact>] table is replaced or appended and every other
// line, comments included, survives unchanged.
func (s *Store) AddDependency(root, artifact string, spec domain.DependencySpec) error {
	path := filepath.Join(root, ProjectFilename)

	//nolint:gosec // path is joined from a discovered project root, not raw user input
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read project file"), "path", path)
	}

	doc := ParseDocument(data)
	doc.SetDependency(artifact, spec)

	if err := fsutil.AtomicWriteFile(path, doc.Bytes(), 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write project file"), "path", path)
	}
	return nil
}

// LoadLockfile parses Labt.lock at root, returning (nil, nil) if absent.
func (s *Store) LoadLockfile(root string) (*domain.Lockfile, error) {
	path := filepath.Join(root, LockfileFilename)

	//nolint:gosec // path is joined from a discovered project root, not raw user input
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read lockfile"), "path", path)
	}

	var lock domain.Lockfile
	if err := toml.Unmarshal(data, &lock); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrMalformedLockfile, err.Error()), "path", path)
	}

	return &lock, nil
}

// SaveLockfile writes Labt.lock at root atomically. No partial lockfile is
// ever visible to readers.
func (s *Store) SaveLockfile(root string, lock *domain.Lockfile) error {
	data, err := toml.Marshal(lock)
	if err != nil {
		return zerr.Wrap(err, "failed to marshal lockfile")
	}
	path := filepath.Join(root, LockfileFilename)
	if err := fsutil.AtomicWriteFile(path, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write lockfile"), "path", path)
	}
	return nil
}
