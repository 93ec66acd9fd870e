package ports

import "github.com/labt-build/labt/internal/core/domain"

// ProjectStore locates and persists the project file and lockfile.
type ProjectStore interface {
	// FindRoot walks ancestors from cwd until the project file is found.
	// Returns domain.ErrProjectNotFound if none is found.
	FindRoot(cwd string) (string, error)

	// LoadProject parses the project file at root into a ProjectConfig.
	LoadProject(root string) (*domain.ProjectConfig, error)

	// SaveProject serializes cfg as the project file at root, replacing the
	// whole document; comments and the original key order are not kept
	// (AddDependency is the comment-preserving edit).
	SaveProject(root string, cfg *domain.ProjectConfig) error

	// AddDependency records one dependency in the project file by editing
	// the existing document in place, so unrelated keys and comments
	// round-trip untouched.
	AddDependency(root, artifact string, spec domain.DependencySpec) error

	// LoadLockfile parses the lockfile at root. Returns a nil, nil pair if
	// no lockfile exists yet.
	LoadLockfile(root string) (*domain.Lockfile, error)

	// SaveLockfile writes the lockfile at root atomically.
	SaveLockfile(root string, lock *domain.Lockfile) error
}
