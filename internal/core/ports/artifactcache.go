package ports

import "github.com/labt-build/labt/internal/core/domain"

// ArtifactCache is the content-addressed on-disk store rooted at the user
// home directory, keyed by (group, artifact, version, packaging). A cache
// hit must never trigger network I/O.
type ArtifactCache interface {
	// PathFor returns the absolute path an artifact would occupy, without
	// touching disk.
	PathFor(coord domain.ArtifactCoordinate) string

	// Contains reports whether the artifact is already cached.
	Contains(coord domain.ArtifactCoordinate) (bool, error)

	// Store atomically writes the artifact bytes and any sibling descriptor
	// files (e.g. the POM) to the cache.
	Store(coord domain.ArtifactCoordinate, data []byte, siblings map[string][]byte) error

	// Open returns a read handle to a cached artifact's primary file.
	Open(coord domain.ArtifactCoordinate) ([]byte, error)
}
