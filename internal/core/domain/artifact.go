package domain

import (
	"path/filepath"
	"strings"
)

// ArtifactCoordinate identifies a concrete versioned library: an Artifact in
// the glossary sense, (group, artifact, version, packaging).
type ArtifactCoordinate struct {
	Group     string
	Artifact  string
	Version   string
	Packaging string
}

// String renders the Maven-style "group:artifact:version" coordinate used in
// error messages.
func (c ArtifactCoordinate) String() string {
	return c.Group + ":" + c.Artifact + ":" + c.Version
}

// FileName is the archive file name for this coordinate:
// "<artifact>-<version>.<packaging>".
func (c ArtifactCoordinate) FileName() string {
	return c.Artifact + "-" + c.Version + "." + c.Packaging
}

// DescriptorFileName is the sibling file a resolver's descriptor is cached
// under, so a cache hit can reconstruct transitive requests offline.
func (c ArtifactCoordinate) DescriptorFileName() string {
	return c.Artifact + "-" + c.Version + ".descriptor.json"
}

// CachePath is the directory, relative to the cache root, this coordinate's
// artifact and sibling descriptor files live under:
// <group-with-slashes>/<artifact>/<version>/. Splitting the group on "."
// into directory components keeps the original coordinate recoverable from
// the path.
func (c ArtifactCoordinate) CachePath() string {
	groupPath := filepath.Join(strings.Split(c.Group, ".")...)
	return filepath.Join(groupPath, c.Artifact, c.Version)
}

// Descriptor is the POM-like metadata a resolver returns for a coordinate:
// its packaging, transitive dependency requests, and the origin URL the
// artifact itself can be fetched from.
type Descriptor struct {
	Packaging   string               `json:"packaging"`
	Transitives []DependencyRequest  `json:"transitives,omitempty"`
	ArchiveURL  string               `json:"archive_url"`
}

// DependencyRequest is one unresolved entry on the frontier queue: a
// coordinate to resolve, optionally scoped by the parent that introduced it
// and the exclusions that parent declared.
type DependencyRequest struct {
	Group      string       `json:"group"`
	Artifact   string       `json:"artifact"`
	Version    string       `json:"version"`
	Direct     bool         `json:"direct,omitempty"`
	ParentName string       `json:"parent_name,omitempty"`
	Exclusions []Coordinate `json:"exclusions,omitempty"`
}
