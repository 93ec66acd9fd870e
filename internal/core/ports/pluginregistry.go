package ports

import (
	"context"

	"github.com/labt-build/labt/internal/core/domain"
)

// PluginRegistry installs plugins from Git URLs at a pinned version and
// parses each plugin's manifest.
type PluginRegistry interface {
	// Install clones gitURL shallowly, checks out ref (a tag, branch,
	// commit, or "latest"), parses the manifest, and returns it. If the
	// manifest's declared version disagrees with the checked-out tag, the
	// manifest's version wins for the install path.
	Install(ctx context.Context, gitURL, ref string) (*domain.PluginManifest, string, error)

	// Load parses the manifest of an already-installed plugin by name.
	// Returns domain.ErrPluginNotFound if it is not installed.
	Load(name, version string) (*domain.PluginManifest, string, error)
}
