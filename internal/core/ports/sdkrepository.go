package ports

import (
	"context"

	"github.com/labt-build/labt/internal/core/domain"
)

// SDKRepository fetches and parses a Google-format repository manifest.
type SDKRepository interface {
	// FetchManifest retrieves and parses the repository2-1.xml document at
	// url, returning the declared packages.
	FetchManifest(ctx context.Context, url string) ([]domain.SDKPackage, error)

	// Sync fetches the manifest at url, caches the raw document under
	// <home>/repositories/<name>.xml, and returns the declared packages.
	Sync(ctx context.Context, name, url string) ([]domain.SDKPackage, error)

	// LoadCached parses the cached manifest for a named repository without
	// touching the network. Returns domain.ErrRepositoryFetch if the
	// repository has never been synced.
	LoadCached(name string) ([]domain.SDKPackage, error)
}

// SDKInstaller computes and executes install/uninstall/upgrade plans for SDK
// packages.
type SDKInstaller interface {
	// Plan orders selections: uninstall actions first (leaves of the
	// installed dependency graph first), then install actions ordered so
	// each package's declared dependencies appear earlier.
	Plan(selections []domain.PackageSelection) ([]domain.PackageSelection, error)

	// Execute runs an ordered plan: downloads, verifies, extracts and
	// atomically installs, or removes, each selected package in turn.
	Execute(ctx context.Context, plan []domain.PackageSelection) error

	// Installed lists packages currently installed under the SDK root.
	Installed() ([]domain.SDKPackage, error)
}
