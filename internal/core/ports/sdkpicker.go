package ports

import "github.com/labt-build/labt/internal/core/domain"

// SDKPicker drives the interactive SDK package listing: packages filtered by
// channel and fuzzy query, installed state shown, and per-package actions
// toggled before the resulting selections are handed to SDKInstaller.Plan.
type SDKPicker interface {
	// Pick runs the interactive listing over packages and returns the
	// user's selections. A nil, nil return means the user cancelled without
	// selecting anything.
	Pick(packages []domain.SDKPackage) ([]domain.PackageSelection, error)
}
