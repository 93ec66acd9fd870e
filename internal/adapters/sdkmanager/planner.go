package sdkmanager

import (
	"sort"

	"github.com/labt-build/labt/internal/core/domain"
)

// planSelections implements ports.SDKInstaller.Plan: uninstall actions
// ordered leaves-of-the-installed-dependency-graph first, then install
// actions ordered so each package's dependencies appear earlier, per
// each package after its declared dependencies.
func planSelections(selections []domain.PackageSelection) ([]domain.PackageSelection, error) {
	var uninstalls, installs []domain.PackageSelection
	for _, s := range selections {
		switch s.Action {
		case domain.ActionUninstall:
			uninstalls = append(uninstalls, s)
		case domain.ActionInstall, domain.ActionUpgradeTo, domain.ActionDowngradeTo:
			installs = append(installs, s)
		}
	}

	plan := make([]domain.PackageSelection, 0, len(uninstalls)+len(installs))
	plan = append(plan, orderLeavesFirst(uninstalls)...)
	plan = append(plan, orderDependenciesFirst(installs)...)
	return plan, nil
}

// orderDependenciesFirst topologically sorts install selections via Kahn's
// algorithm so a package is installed only after every package it depends
// on; ties are broken lexicographically by path for a deterministic plan.
func orderDependenciesFirst(selections []domain.PackageSelection) []domain.PackageSelection {
	byPath := indexByPath(selections)

	blockedBy := make(map[string]int, len(selections))
	for _, s := range selections {
		for _, dep := range s.Package.Dependencies {
			if _, ok := byPath[dep.Artifact]; ok {
				blockedBy[s.Package.Path]++
			}
		}
	}

	// unblocks[x] lists the paths that become less blocked once x is placed.
	unblocks := map[string][]string{}
	for _, s := range selections {
		for _, dep := range s.Package.Dependencies {
			if _, ok := byPath[dep.Artifact]; ok {
				unblocks[dep.Artifact] = append(unblocks[dep.Artifact], s.Package.Path)
			}
		}
	}

	return kahn(byPath, blockedBy, unblocks)
}

// orderLeavesFirst topologically sorts uninstall selections so a package is
// uninstalled only after every selection that depends on it has already
// been removed — the package nothing-in-the-set-depends-on goes first.
func orderLeavesFirst(selections []domain.PackageSelection) []domain.PackageSelection {
	byPath := indexByPath(selections)

	blockedBy := make(map[string]int, len(selections))
	unblocks := map[string][]string{}
	for _, s := range selections {
		for _, dep := range s.Package.Dependencies {
			if _, ok := byPath[dep.Artifact]; !ok {
				continue
			}
			// s depends on dep: dep may not be uninstalled until s is.
			blockedBy[dep.Artifact]++
			unblocks[s.Package.Path] = append(unblocks[s.Package.Path], dep.Artifact)
		}
	}

	return kahn(byPath, blockedBy, unblocks)
}

func indexByPath(selections []domain.PackageSelection) map[string]domain.PackageSelection {
	byPath := make(map[string]domain.PackageSelection, len(selections))
	for _, s := range selections {
		byPath[s.Package.Path] = s
	}
	return byPath
}

// kahn drains byPath in dependency order: a path with a zero remaining block
// count is ready; placing it decrements the block count of every path it
// was listed as unblocking. A cycle (or a dependency outside the selection
// set) falls back to stable lexicographic order for whatever remains,
// rather than stalling the plan.
func kahn(byPath map[string]domain.PackageSelection, blockedBy map[string]int, unblocks map[string][]string) []domain.PackageSelection {
	remaining := make(map[string]domain.PackageSelection, len(byPath))
	for path, s := range byPath {
		remaining[path] = s
	}

	ordered := make([]domain.PackageSelection, 0, len(byPath))
	for len(remaining) > 0 {
		ready := readyPaths(remaining, blockedBy)
		for _, path := range ready {
			ordered = append(ordered, remaining[path])
			delete(remaining, path)
			for _, unblocked := range unblocks[path] {
				blockedBy[unblocked]--
			}
		}
	}
	return ordered
}

func readyPaths(remaining map[string]domain.PackageSelection, blockedBy map[string]int) []string {
	var ready []string
	for path := range remaining {
		if blockedBy[path] <= 0 {
			ready = append(ready, path)
		}
	}
	if len(ready) == 0 {
		// Cycle fallback: release everything left, in a stable order, so
		// the plan always terminates.
		for path := range remaining {
			ready = append(ready, path)
		}
	}
	sort.Strings(ready)
	return ready
}
