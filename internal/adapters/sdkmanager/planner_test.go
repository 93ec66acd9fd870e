package sdkmanager_test

import (
	"testing"

	"github.com/labt-build/labt/internal/adapters/archiver"
	"github.com/labt-build/labt/internal/adapters/sdkmanager"
	"github.com/labt-build/labt/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pkgSelection(path string, action domain.PackageAction, deps ...string) domain.PackageSelection {
	var coords []domain.Coordinate
	for _, d := range deps {
		coords = append(coords, domain.Coordinate{Artifact: d})
	}
	return domain.PackageSelection{
		Package: domain.SDKPackage{Path: path, Dependencies: coords},
		Action:  action,
	}
}

func pathOrder(plan []domain.PackageSelection) []string {
	var paths []string
	for _, s := range plan {
		paths = append(paths, s.Package.Path)
	}
	return paths
}

func TestPlan_InstallOrdersDependenciesBeforeDependents(t *testing.T) {
	in := sdkmanager.NewInstaller(t.TempDir(), archiver.New())
	plan, err := in.Plan([]domain.PackageSelection{
		pkgSelection("build-tools;34", domain.ActionInstall, "platforms;34"),
		pkgSelection("platforms;34", domain.ActionInstall),
	})
	require.NoError(t, err)

	order := pathOrder(plan)
	platformIdx := indexOf(order, "platforms;34")
	buildToolsIdx := indexOf(order, "build-tools;34")
	assert.Less(t, platformIdx, buildToolsIdx, "platforms must install before build-tools depends on it")
}

func TestPlan_UninstallOrdersDependentsBeforeDependencies(t *testing.T) {
	in := sdkmanager.NewInstaller(t.TempDir(), archiver.New())
	plan, err := in.Plan([]domain.PackageSelection{
		pkgSelection("platforms;34", domain.ActionUninstall),
		pkgSelection("build-tools;34", domain.ActionUninstall, "platforms;34"),
	})
	require.NoError(t, err)

	order := pathOrder(plan)
	platformIdx := indexOf(order, "platforms;34")
	buildToolsIdx := indexOf(order, "build-tools;34")
	assert.Less(t, buildToolsIdx, platformIdx, "build-tools (the dependent) must uninstall before platforms")
}

func TestPlan_UninstallsPrecedeInstalls(t *testing.T) {
	in := sdkmanager.NewInstaller(t.TempDir(), archiver.New())
	plan, err := in.Plan([]domain.PackageSelection{
		pkgSelection("new-package;1", domain.ActionInstall),
		pkgSelection("old-package;1", domain.ActionUninstall),
	})
	require.NoError(t, err)

	order := pathOrder(plan)
	require.Equal(t, []string{"old-package;1", "new-package;1"}, order)
}

func TestPlan_IgnoresNoneActions(t *testing.T) {
	in := sdkmanager.NewInstaller(t.TempDir(), archiver.New())
	plan, err := in.Plan([]domain.PackageSelection{
		pkgSelection("untouched;1", domain.ActionNone),
		pkgSelection("wanted;1", domain.ActionInstall),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"wanted;1"}, pathOrder(plan))
}

func indexOf(items []string, target string) int {
	for i, v := range items {
		if v == target {
			return i
		}
	}
	return -1
}
