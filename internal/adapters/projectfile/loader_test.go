package projectfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/labt-build/labt/internal/adapters/logger"
	"github.com/labt-build/labt/internal/adapters/projectfile"
	"github.com/labt-build/labt/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_FindRootWalksAncestors(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, projectfile.ProjectFilename), []byte("[project]\nname=\"x\"\n"), 0o600))

	deep := filepath.Join(root, "app", "src", "main")
	require.NoError(t, os.MkdirAll(deep, 0o750))

	s := projectfile.New(logger.New())
	found, err := s.FindRoot(deep)
	require.NoError(t, err)
	assert.Equal(t, root, found)
}

func TestStore_FindRootReturnsDistinctErrorWhenNotFound(t *testing.T) {
	s := projectfile.New(logger.New())
	_, err := s.FindRoot(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestStore_SaveThenLoadProjectRoundTrips(t *testing.T) {
	root := t.TempDir()
	s := projectfile.New(logger.New())

	cfg := &domain.ProjectConfig{
		Project: domain.ProjectMeta{Name: "demo", Package: "com.example.demo", VersionName: "1.0", VersionCode: 1},
		Dependencies: map[string]domain.DependencySpec{
			"appcompat": {Group: "androidx.appcompat", Version: "1.1.0"},
		},
	}
	require.NoError(t, s.SaveProject(root, cfg))

	loaded, err := s.LoadProject(root)
	require.NoError(t, err)
	assert.Equal(t, "demo", loaded.Project.Name)
	assert.Equal(t, "androidx.appcompat", loaded.Dependencies["appcompat"].Group)
}

func TestStore_LoadLockfileReturnsNilWhenAbsent(t *testing.T) {
	s := projectfile.New(logger.New())
	lock, err := s.LoadLockfile(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, lock)
}

func TestStore_SaveThenLoadLockfileRoundTrips(t *testing.T) {
	root := t.TempDir()
	s := projectfile.New(logger.New())

	lock := &domain.Lockfile{Dependencies: []domain.ResolvedDependency{
		{Group: "androidx.core", Artifact: "core", Version: "1.3.0", Packaging: "aar", Direct: true},
	}}
	require.NoError(t, s.SaveLockfile(root, lock))

	loaded, err := s.LoadLockfile(root)
	require.NoError(t, err)
	require.Len(t, loaded.Dependencies, 1)
	assert.Equal(t, "core", loaded.Dependencies[0].Artifact)
}

func TestSDKRef_ParsesCompactAndTableFormsIdentically(t *testing.T) {
	compact, err := domain.ParseSDKRef("platforms;android-33:33.0.0.0:stable")
	require.NoError(t, err)

	table := domain.SDKRef{Path: "platforms;android-33", Version: "33.0.0.0", Channel: "stable"}

	assert.Equal(t, table, compact)
	assert.Equal(t, filepath.Join("platforms", "android-33"), compact.DiskPath())
}
