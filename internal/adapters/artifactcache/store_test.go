package artifactcache_test

import (
	"path/filepath"
	"testing"

	"github.com/labt-build/labt/internal/adapters/artifactcache"
	"github.com/labt-build/labt/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coord() domain.ArtifactCoordinate {
	return domain.ArtifactCoordinate{
		Group:     "androidx.core",
		Artifact:  "core",
		Version:   "1.3.0",
		Packaging: "aar",
	}
}

func TestStore_PathForLiesUnderCacheRootAndSplitsGroupOnDot(t *testing.T) {
	root := t.TempDir()
	s := artifactcache.New(root)

	path := s.PathFor(coord())

	assert.True(t, filepath.HasPrefix(path, root) && filepath.Dir(path) != root)
	assert.Contains(t, path, filepath.Join("androidx", "core"))
	assert.Equal(t, "core-1.3.0.aar", filepath.Base(path))
}

func TestStore_ContainsIsFalseBeforeStoreAndTrueAfter(t *testing.T) {
	s := artifactcache.New(t.TempDir())
	c := coord()

	ok, err := s.Contains(c)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Store(c, []byte("aar-bytes"), nil))

	ok, err = s.Contains(c)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_OpenRoundTripsStoredBytes(t *testing.T) {
	s := artifactcache.New(t.TempDir())
	c := coord()

	require.NoError(t, s.Store(c, []byte("payload"), map[string][]byte{
		"core-1.3.0.pom": []byte("<project/>"),
	}))

	data, err := s.Open(c)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestStore_NoPartialWritesVisible(t *testing.T) {
	// A cache entry either exists in full or is absent; Store is atomic via
	// staging + rename, so there is no intermediate state to observe here.
	s := artifactcache.New(t.TempDir())
	c := coord()

	require.NoError(t, s.Store(c, []byte("v1"), nil))
	require.NoError(t, s.Store(c, []byte("v2"), nil))

	data, err := s.Open(c)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}
