package hostapi_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labt-build/labt/internal/core/domain"
	"github.com/labt-build/labt/internal/hostapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHostAPI(t *testing.T, root string) *hostapi.HostAPI {
	t.Helper()
	factory := hostapi.NewFactory(hostapi.New(), nil, nil, nil, nil, nil, nil, "/sdk")
	cfg := &domain.ProjectConfig{
		SDK: map[string]domain.SDKRef{
			"platform": {Path: "platforms;android-33", Version: "3.0.0", Channel: "stable"},
		},
	}
	return factory.New(root, domain.StageCompile, cfg, false, false)
}

func TestFS_MkdirFailsIfTargetExists(t *testing.T) {
	root := t.TempDir()
	fs := newHostAPI(t, root).FS()

	require.NoError(t, fs.Mkdir("build"))
	err := fs.Mkdir("build")
	assert.ErrorIs(t, err, domain.ErrTargetExists)

	require.NoError(t, fs.MkdirAll("build"))
	require.NoError(t, fs.MkdirAll("build/deep/nested"))
}

func TestFS_CopyFileIntoExistingDirectoryAppendsBasename(t *testing.T) {
	root := t.TempDir()
	fs := newHostAPI(t, root).FS()

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0o644))
	require.NoError(t, fs.Mkdir("dest"))

	require.NoError(t, fs.Copy("a.txt", "dest", false))
	assert.FileExists(t, filepath.Join(root, "dest", "a.txt"))
}

func TestFS_CopyDirectoryRequiresRecursive(t *testing.T) {
	root := t.TempDir()
	fs := newHostAPI(t, root).FS()

	require.NoError(t, fs.MkdirAll("src/sub"))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "sub", "f.txt"), []byte("x"), 0o644))

	assert.Error(t, fs.Copy("src", "dst", false))

	require.NoError(t, fs.Copy("src", "dst", true))
	assert.FileExists(t, filepath.Join(root, "dst", "sub", "f.txt"))
}

func TestFS_IsNewer(t *testing.T) {
	root := t.TempDir()
	fs := newHostAPI(t, root).FS()

	older := filepath.Join(root, "older.txt")
	newer := filepath.Join(root, "newer.txt")
	require.NoError(t, os.WriteFile(older, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(newer, []byte("y"), 0o644))
	now := time.Now()
	require.NoError(t, os.Chtimes(older, now.Add(-time.Hour), now.Add(-time.Hour)))
	require.NoError(t, os.Chtimes(newer, now, now))

	assert.True(t, fs.IsNewer("newer.txt", "older.txt"))
	assert.False(t, fs.IsNewer("older.txt", "newer.txt"))
	// b missing: true regardless of a.
	assert.True(t, fs.IsNewer("older.txt", "missing.txt"))
	// a missing, b present: false.
	assert.False(t, fs.IsNewer("missing.txt", "older.txt"))
}

func TestFS_GlobReturnsSortedMatches(t *testing.T) {
	root := t.TempDir()
	fs := newHostAPI(t, root).FS()

	for _, name := range []string{"b.java", "a.java", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("x"), 0o644))
	}

	matches, err := fs.Glob("*.java")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, filepath.Join(root, "a.java"), matches[0])
	assert.Equal(t, filepath.Join(root, "b.java"), matches[1])
}

func TestSys_RejectsNamesWithPathSeparators(t *testing.T) {
	root := t.TempDir()
	sys := newHostAPI(t, root).Sys()

	_, _, err := sys.Run(context.Background(), "../evil", "arg")
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, _, _, err = sys.RunCaptured(context.Background(), `bin\evil`)
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestSys_DispatchDecodesGetPrefix(t *testing.T) {
	root := t.TempDir()
	sys := newHostAPI(t, root).Sys()

	ok, _, stdout, _, err := sys.Dispatch(context.Background(), "get_echo", []string{"hello"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello\n", stdout)
}

func TestSDK_ResolvesLogicalNameToPackageRoot(t *testing.T) {
	root := t.TempDir()
	api := newHostAPI(t, root)

	module, err := api.SDK("platform", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/sdk", "platforms", "android-33", "android.jar"), module.File("android.jar"))
	assert.Equal(t, "platforms;android-33", module.Path)
	assert.Equal(t, "stable", module.Channel)

	_, err = api.SDK("missing", "")
	assert.ErrorIs(t, err, domain.ErrSDKNotFound)
}

func TestHostAPI_InitModeForcesUnsafeOff(t *testing.T) {
	// The unsafe flag follows the manifest outside init mode.
	factory := hostapi.NewFactory(hostapi.New(), nil, nil, nil, nil, nil, nil, "/sdk")
	cfg := &domain.ProjectConfig{}

	api := factory.New("/project", domain.StagePre, cfg, true, false)
	assert.True(t, api.Unsafe())

	// init mode forces unsafe off regardless of the manifest.
	api = factory.New("/project", domain.StagePre, cfg, true, true)
	assert.False(t, api.Unsafe())
}

func TestTemplates_RenderDiscoversByGlob(t *testing.T) {
	pluginRoot := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(pluginRoot, "templates"), 0o750))
	tmpl := filepath.Join(pluginRoot, "templates", "manifest.xml")
	require.NoError(t, os.WriteFile(tmpl, []byte(`<manifest package="{{.Package}}"/>`), 0o644))

	renderer := hostapi.NewTemplates(pluginRoot, "")
	out, err := renderer.Render("manifest.xml", map[string]string{"Package": "com.example.app"})
	require.NoError(t, err)
	assert.Equal(t, `<manifest package="com.example.app"/>`, out)
}
