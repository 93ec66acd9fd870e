package pluginregistry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/labt-build/labt/internal/adapters/pluginregistry"
	"github.com/labt-build/labt/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifestTOML = `
name = "greeter"
version = "1.2.0"
author = "someone"

[stage.pre]
file = "scripts/pre.sh"
priority = 10
`

func TestRegistry_Load_ParsesManifest(t *testing.T) {
	root := t.TempDir()
	pluginDir := filepath.Join(root, "greeter-1.2.0")
	require.NoError(t, os.MkdirAll(pluginDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(pluginDir, "plugin.toml"), []byte(manifestTOML), 0o644))

	registry := pluginregistry.New(root)
	manifest, gotRoot, err := registry.Load("greeter", "1.2.0")
	require.NoError(t, err)
	assert.Equal(t, pluginDir, gotRoot)
	assert.Equal(t, "greeter", manifest.Name)
	assert.Equal(t, "1.2.0", manifest.Version)
	require.Contains(t, manifest.Stage, "pre")
	assert.Equal(t, "scripts/pre.sh", manifest.Stage["pre"].File)
	assert.Equal(t, 10, manifest.Stage["pre"].Priority)
}

func TestRegistry_Load_NotInstalled(t *testing.T) {
	registry := pluginregistry.New(t.TempDir())
	_, _, err := registry.Load("missing", "1.0.0")
	assert.ErrorIs(t, err, domain.ErrPluginNotFound)
}
