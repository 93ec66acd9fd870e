package commands_test

import (
	"context"
	"testing"

	"github.com/labt-build/labt/cmd/labt/commands"
	"github.com/labt-build/labt/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCLI builds a CLI around an app with no adapters bound; good enough for
// exercising argument validation paths that never reach the app layer.
func newCLI() *commands.CLI {
	return commands.New(app.New(nil, nil, nil, nil, nil, nil, nil, nil, nil))
}

func TestRoot_Help(t *testing.T) {
	cli := newCLI()
	cli.SetArgs([]string{"--help"})
	require.NoError(t, cli.Execute(context.Background()))
}

func TestBuild_RejectsUnknownStage(t *testing.T) {
	cli := newCLI()
	cli.SetArgs([]string{"build", "nonsense"})
	err := cli.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown build stage")
}

func TestAdd_RequiresCoordinateArgument(t *testing.T) {
	cli := newCLI()
	cli.SetArgs([]string{"add"})
	assert.Error(t, cli.Execute(context.Background()))
}

func TestSDKInstall_RequiresPathFlag(t *testing.T) {
	cli := newCLI()
	cli.SetArgs([]string{"sdk", "install", "google"})
	assert.Error(t, cli.Execute(context.Background()))
}

func TestResolve_RejectsExtraArguments(t *testing.T) {
	cli := newCLI()
	cli.SetArgs([]string{"resolve", "extra"})
	assert.Error(t, cli.Execute(context.Background()))
}
