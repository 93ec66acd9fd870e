// Package commands implements the CLI commands for the labt build tool.
package commands

import (
	"context"

	"github.com/labt-build/labt/internal/app"
	"github.com/spf13/cobra"
)

// CLI represents the command line interface for labt.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "labt",
		Short:         "A command-line build tool for Android projects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(
		c.newInitCmd(),
		c.newAddCmd(),
		c.newResolveCmd(),
		c.newBuildCmd(),
		c.newPluginCmd(),
		c.newSDKCmd(),
		c.newVersionCmd(),
	)

	return c
}

// SetArgs sets the arguments for the root command.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// Execute runs the CLI with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	return c.rootCmd.ExecuteContext(ctx)
}
