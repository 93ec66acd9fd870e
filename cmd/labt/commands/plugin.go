package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newPluginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plugin <git-url>[@ref]",
		Short: "Install a plugin from a git repository at a pinned version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.InstallPlugin(cmd.Context(), args[0])
		},
	}
}
