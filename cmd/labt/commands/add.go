package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <group:artifact:version>",
		Short: "Add a dependency to the project and re-resolve the lockfile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Add(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the project's dependencies and write the lockfile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Resolve(cmd.Context())
		},
	}
}
