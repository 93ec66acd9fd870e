package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <url> [dir]",
		Short: "Bootstrap a new project from a template plugin",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 2 {
				dir = args[1]
			}
			return c.app.Init(cmd.Context(), args[0], dir)
		},
	}
}
