package commands

import (
	"strings"

	"github.com/labt-build/labt/internal/core/domain"
	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build [stage...]",
		Short: "Run the plugin pipeline, optionally restricted to the named stages",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stages := make([]domain.Stage, 0, len(args))
			for _, arg := range args {
				stage := domain.Stage(strings.ToLower(arg))
				if domain.StageIndex(stage) < 0 {
					return zerr.With(zerr.New("unknown build stage"), "stage", arg)
				}
				stages = append(stages, stage)
			}
			return c.app.Build(cmd.Context(), stages)
		},
	}
}
