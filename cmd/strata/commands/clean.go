package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/strata/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove delta records and materialized stages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stages, _ := cmd.Flags().GetBool("stages")
			all, _ := cmd.Flags().GetBool("all")

			opts := app.CleanOptions{
				Records: false,
				Stages:  false,
			}

			switch {
			case all:
				opts.Records = true
				opts.Stages = true
			case stages:
				opts.Stages = true
			default:
				// Default behavior: clean delta records
				opts.Records = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("stages", "s", false, "Remove materialized stage directories")
	cmd.Flags().BoolP("all", "a", false, "Remove both delta records and stage directories")

	return cmd
}
