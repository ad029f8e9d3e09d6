package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/strata/internal/app"
	"go.trai.ch/strata/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [stage]",
		Short: "Compose the requested stage from its delta chain",
		Long: `Compose a stage by applying its delta chain on top of its parent stage.
Stages form a fixed chain: base, prod, dev. Building a stage transitively
builds every stage before it. Cached deltas are skipped unless their inputs
changed or --no-cache is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := string(domain.StageProd)
			if len(args) == 1 {
				target = args[0]
			}

			noCache, _ := cmd.Flags().GetBool("no-cache")
			watch, _ := cmd.Flags().GetBool("watch")
			outputMode, _ := cmd.Flags().GetString("output-mode")
			ci, _ := cmd.Flags().GetBool("ci")

			// If --ci is set, override output-mode to "linear"
			if ci {
				outputMode = "linear"
			}

			return c.app.Run(cmd.Context(), target, app.RunOptions{
				NoCache:    noCache,
				Watch:      watch,
				OutputMode: outputMode,
			})
		},
	}
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass delta records and re-apply every delta")
	cmd.Flags().BoolP("watch", "w", false, "Rebuild automatically when recipe inputs change")
	cmd.Flags().StringP("output-mode", "o", "auto", "Output mode: auto, tui, or linear")
	cmd.Flags().Bool("ci", false, "Use linear output mode (shorthand for --output-mode=linear)")
	return cmd
}
