package cmd

import (
	"github.com/spf13/cobra"

	"distill.dev/pkg/distill/internal/domain"
)

// allCmd represents the all command.
var allCmd = newAllCmd()

func newAllCmd() *cobra.Command {
	flags := &cutFlags{}

	cmd := &cobra.Command{
		Use:   "all [root]",
		Short: "Run map, score, plan and cut in one process",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := commandConfig()
			if err != nil {
				return err
			}

			flags.applyTo(cmd, cfg)

			return workflow.All(cmd.Context(), domain.AllArgs{
				Root:    rootArg(args),
				Reports: reportsPath(cfg),
				Config:  cfg,
				DryRun:  flags.isDryRun(),
				Diff:    flags.diff,
			})
		},
	}

	configureCutFlags(cmd, flags)

	return cmd
}

func init() {
	rootCmd.AddCommand(allCmd)
}
