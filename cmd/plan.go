package cmd

import (
	"github.com/spf13/cobra"

	"distill.dev/pkg/distill/internal/domain"
)

// planCmd represents the plan command.
var planCmd = newPlanCmd()

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Build the distill plan from scored files",
		Long: `Group scored files into copy / compress / archive / skip actions, compute
size statistics and safety warnings, and write the plan document together
with DISTILL_PLAN.md.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := commandConfig()
			if err != nil {
				return err
			}

			return workflow.Plan(cmd.Context(), domain.PlanArgs{Reports: reportsPath(cfg), Config: cfg})
		},
	}
}

func init() {
	rootCmd.AddCommand(planCmd)
}
