package cmd

import (
	"github.com/spf13/cobra"

	"distill.dev/pkg/distill/internal/domain"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the saved distill plan",
		Long:  "Browse the plan document in the reports directory, one category at a time.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := commandConfig()
			if err != nil {
				return err
			}

			return workflow.View(cmd.Context(), domain.ViewArgs{Reports: reportsPath(cfg), Config: cfg})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
