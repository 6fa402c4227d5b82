package cmd

import (
	"github.com/spf13/cobra"

	"distill.dev/pkg/distill/internal/domain"
)

// scoreCmd represents the score command.
var scoreCmd = newScoreCmd()

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Score mapped files and assign categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := commandConfig()
			if err != nil {
				return err
			}

			return workflow.Score(cmd.Context(), domain.ScoreArgs{Reports: reportsPath(cfg), Config: cfg})
		},
	}
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}
