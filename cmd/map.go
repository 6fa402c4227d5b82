package cmd

import (
	"github.com/spf13/cobra"

	"distill.dev/pkg/distill/internal/domain"
)

// mapCmd represents the map command.
var mapCmd = newMapCmd()

func newMapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "map [root]",
		Short: "Scan a source tree and record per-file signals",
		Long: `Walk the root directory (default: config root or the current directory),
read every file with a configured extension and write the file map document.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := commandConfig()
			if err != nil {
				return err
			}

			return workflow.Map(cmd.Context(), domain.MapArgs{
				Root:    rootArg(args),
				Reports: reportsPath(cfg),
				Config:  cfg,
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(mapCmd)
}
