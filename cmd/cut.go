package cmd

import (
	"github.com/spf13/cobra"

	"distill.dev/pkg/distill/internal/config"
	"distill.dev/pkg/distill/internal/domain"
)

// cutFlags are shared by the cut and all commands.
type cutFlags struct {
	dryRun  bool
	apply   bool
	diff    bool
	workers int
}

func configureCutFlags(cmd *cobra.Command, flags *cutFlags) {
	cmd.Flags().BoolVar(&flags.dryRun, dryRunFlagName, true, "report what would be written without touching the filesystem")
	cmd.Flags().BoolVar(&flags.apply, applyFlagName, false, "write the distilled tree and the legacy archive")
	cmd.MarkFlagsMutuallyExclusive(dryRunFlagName, applyFlagName)

	cmd.Flags().BoolVar(&flags.diff, diffFlagName, false, "print unified diffs for thinned files")
	cmd.Flags().IntVarP(&flags.workers, workersFlagName, "w", 0, "number of parallel workers (default: cut.workers or NumCPU)")
}

// isDryRun is true unless --apply was given or --dry-run was explicitly disabled.
func (f *cutFlags) isDryRun() bool {
	return f.dryRun && !f.apply
}

// applyTo copies flag overrides into the resolved configuration.
func (f *cutFlags) applyTo(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed(workersFlagName) {
		cfg.Cut.Workers = f.workers
	}
}

// cutCmd represents the cut command.
var cutCmd = newCutCmd()

func newCutCmd() *cobra.Command {
	flags := &cutFlags{}

	cmd := &cobra.Command{
		Use:   "cut",
		Short: "Execute the plan into the output directory",
		Long: `Copy keep files, write thinned thin files and archive legacy files into
the output directory. Without --apply nothing is written and the command only
reports what it would do.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := commandConfig()
			if err != nil {
				return err
			}

			flags.applyTo(cmd, cfg)

			return workflow.Cut(cmd.Context(), domain.CutArgs{
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
	rootCmd.AddCommand(cutCmd)
}
