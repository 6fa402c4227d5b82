// Package cmd provides the root command and CLI setup for distill.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"distill.dev/pkg/distill/internal/adapter"
	"distill.dev/pkg/distill/internal/config"
	"distill.dev/pkg/distill/internal/controller"
	"distill.dev/pkg/distill/internal/domain"
	m "distill.dev/pkg/distill/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var workflow domain.Workflow
var ui controller.UI

// configFileFlag points at an explicit config file instead of ./distill.yaml.
var configFileFlag string

func init() {
	cachedFS, err := adapter.NewCachedSourceFS(adapter.NewLocalSourceFSAdapter(), adapter.DefaultContentCacheEntries, adapter.DefaultContentCacheBytes)
	cobra.CheckErr(err)

	fsAdapter = cachedFS
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	workflow = domain.NewWorkflow(
		fsAdapter,
		ui,
		adapter.OpenReportStore,
		adapter.NewZstdTarArchiver,
	)
}

const rootLongDescription = `Distill shrinks a sprawling codebase into a focused working tree.

It runs four phases, each writing a document into the reports directory:
  map    scan the tree and record per-file signals
  score  score every file and assign keep / thin / legacy / external
  plan   group files into actions and run safety checks
  cut    copy, thin and archive files into the output directory

Cut is a dry run unless --apply is given.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "distill",
		Short:        "Distill a codebase into its load-bearing files",
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := readConfigFile(configFileFlag); err != nil {
				return err
			}

			configureLogger("", viper.GetBool(logVerboseKey))

			return nil
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFileFlag, configFlagName, "c", "", "config file (default ./"+configFileName+")")

	cmd.PersistentFlags().StringP(reportsFlagName, "r", viper.GetString(reportsConfigKey), "directory for phase documents")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(reportsFlagName), reportsConfigKey)

	cmd.PersistentFlags().BoolP(verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringArrayP(excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching glob (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// commandConfig resolves the effective configuration for a command run.
func commandConfig() (*config.Config, error) {
	return loadConfig(viper.GetViper())
}

func reportsPath(cfg *config.Config) m.Path {
	return m.Path(cfg.Output.ReportsDir)
}

func rootArg(args []string) m.Path {
	if len(args) == 0 {
		return ""
	}

	return m.Path(args[0])
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// An interrupt cancels the running phase.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}
