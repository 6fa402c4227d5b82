package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"distill.dev/pkg/distill/internal/config"
)

const configFileHeader = "# distill configuration, generated by `distill init`.\n" +
	"# Keys may also be set through DISTILL_* environment variables.\n"

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a distill.yaml configuration file",
		Long: `Create a distill.yaml in the current working directory populated with the
effective anchors, weights and thresholds (defaults merged with any DISTILL_*
environment overrides) so it can be edited manually.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := commandConfig()
			if err != nil {
				return err
			}

			targetPath := filepath.Join(configFolderPath, configFileName)

			if err := writeConfigFile(targetPath, cfg); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Printf("Wrote %s\n", targetPath)

			return nil
		},
	}
}

// writeConfigFile serializes cfg to path, refusing to replace an existing file.
func writeConfigFile(path string, cfg *config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s already exists: %w", path, err)
		}
		return err
	}

	if _, err := f.WriteString(configFileHeader); err != nil {
		_ = f.Close()
		return err
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func init() {
	rootCmd.AddCommand(initCmd)
}
