package cmd

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

const shortRevisionLen = 12

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the distill module version, the VCS revision it was built from and the Go version.",
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			cmd.Print(formatVersion(info, ok))
		},
	}
}

// formatVersion renders build metadata as tab-separated lines.
func formatVersion(info *debug.BuildInfo, ok bool) string {
	if !ok || info == nil || info.Main.Version == "" {
		return "version: unknown\n"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "distill version\t%s\n", info.Main.Version)
	if info.Main.Path != "" {
		fmt.Fprintf(&b, "module\t\t%s\n", info.Main.Path)
	}

	if revision := buildSetting(info, "vcs.revision"); revision != "" {
		if len(revision) > shortRevisionLen {
			revision = revision[:shortRevisionLen]
		}
		if buildSetting(info, "vcs.modified") == "true" {
			revision += "-dirty"
		}
		fmt.Fprintf(&b, "revision\t%s\n", revision)
	}

	fmt.Fprintf(&b, "go version\t%s\n", info.GoVersion)

	return b.String()
}

func buildSetting(info *debug.BuildInfo, key string) string {
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}

	return ""
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
