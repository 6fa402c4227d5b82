package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	domainmocks "distill.dev/pkg/distill/internal/domain/mocks"
)

// newTestRoot builds a fresh root command with the given subcommands and
// swaps the package workflow for a mock.
func newTestRoot(t *testing.T, subcommands ...*cobra.Command) (*cobra.Command, *domainmocks.MockWorkflow, *bytes.Buffer) {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow
	t.Cleanup(func() { workflow = originalWorkflow })

	viper.Set(logFilenameKey, filepath.Join(t.TempDir(), "distill.log"))

	out := &bytes.Buffer{}

	cmd := newRootCmd()
	cmd.AddCommand(subcommands...)
	cmd.SetOut(out)
	cmd.SetErr(out)

	return cmd, mockWorkflow, out
}

// restoreConfigFile resets the global viper config state after a test that
// points it at another file.
func restoreConfigFile(t *testing.T) {
	t.Helper()

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("{}\n"), 0o644))

	t.Cleanup(func() {
		viper.SetConfigFile(empty)
		_ = viper.ReadInConfig()
		viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	})
}
