package commands

import (
	"github.com/spf13/cobra"

	"github.com/systemstart/mldeploy/cmd/mldeploy/handlers"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo sets the version information from main.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Version returns the version command.
func Version() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Logging is not needed to print a version.
		PersistentPreRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			handlers.Version(cmd.OutOrStdout(), version, commit, date)
		},
	}
}
