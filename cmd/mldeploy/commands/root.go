// Package commands defines the CLI command structure and flag bindings.
// Command execution is delegated to the handlers package.
package commands

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/systemstart/mldeploy/pkg/logging"
)

// globalFlags are shared by every command.
type globalFlags struct {
	loggingType  string
	logLevel     string
	envFile      string
	settingsFile string
	noColor      bool
}

// Root returns the root command for the mldeploy CLI.
func Root() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "mldeploy",
		Short: "Provision and deploy ML platform resources in a fixed, re-runnable order",
		Long: `mldeploy drives the ML platform CLI through an ordered catalog of steps:
login, compute cluster, environment, dataset, training job, online endpoint
and deployment. Steps that fail because a resource already exists are
tolerated, so a run can be repeated safely.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return logging.Initialize(cmd.ErrOrStderr(), g.loggingType, g.logLevel, g.color())
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&g.loggingType, "logging-type", logging.Tint, "logging type: json, text or tint")
	f.StringVar(&g.logLevel, "log-level", "info", "logging level: debug, info, warn, error")
	f.StringVar(&g.envFile, "env-file", "", "dotenv file with credentials (default .env if present)")
	f.StringVar(&g.settingsFile, "settings", "", "YAML file with named values overriding catalog settings")
	f.BoolVar(&g.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(Deploy(g))
	cmd.AddCommand(Status(g))
	cmd.AddCommand(Check(g))
	cmd.AddCommand(Catalog(g))
	cmd.AddCommand(Version())

	return cmd
}

func (g *globalFlags) color() bool {
	if g.noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
