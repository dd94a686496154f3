package commands

import (
	"github.com/spf13/cobra"

	"github.com/systemstart/mldeploy/cmd/mldeploy/handlers"
	"github.com/systemstart/mldeploy/pkg/api"
	"github.com/systemstart/mldeploy/pkg/processing"
)

// Check returns the check command.
func Check(g *globalFlags) *cobra.Command {
	var (
		cf        catalogFlags
		skipTools bool
	)

	cmd := &cobra.Command{
		Use:   "check [deploy|status]",
		Short: "Verify configuration, tools and files without running any step",
		Args:  cobra.MaximumNArgs(1),
		ValidArgs: []string{
			api.RunTypeDeploy,
			api.RunTypeStatus,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			runType := api.RunTypeDeploy
			if len(args) == 1 {
				runType = args[0]
			}
			var opts processing.Options
			cf.apply(&opts, runType, g)
			opts.DryRun = skipTools
			return handlers.Check(opts, cmd.OutOrStdout())
		},
	}

	cf.bind(cmd)
	cmd.Flags().BoolVar(&skipTools, "skip-tools", false, "do not require the platform CLI on PATH")

	return cmd
}
