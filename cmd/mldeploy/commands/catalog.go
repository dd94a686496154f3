package commands

import (
	"github.com/spf13/cobra"

	"github.com/systemstart/mldeploy/cmd/mldeploy/handlers"
	"github.com/systemstart/mldeploy/pkg/api"
	"github.com/systemstart/mldeploy/pkg/processing"
)

// Catalog returns the catalog command.
func Catalog(g *globalFlags) *cobra.Command {
	var (
		cf     catalogFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "catalog [deploy|status]",
		Short: "Print the steps a run would execute",
		Long: `Catalog prints the steps of a run type in order.

Use -o yaml to export the built-in catalog as a starting point for a custom
one:
  mldeploy catalog deploy -o yaml > custom.deploy.yaml
  mldeploy deploy --catalog custom.deploy.yaml`,
		Args: cobra.MaximumNArgs(1),
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
			return handlers.Catalog(opts, output, cmd.OutOrStdout())
		},
	}

	cf.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", handlers.OutputText, "output format: text or yaml")

	return cmd
}
