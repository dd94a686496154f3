package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/systemstart/mldeploy/cmd/mldeploy/handlers"
	"github.com/systemstart/mldeploy/pkg/api"
	"github.com/systemstart/mldeploy/pkg/processing"
	"github.com/systemstart/mldeploy/pkg/sequencer"
)

// catalogFlags select the catalog and working directory of a run.
type catalogFlags struct {
	catalogFile string
	catalogDir  string
	workDir     string
}

func (c *catalogFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&c.catalogFile, "catalog", "c", "", "catalog file replacing the built-in one")
	cmd.Flags().StringVar(&c.catalogDir, "catalog-dir", "", "directory searched for *.deploy.yaml catalogs")
	cmd.Flags().StringVar(&c.workDir, "work-dir", "", "directory commands run in (default: catalog directory or current directory)")
	cmd.MarkFlagsMutuallyExclusive("catalog", "catalog-dir")
}

func (c *catalogFlags) apply(o *processing.Options, runType string, g *globalFlags) {
	o.RunType = runType
	o.CatalogFile = c.catalogFile
	o.CatalogDir = c.catalogDir
	o.WorkDir = c.workDir
	o.EnvFile = g.envFile
	o.SettingsFile = g.settingsFile
}

// Deploy returns the deploy command.
func Deploy(g *globalFlags) *cobra.Command {
	return runCommand(g, api.RunTypeDeploy,
		"Provision resources, train, and deploy the model",
		`Deploy runs the deploy catalog: service principal login, subscription
selection, compute cluster, environment, dataset, training job, online
endpoint and deployment, then looks up the scoring URI and key.

Steps marked tolerant may fail (usually because the resource already exists)
without stopping the run. Any other failure aborts the remaining steps.

Required values (environment or .env):
  AZURE_SUBSCRIPTION_ID, AZURE_RESOURCE_GROUP, AZUREML_WORKSPACE_NAME,
  AZURE_TENANT_ID, AZURE_CLIENT_ID, AZURE_CLIENT_SECRET

Exit codes:
  0  completed
  2  preconditions not met, no step attempted
  3  a step failed
  4  interrupted

Example:
  mldeploy deploy --dry-run
  mldeploy deploy --report-file report.json`)
}

// Status returns the status command.
func Status(g *globalFlags) *cobra.Command {
	return runCommand(g, api.RunTypeStatus,
		"Show the state of the compute cluster, recent jobs and the endpoint",
		`Status runs the read-only status catalog against an existing workspace.

Example:
  mldeploy status -o json`)
}

func runCommand(g *globalFlags, runType, short, long string) *cobra.Command {
	var (
		cf   catalogFlags
		opts handlers.RunOptions
	)

	cmd := &cobra.Command{
		Use:   runType,
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cf.apply(&opts.Options, runType, g)
			opts.Color = g.color()
			return handlers.Run(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cf.bind(cmd)
	f := cmd.Flags()
	f.BoolVar(&opts.DryRun, "dry-run", false, "log the rendered commands instead of running them")
	f.BoolVar(&opts.ContinueOnError, "continue-on-error", false, "run remaining steps after a non-tolerant failure")
	f.StringVarP(&opts.Output, "output", "o", handlers.OutputText, "report format: text or json")
	f.StringVar(&opts.ReportFile, "report-file", "", "also write the JSON report to this file")
	f.StringVar(&opts.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file (textfile collector format)")
	f.IntVar(&opts.MaxDiagnosticBytes, "max-diagnostic-bytes", sequencer.DefaultMaxDiagnosticBytes, "output kept per step in the report, -1 for unlimited")
	f.DurationVar(&opts.DefaultTimeout, "step-timeout", time.Duration(0), "timeout for steps without their own (0 = none)")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "show output of successful steps in the report")

	return cmd
}
