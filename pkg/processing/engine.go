// Package processing ties the pieces of a run together: it resolves the
// catalog, builds the configuration context, checks preconditions, and hands
// the steps to the sequencer.
package processing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/systemstart/mldeploy/pkg/api"
	"github.com/systemstart/mldeploy/pkg/config"
	"github.com/systemstart/mldeploy/pkg/invoker"
	"github.com/systemstart/mldeploy/pkg/preflight"
	"github.com/systemstart/mldeploy/pkg/report"
	"github.com/systemstart/mldeploy/pkg/sequencer"
	"github.com/systemstart/mldeploy/pkg/steps"
)

// Options configure a run.
type Options struct {
	RunType string

	// CatalogFile overrides the built-in catalog for RunType.
	CatalogFile string
	// CatalogDir is searched for *.deploy.yaml files when CatalogFile is empty.
	CatalogDir string
	// WorkDir is where commands run and files are checked. Defaults to the
	// catalog file's directory, then the current directory.
	WorkDir string

	EnvFile      string
	SettingsFile string
	Environ      func() []string

	DryRun             bool
	ContinueOnError    bool
	MaxDiagnosticBytes int
	DefaultTimeout     time.Duration

	Observer sequencer.Observer
	// Invoker replaces the shell invoker. DryRun takes precedence.
	Invoker  invoker.Invoker
	LookPath preflight.LookPathFunc
}

// Plan is a run that passed its preconditions.
type Plan struct {
	Catalog *api.Catalog
	Config  config.Context
	Steps   []steps.Step
	WorkDir string
}

// ResolveCatalog picks the catalog for opts.RunType: an explicit file, a
// discovered file, or the built-in default.
func ResolveCatalog(opts Options) (*api.Catalog, error) {
	switch {
	case opts.CatalogFile != "":
		c, err := api.LoadCatalog(opts.CatalogFile)
		if err != nil {
			return nil, err
		}
		if c.RunType != "" && c.RunType != opts.RunType {
			return nil, fmt.Errorf("catalog %s is for run type %q, not %q", opts.CatalogFile, c.RunType, opts.RunType)
		}
		return c, nil

	case opts.CatalogDir != "":
		catalogs, err := DiscoverCatalogs(opts.CatalogDir)
		if err != nil {
			return nil, fmt.Errorf("discovering catalogs: %w", err)
		}
		slog.Debug("discovered catalogs", "dir", opts.CatalogDir, "count", len(catalogs))
		return SelectCatalog(catalogs, opts.RunType)

	default:
		return api.DefaultCatalog(opts.RunType)
	}
}

// Check resolves the catalog, loads configuration, and verifies every
// precondition. All precondition failures are reported together. The
// returned plan is non-nil whenever the catalog could be resolved.
func Check(opts Options) (*Plan, error) {
	catalog, err := ResolveCatalog(opts)
	if err != nil {
		return nil, err
	}

	loader := config.Loader{
		EnvFile:      opts.EnvFile,
		SettingsFile: opts.SettingsFile,
		Environ:      opts.Environ,
	}
	cfg, err := loader.Load(catalog.Settings)
	if err != nil {
		return &Plan{Catalog: catalog}, fmt.Errorf("loading configuration: %w", err)
	}

	plan := &Plan{
		Catalog: catalog,
		Config:  cfg,
		Steps:   steps.Build(catalog),
		WorkDir: workDir(opts, catalog),
	}

	var errs []error
	if err := preflight.Validate(cfg, catalog.Required); err != nil {
		errs = append(errs, err)
	}
	if opts.DryRun {
		slog.Debug("dry run, skipping tool check")
	} else if err := preflight.CheckTools(preflight.ToolsFor(catalog.RequiredTools()), opts.LookPath); err != nil {
		errs = append(errs, err)
	}
	if err := checkFiles(plan); err != nil {
		errs = append(errs, err)
	}

	return plan, errors.Join(errs...)
}

func checkFiles(plan *Plan) error {
	if len(plan.Catalog.Files) == 0 {
		return nil
	}

	patterns, err := steps.RenderAll("files", plan.Catalog.Files, steps.TemplateData(plan.Config, nil))
	if err != nil {
		return fmt.Errorf("rendering file patterns: %w", err)
	}
	return preflight.CheckFiles(os.DirFS(plan.WorkDir), patterns)
}

func workDir(opts Options, catalog *api.Catalog) string {
	switch {
	case opts.WorkDir != "":
		return opts.WorkDir
	case catalog.Dir != "":
		return catalog.Dir
	default:
		return "."
	}
}

// Run executes a full run and always returns a finalized report. The error
// is non-nil only when the run was aborted before its first step.
func Run(ctx context.Context, opts Options) (*report.RunReport, error) {
	started := time.Now()

	plan, err := Check(opts)
	if err != nil {
		name := opts.RunType
		if plan != nil {
			name = catalogName(plan.Catalog)
		}
		slog.Error("preconditions not met, no step was attempted", "catalog", name, "error", err)
		return report.NewAborted(name, opts.RunType, err.Error(), started), err
	}

	redactor := invoker.NewRedactor(plan.Config.SecretValues()...)

	seq := sequencer.New(newInvoker(opts, plan, redactor), sequencer.Options{
		ContinueOnError:    opts.ContinueOnError,
		Observer:           opts.Observer,
		MaxDiagnosticBytes: opts.MaxDiagnosticBytes,
		Redactor:           redactor,
	})

	slog.Info("starting run",
		"catalog", catalogName(plan.Catalog),
		"runType", opts.RunType,
		"steps", len(plan.Steps),
		"dryRun", opts.DryRun)

	rep := seq.Run(ctx, plan.Config, catalogName(plan.Catalog), opts.RunType, plan.Steps)

	slog.Info("run finished", "status", rep.StatusLine(), "duration", rep.Duration.Round(time.Millisecond))
	return rep, nil
}

func newInvoker(opts Options, plan *Plan, redactor *invoker.Redactor) invoker.Invoker {
	switch {
	case opts.DryRun:
		return invoker.DryRun{Logger: slog.Default(), Redactor: redactor}
	case opts.Invoker != nil:
		return opts.Invoker
	default:
		return invoker.NewShell(plan.WorkDir, opts.DefaultTimeout)
	}
}
