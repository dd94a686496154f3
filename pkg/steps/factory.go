package steps

import "github.com/systemstart/mldeploy/pkg/api"

// NewStep creates a Step from its catalog configuration.
func NewStep(index int, catalog *api.Catalog, cfg api.StepConfig) Step {
	return Step{
		Index:    index,
		Name:     cfg.Name,
		Program:  catalog.ProgramFor(cfg),
		Args:     cfg.Args,
		Tolerant: cfg.Tolerant,
		Capture:  cfg.Capture,
		Secret:   cfg.Secret,
		Timeout:  cfg.Timeout,
	}
}

// Build turns a validated catalog into its ordered steps.
func Build(catalog *api.Catalog) []Step {
	out := make([]Step, 0, len(catalog.Steps))
	for i, cfg := range catalog.Steps {
		out = append(out, NewStep(i+1, catalog, cfg))
	}
	return out
}
