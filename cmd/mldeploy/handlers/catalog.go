package handlers

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/systemstart/mldeploy/pkg/api"
	"github.com/systemstart/mldeploy/pkg/processing"
)

const OutputYAML = "yaml"

// Catalog prints the catalog a run would use. The yaml format can be saved
// and passed back with --catalog to customise a run.
func Catalog(opts processing.Options, output string, w io.Writer) error {
	catalog, err := processing.ResolveCatalog(opts)
	if err != nil {
		return err
	}

	switch output {
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(catalog); err != nil {
			return fmt.Errorf("encoding catalog: %w", err)
		}
		return enc.Close()
	case OutputText:
		return printCatalog(w, catalog)
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", output, OutputText, OutputYAML)
	}
}

func printCatalog(w io.Writer, c *api.Catalog) error {
	width := len("STEP")
	for _, s := range c.Steps {
		width = max(width, len(s.Name))
	}

	fmt.Fprintf(w, "Catalog %s (run type %s)\n", c.Name, c.RunType)
	if len(c.Required) > 0 {
		fmt.Fprintf(w, "Requires: %s\n", strings.Join(c.Required, ", "))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %3s  %-*s  %-8s  %s\n", "#", width, "STEP", "TOLERANT", "COMMAND")

	for i, s := range c.Steps {
		tolerant := "no"
		if s.Tolerant {
			tolerant = "yes"
		}
		fmt.Fprintf(w, "  %3d  %-*s  %-8s  %s %s\n", i+1, width, s.Name, tolerant, c.ProgramFor(s), strings.Join(s.Args, " "))
	}
	return nil
}
