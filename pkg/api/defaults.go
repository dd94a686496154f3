package api

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed catalogs/*.yaml
var builtinCatalogs embed.FS

// DefaultCatalog returns the built-in catalog for a run type.
func DefaultCatalog(runType string) (*Catalog, error) {
	data, err := builtinCatalogs.ReadFile("catalogs/" + runType + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("no built-in catalog for run type %q (available: %s)", runType, strings.Join(DefaultRunTypes(), ", "))
	}

	c, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("built-in catalog %q: %w", runType, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("built-in catalog %q: %w", runType, err)
	}
	return c, nil
}

// DefaultRunTypes lists the run types that have a built-in catalog.
func DefaultRunTypes() []string {
	entries, err := builtinCatalogs.ReadDir("catalogs")
	if err != nil {
		return nil
	}

	var types []string
	for _, e := range entries {
		types = append(types, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(types)
	return types
}
