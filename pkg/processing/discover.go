package processing

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/systemstart/mldeploy/pkg/api"
)

const (
	catalogSuffix  = ".deploy.yaml"
	catalogPattern = "**/*" + catalogSuffix
)

// DiscoverCatalogs finds and loads every *.deploy.yaml file below root.
// Results are sorted by path depth (parents before children), then by path.
func DiscoverCatalogs(root string) ([]*api.Catalog, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root path: %w", err)
	}

	matches, err := doublestar.Glob(os.DirFS(absRoot), catalogPattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("searching %s for catalogs: %w", absRoot, err)
	}

	slices.SortFunc(matches, func(a, b string) int {
		if d := pathDepth(a) - pathDepth(b); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Join(absRoot, filepath.FromSlash(m)))
	}
	return loadAll(paths)
}

func loadAll(paths []string) ([]*api.Catalog, error) {
	catalogs := make([]*api.Catalog, 0, len(paths))
	for _, p := range paths {
		c, err := api.LoadCatalog(p)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", p, err)
		}
		catalogs = append(catalogs, c)
	}
	return catalogs, nil
}

// SelectCatalog returns the single catalog for runType. A catalog without a
// runType is matched by its name.
func SelectCatalog(catalogs []*api.Catalog, runType string) (*api.Catalog, error) {
	var found []*api.Catalog
	for _, c := range catalogs {
		if catalogRunType(c) == runType {
			found = append(found, c)
		}
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("no catalog for run type %q", runType)
	case 1:
		return found[0], nil
	default:
		files := make([]string, 0, len(found))
		for _, c := range found {
			files = append(files, c.FilePath)
		}
		return nil, fmt.Errorf("%d catalogs for run type %q: %s", len(found), runType, strings.Join(files, ", "))
	}
}

func catalogRunType(c *api.Catalog) string {
	if c.RunType != "" {
		return c.RunType
	}
	return catalogName(c)
}

// catalogName falls back to the file name without its suffix.
func catalogName(c *api.Catalog) string {
	if c.Name != "" {
		return c.Name
	}
	if c.FilePath != "" {
		base := filepath.Base(c.FilePath)
		base = strings.TrimSuffix(base, catalogSuffix)
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return c.RunType
}

func pathDepth(p string) int {
	if p == "." {
		return 0
	}
	return strings.Count(filepath.ToSlash(p), "/") + 1
}
