package api

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadCatalog reads a .deploy.yaml file, sets Dir/FilePath, and validates it.
func LoadCatalog(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	c, err := ParseCatalog(data)
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}
	c.FilePath = absPath
	c.Dir = filepath.Dir(absPath)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validating catalog %s: %w", filename, err)
	}

	return c, nil
}

// ParseCatalog unmarshals catalog YAML without validating it.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	return &c, nil
}
