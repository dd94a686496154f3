package api

import "time"

const (
	DefaultProgram = "az"

	RunTypeDeploy = "deploy"
	RunTypeStatus = "status"

	// OutputsKey is the template key under which captured step outputs are exposed.
	OutputsKey = "outputs"
)

// Catalog is the .deploy.yaml configuration format: an ordered list of
// provisioning steps for one run type.
type Catalog struct {
	Name     string            `yaml:"name"`
	RunType  string            `yaml:"runType,omitempty"`
	Program  string            `yaml:"program,omitempty"`
	Required []string          `yaml:"required,omitempty"`
	Tools    []string          `yaml:"tools,omitempty"`
	Files    []string          `yaml:"files,omitempty"`
	Settings map[string]string `yaml:"settings,omitempty"`
	Steps    []StepConfig      `yaml:"steps"`

	// Set by the loader, not from YAML.
	Dir      string `yaml:"-"`
	FilePath string `yaml:"-"`
}

// StepConfig defines a single provisioning step within a catalog.
type StepConfig struct {
	Name     string        `yaml:"name"`
	Program  string        `yaml:"program,omitempty"`
	Args     []string      `yaml:"args"`
	Tolerant bool          `yaml:"tolerant,omitempty"`
	Capture  string        `yaml:"capture,omitempty"`
	Secret   bool          `yaml:"secret,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`
}

// MarshalYAML writes the timeout as a duration string rather than nanoseconds.
func (s StepConfig) MarshalYAML() (any, error) {
	out := struct {
		Name     string   `yaml:"name"`
		Program  string   `yaml:"program,omitempty"`
		Args     []string `yaml:"args"`
		Tolerant bool     `yaml:"tolerant,omitempty"`
		Capture  string   `yaml:"capture,omitempty"`
		Secret   bool     `yaml:"secret,omitempty"`
		Timeout  string   `yaml:"timeout,omitempty"`
	}{
		Name:     s.Name,
		Program:  s.Program,
		Args:     s.Args,
		Tolerant: s.Tolerant,
		Capture:  s.Capture,
		Secret:   s.Secret,
	}
	if s.Timeout > 0 {
		out.Timeout = s.Timeout.String()
	}
	return out, nil
}

// ProgramFor returns the program a step runs, falling back to the catalog
// program and then to DefaultProgram.
func (c *Catalog) ProgramFor(step StepConfig) string {
	if step.Program != "" {
		return step.Program
	}
	if c.Program != "" {
		return c.Program
	}
	return DefaultProgram
}

// RequiredTools returns the tools that must be on PATH before the run.
// Without an explicit list every distinct step program is required.
func (c *Catalog) RequiredTools() []string {
	if len(c.Tools) > 0 {
		return c.Tools
	}

	seen := make(map[string]bool)
	var tools []string
	for _, step := range c.Steps {
		p := c.ProgramFor(step)
		if !seen[p] {
			seen[p] = true
			tools = append(tools, p)
		}
	}
	return tools
}
