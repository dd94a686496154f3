package api

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	validRunTypes = map[string]bool{
		RunTypeDeploy: true,
		RunTypeStatus: true,
	}

	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	outputRefPattern  = regexp.MustCompile(`\.` + OutputsKey + `\.([A-Za-z_][A-Za-z0-9_]*)`)
)

// Validate checks the catalog configuration for errors.
func (c *Catalog) Validate() error {
	if c.RunType != "" && !validRunTypes[c.RunType] {
		return fmt.Errorf("unknown runType %q", c.RunType)
	}

	for i, name := range c.Required {
		if name == "" {
			return fmt.Errorf("required[%d]: empty name", i)
		}
		if name == OutputsKey {
			return fmt.Errorf("required[%d]: %q is reserved for captured outputs", i, OutputsKey)
		}
	}

	if _, reserved := c.Settings[OutputsKey]; reserved {
		return fmt.Errorf("settings: %q is reserved for captured outputs", OutputsKey)
	}

	if len(c.Steps) == 0 {
		return fmt.Errorf("catalog has no steps")
	}

	names := make(map[string]int)
	captures := make(map[string]bool)

	for i, step := range c.Steps {
		if step.Name == "" {
			return fmt.Errorf("step %d: name is required", i)
		}
		if prev, exists := names[step.Name]; exists {
			return fmt.Errorf("step %d: duplicate step name %q (first defined at step %d)", i, step.Name, prev)
		}
		names[step.Name] = i

		if err := validateStepConfig(step, captures); err != nil {
			return fmt.Errorf("step %q: %w", step.Name, err)
		}

		if step.Capture != "" {
			captures[step.Capture] = true
		}
	}

	return nil
}

func validateStepConfig(step StepConfig, captures map[string]bool) error {
	if len(step.Args) == 0 {
		return fmt.Errorf("args are required")
	}
	if step.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if step.Secret && step.Capture == "" {
		return fmt.Errorf("secret requires capture")
	}
	if step.Capture != "" {
		if !identifierPattern.MatchString(step.Capture) {
			return fmt.Errorf("capture %q is not a valid identifier", step.Capture)
		}
		if captures[step.Capture] {
			return fmt.Errorf("capture %q is already produced by an earlier step", step.Capture)
		}
	}

	for _, arg := range step.Args {
		for _, m := range outputRefPattern.FindAllStringSubmatch(arg, -1) {
			if !captures[m[1]] {
				return fmt.Errorf("argument %q references output %q that no earlier step captures", strings.TrimSpace(arg), m[1])
			}
		}
	}
	return nil
}
