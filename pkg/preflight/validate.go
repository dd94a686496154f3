// Package preflight checks everything a run needs before the first step is
// attempted: configuration values, client tools, and referenced files.
package preflight

import (
	"fmt"
	"strings"

	"github.com/systemstart/mldeploy/pkg/config"
)

// MissingValue names a required configuration value that is absent or empty.
type MissingValue struct {
	Name  string
	Empty bool // supplied, but with an empty value
}

// MissingConfigurationError lists every required value that is not usable.
type MissingConfigurationError struct {
	Missing []MissingValue
}

// Names returns the missing names in the order they were required.
func (e *MissingConfigurationError) Names() []string {
	names := make([]string, 0, len(e.Missing))
	for _, m := range e.Missing {
		names = append(names, m.Name)
	}
	return names
}

func (e *MissingConfigurationError) Error() string {
	parts := make([]string, 0, len(e.Missing))
	for _, m := range e.Missing {
		if m.Empty {
			parts = append(parts, m.Name+" (empty)")
		} else {
			parts = append(parts, m.Name)
		}
	}
	return fmt.Sprintf("missing configuration: %s", strings.Join(parts, ", "))
}

// Validate checks that every required name has a non-empty value.
// All missing names are reported, not just the first.
func Validate(ctx config.Context, required []string) error {
	var missing []MissingValue
	seen := make(map[string]bool, len(required))

	for _, name := range required {
		if seen[name] {
			continue
		}
		seen[name] = true

		v, ok := ctx.Lookup(name)
		switch {
		case !ok:
			missing = append(missing, MissingValue{Name: name})
		case v == "":
			missing = append(missing, MissingValue{Name: name, Empty: true})
		}
	}

	if len(missing) > 0 {
		return &MissingConfigurationError{Missing: missing}
	}
	return nil
}
