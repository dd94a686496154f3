package steps

import (
	"time"

	"github.com/systemstart/mldeploy/pkg/invoker"
)

// Step is one named provisioning operation in a catalog, with its
// arguments still in template form.
type Step struct {
	Index    int // 1-based position in the catalog
	Name     string
	Program  string
	Args     []string
	Tolerant bool
	Capture  string
	Secret   bool
	Timeout  time.Duration
}

// Operation renders the step's arguments against data and returns the
// command to invoke.
func (s Step) Operation(data map[string]any) (invoker.Operation, error) {
	args, err := RenderAll(s.Name+".args", s.Args, data)
	if err != nil {
		return invoker.Operation{}, err
	}

	return invoker.Operation{
		Program:     s.Program,
		Args:        args,
		Description: s.Name,
		Timeout:     s.Timeout,
	}, nil
}
