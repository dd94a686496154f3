package preflight

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool is a client binary a run shells out to.
type Tool struct {
	Name       string
	InstallURL string
}

var installURLs = map[string]string{
	"az": "https://learn.microsoft.com/cli/azure/install-azure-cli",
}

// ToolsFor returns Tool entries for the given binary names.
func ToolsFor(names []string) []Tool {
	tools := make([]Tool, 0, len(names))
	for _, name := range names {
		tools = append(tools, Tool{Name: name, InstallURL: installURLs[name]})
	}
	return tools
}

// MissingToolsError lists client tools that were not found in PATH.
type MissingToolsError struct {
	Tools []Tool
}

func (e *MissingToolsError) Error() string {
	missing := make([]string, 0, len(e.Tools))
	for _, tool := range e.Tools {
		if tool.InstallURL != "" {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		} else {
			missing = append(missing, tool.Name)
		}
	}
	return fmt.Sprintf("missing required tools: %s", strings.Join(missing, ", "))
}

// LookPathFunc resolves a binary name to a path.
type LookPathFunc func(name string) (string, error)

// CheckTools verifies that every tool can be found. A nil lookPath uses exec.LookPath.
func CheckTools(tools []Tool, lookPath LookPathFunc) error {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	var missing []Tool
	for _, tool := range tools {
		if _, err := lookPath(tool.Name); err != nil {
			missing = append(missing, tool)
		}
	}

	if len(missing) > 0 {
		return &MissingToolsError{Tools: missing}
	}
	return nil
}
