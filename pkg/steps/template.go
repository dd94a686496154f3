package steps

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/systemstart/mldeploy/pkg/api"
	"github.com/systemstart/mldeploy/pkg/config"
)

// TemplateData exposes configuration values by name and captured outputs
// under .outputs.
func TemplateData(cfg config.Context, outputs map[string]string) map[string]any {
	data := make(map[string]any)
	for name, value := range cfg.Values() {
		data[name] = value
	}

	captured := make(map[string]string, len(outputs))
	for k, v := range outputs {
		captured[k] = v
	}
	data[api.OutputsKey] = captured
	return data
}

// Render executes text as a template with sprig functions. Referencing a
// name that is not in data is an error rather than "<no value>".
func Render(name, text string, data map[string]any) (string, error) {
	if !strings.Contains(text, "{{") {
		return text, nil
	}

	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(sprig.TxtFuncMap()).
		Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", name, err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return b.String(), nil
}

// RenderAll renders each text in order, stopping at the first error.
func RenderAll(name string, texts []string, data map[string]any) ([]string, error) {
	out := make([]string, 0, len(texts))
	for i, text := range texts {
		rendered, err := Render(fmt.Sprintf("%s[%d]", name, i), text, data)
		if err != nil {
			return nil, err
		}
		out = append(out, rendered)
	}
	return out, nil
}
