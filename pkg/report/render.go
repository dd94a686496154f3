package report

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Report palette.
var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")
)

const (
	okMark        = "[OK]"
	toleratedMark = "[~~]"
	fatalMark     = "[!!]"

	diagnosticLines = 3
)

type styles struct {
	title, section, dim, ok, tolerated, fatal lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain}
	}
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(colorWhite),
		section:   lipgloss.NewStyle().Bold(true).Foreground(colorBlue),
		dim:       lipgloss.NewStyle().Foreground(colorDim),
		ok:        lipgloss.NewStyle().Foreground(colorGreen),
		tolerated: lipgloss.NewStyle().Foreground(colorYellow),
		fatal:     lipgloss.NewStyle().Foreground(colorRed),
	}
}

// TextOptions controls RenderText.
type TextOptions struct {
	// Color enables ANSI styling; disable it when the writer is not a terminal.
	Color bool
	// Verbose shows diagnostic text for successful steps as well.
	Verbose bool
}

// RenderText writes a human-readable summary: every step in order with its
// status, then the overall status.
func RenderText(w io.Writer, r *RunReport, opts TextOptions) error {
	st := newStyles(opts.Color)
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(st.title.Render(fmt.Sprintf("  mldeploy %s (catalog: %s)", r.RunType, r.Catalog)))
	b.WriteString("\n")
	b.WriteString(st.dim.Render("  " + strings.Repeat("═", 40)))
	b.WriteString("\n")

	outcomes := r.Outcomes()
	if len(outcomes) == 0 {
		b.WriteString(st.dim.Render("  no steps were attempted"))
		b.WriteString("\n")
	}

	for _, o := range outcomes {
		renderOutcome(&b, st, o, opts.Verbose)
	}

	b.WriteString(st.dim.Render("  " + strings.Repeat("─", 40)))
	b.WriteString("\n")

	sum := r.Summary()
	fmt.Fprintf(&b, "  Status: %s  (%d succeeded, %d tolerated, %d fatal) in %v\n",
		statusStyle(st, r).Render(r.StatusLine()),
		sum.Succeeded, sum.Tolerated, sum.Fatal,
		r.Duration.Round(time.Millisecond))
	if r.AbortReason != "" {
		fmt.Fprintf(&b, "  Reason: %s\n", r.AbortReason)
	}

	renderOutputs(&b, st, r)

	_, err := io.WriteString(w, b.String())
	return err
}

func renderOutcome(b *strings.Builder, st styles, o StepOutcome, verbose bool) {
	mark, style := okMark, st.ok
	switch o.Status {
	case StepFailedTolerated:
		mark, style = toleratedMark, st.tolerated
	case StepFailedFatal:
		mark, style = fatalMark, st.fatal
	}

	fmt.Fprintf(b, "  %s %2d. %-28s %s %s\n",
		style.Render(mark),
		o.Index,
		o.Name,
		style.Render(fmt.Sprintf("%-17s", o.Status)),
		st.dim.Render(o.Duration.Round(time.Millisecond).String()))

	if o.Status == StepSucceeded && !verbose {
		return
	}
	for _, line := range headLines(o.Diagnostic, diagnosticLines) {
		b.WriteString(st.dim.Render("        " + line))
		b.WriteString("\n")
	}
}

func renderOutputs(b *strings.Builder, st styles, r *RunReport) {
	outputs := r.Outputs()
	if len(outputs) == 0 {
		return
	}

	b.WriteString("\n")
	b.WriteString(st.section.Render("  Outputs"))
	b.WriteString("\n")

	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(b, "    %-14s %s\n", name+":", outputs[name])
	}

	uri := outputs["scoringUri"]
	if uri == "" || r.Status != RunCompleted {
		return
	}

	key := outputs["endpointKey"]
	if key == "" {
		key = "<key>"
	}
	b.WriteString("\n")
	b.WriteString(st.section.Render("  Test the endpoint"))
	b.WriteString("\n")
	fmt.Fprintf(b, "    curl -X POST %s \\\n", uri)
	fmt.Fprintf(b, "      -H 'Authorization: Bearer %s' \\\n", key)
	b.WriteString("      -H 'Content-Type: application/json' \\\n")
	b.WriteString("      -d @sample-request.json\n")
}

func statusStyle(st styles, r *RunReport) lipgloss.Style {
	switch r.Status {
	case RunCompleted:
		if r.Summary().Tolerated > 0 {
			return st.tolerated
		}
		return st.ok
	default:
		return st.fatal
	}
}

func headLines(s string, n int) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = append(lines[:n], fmt.Sprintf("… (%d more lines)", len(lines)-n))
	}
	return lines
}
