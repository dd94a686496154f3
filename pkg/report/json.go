package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

type jsonStep struct {
	Index      int        `json:"index"`
	Name       string     `json:"name"`
	Status     StepStatus `json:"status"`
	ExitCode   int        `json:"exit_code"`
	Command    string     `json:"command,omitempty"`
	Diagnostic string     `json:"diagnostic,omitempty"`
	DurationMS int64      `json:"duration_ms"`
}

type jsonReport struct {
	Catalog      string            `json:"catalog"`
	RunType      string            `json:"run_type"`
	Status       RunStatus         `json:"status"`
	StatusLine   string            `json:"status_line"`
	AbortedAfter int               `json:"aborted_after,omitempty"`
	AbortReason  string            `json:"abort_reason,omitempty"`
	Interrupted  bool              `json:"interrupted,omitempty"`
	ExitCode     int               `json:"exit_code"`
	StartedAt    time.Time         `json:"started_at"`
	DurationMS   int64             `json:"duration_ms"`
	Summary      Summary           `json:"summary"`
	Steps        []jsonStep        `json:"steps"`
	Outputs      map[string]string `json:"outputs,omitempty"`
}

// RenderJSON writes the report as an indented JSON document whose steps
// array preserves execution order.
func RenderJSON(w io.Writer, r *RunReport) error {
	outcomes := r.Outcomes()
	doc := jsonReport{
		Catalog:      r.Catalog,
		RunType:      r.RunType,
		Status:       r.Status,
		StatusLine:   r.StatusLine(),
		AbortedAfter: r.AbortedAfter,
		AbortReason:  r.AbortReason,
		Interrupted:  r.Interrupted,
		ExitCode:     r.ExitCode(),
		StartedAt:    r.StartedAt.UTC(),
		DurationMS:   r.Duration.Milliseconds(),
		Summary:      r.Summary(),
		Steps:        make([]jsonStep, 0, len(outcomes)),
		Outputs:      r.Outputs(),
	}
	for _, o := range outcomes {
		doc.Steps = append(doc.Steps, jsonStep{
			Index:      o.Index,
			Name:       o.Name,
			Status:     o.Status,
			ExitCode:   o.ExitCode,
			Command:    o.Command,
			Diagnostic: o.Diagnostic,
			DurationMS: o.Duration.Milliseconds(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
