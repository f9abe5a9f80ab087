package report

import (
	"encoding/json"
	"io"
	"time"

	"digital.vasic.cookiematch/pkg/runner"
)

// JSONReporter renders outcomes as a single JSON document.
type JSONReporter struct {
	pretty bool
}

// NewJSONReporter creates a new JSON reporter. When pretty is
// true, output is indented for readability.
func NewJSONReporter(pretty bool) *JSONReporter {
	return &JSONReporter{pretty: pretty}
}

// jsonReport is the JSON structure of a report.
type jsonReport struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Summary     Summary          `json:"summary"`
	Outcomes    []runner.Outcome `json:"outcomes"`
}

// Generate renders outcomes as JSON.
func (r *JSONReporter) Generate(
	outcomes []runner.Outcome,
) ([]byte, error) {
	if outcomes == nil {
		outcomes = []runner.Outcome{}
	}
	doc := jsonReport{
		GeneratedAt: time.Now(),
		Summary:     Summarize(outcomes),
		Outcomes:    outcomes,
	}
	if r.pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

// Write renders outcomes to w.
func (r *JSONReporter) Write(w io.Writer, outcomes []runner.Outcome) error {
	return write(w, r, outcomes)
}
