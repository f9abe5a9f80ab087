package report

import (
	"fmt"
	"io"
	"strings"

	"digital.vasic.cookiematch/pkg/runner"
)

// TextReporter renders one line per expectation with indented
// failure details, followed by a summary line.
type TextReporter struct {
	verbose bool
}

// NewTextReporter creates a text reporter. When verbose is true,
// passed conjuncts are listed as well.
func NewTextReporter(verbose bool) *TextReporter {
	return &TextReporter{verbose: verbose}
}

// Generate renders outcomes as plain text.
func (r *TextReporter) Generate(
	outcomes []runner.Outcome,
) ([]byte, error) {
	var sb strings.Builder

	for _, o := range outcomes {
		label := "PASS"
		if !o.Passed() {
			label = "FAIL"
		}
		sb.WriteString(fmt.Sprintf("%s %s", label, o.Cookie))
		if o.Description != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", o.Description))
		}
		sb.WriteString("\n")

		for _, res := range o.Report.Results {
			if res.Passed && !r.verbose {
				continue
			}
			mark := "x"
			if res.Passed {
				mark = "ok"
			}
			sb.WriteString(fmt.Sprintf("    %-2s %s\n", mark, res.String()))
		}
	}

	s := Summarize(outcomes)
	sb.WriteString(fmt.Sprintf(
		"\n%d expectations, %d passed, %d failed\n",
		s.Total, s.Passed, s.Failed,
	))
	return []byte(sb.String()), nil
}

// Write renders outcomes to w.
func (r *TextReporter) Write(w io.Writer, outcomes []runner.Outcome) error {
	return write(w, r, outcomes)
}
