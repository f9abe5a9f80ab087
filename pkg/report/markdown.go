package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"digital.vasic.cookiematch/pkg/runner"
)

// MarkdownReporter renders outcomes as a Markdown table with a
// statistics section.
type MarkdownReporter struct {
	now func() time.Time
}

// NewMarkdownReporter creates a Markdown reporter.
func NewMarkdownReporter() *MarkdownReporter {
	return &MarkdownReporter{now: time.Now}
}

// Generate renders outcomes as Markdown.
func (r *MarkdownReporter) Generate(
	outcomes []runner.Outcome,
) ([]byte, error) {
	var sb strings.Builder
	s := Summarize(outcomes)

	sb.WriteString("# Cookie Check Report\n\n")
	sb.WriteString(fmt.Sprintf(
		"**Generated:** %s\n\n", r.now().Format(time.RFC3339),
	))

	sb.WriteString("## Expectations\n\n")
	sb.WriteString("| Cookie | Status | Assertions | Mismatch |\n")
	sb.WriteString("|--------|--------|------------|----------|\n")
	for _, o := range outcomes {
		passed := 0
		for _, res := range o.Report.Results {
			if res.Passed {
				passed++
			}
		}
		sb.WriteString(fmt.Sprintf(
			"| %s | %s | %d/%d | %s |\n",
			o.Cookie, strings.ToUpper(string(o.Status)),
			passed, len(o.Report.Results),
			escapeCell(o.Report.Mismatch()),
		))
	}

	sb.WriteString("\n## Statistics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Total | %d |\n", s.Total))
	sb.WriteString(fmt.Sprintf("| Passed | %d |\n", s.Passed))
	sb.WriteString(fmt.Sprintf("| Failed | %d |\n", s.Failed))
	sb.WriteString(fmt.Sprintf("| Pass Rate | %.0f%% |\n", s.PassRate()*100))

	return []byte(sb.String()), nil
}

// Write renders outcomes to w.
func (r *MarkdownReporter) Write(w io.Writer, outcomes []runner.Outcome) error {
	return write(w, r, outcomes)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
