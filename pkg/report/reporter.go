// Package report renders runner outcomes as text, JSON or
// Markdown.
package report

import (
	"fmt"
	"io"

	"digital.vasic.cookiematch/pkg/runner"
)

// Reporter defines the interface for rendering outcomes.
type Reporter interface {
	// Generate renders all outcomes, summary included.
	Generate(outcomes []runner.Outcome) ([]byte, error)

	// Write renders all outcomes to w.
	Write(w io.Writer, outcomes []runner.Outcome) error
}

// New returns the reporter for a format name: text, json or
// markdown.
func New(format string) (Reporter, error) {
	switch format {
	case "", "text":
		return NewTextReporter(false), nil
	case "json":
		return NewJSONReporter(true), nil
	case "markdown", "md":
		return NewMarkdownReporter(), nil
	}
	return nil, fmt.Errorf("unknown report format: %q", format)
}

func write(w io.Writer, r Reporter, outcomes []runner.Outcome) error {
	data, err := r.Generate(outcomes)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
