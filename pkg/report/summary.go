package report

import (
	"time"

	"digital.vasic.cookiematch/pkg/runner"
)

// Summary aggregates a set of outcomes.
type Summary struct {
	Total            int           `json:"total"`
	Passed           int           `json:"passed"`
	Failed           int           `json:"failed"`
	AssertionsPassed int           `json:"assertions_passed"`
	AssertionsTotal  int           `json:"assertions_total"`
	TotalDuration    time.Duration `json:"total_duration"`
}

// Summarize builds a Summary from outcomes. Assertion counts
// include the presence check of each expectation.
func Summarize(outcomes []runner.Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		s.Total++
		if o.Passed() {
			s.Passed++
		} else {
			s.Failed++
		}
		for _, res := range o.Report.Results {
			s.AssertionsTotal++
			if res.Passed {
				s.AssertionsPassed++
			}
		}
		s.TotalDuration += o.Duration
	}
	return s
}

// OK reports whether every expectation passed.
func (s Summary) OK() bool {
	return s.Failed == 0
}

// PassRate is the fraction of passed expectations, 0 when there
// are none.
func (s Summary) PassRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Passed) / float64(s.Total)
}
