package matcher

import (
	"fmt"
	"strings"
)

// Result captures the outcome of one conjunct.
type Result struct {
	// Field is the cookie field checked, or "cookie" for the
	// presence check.
	Field string `json:"field"`

	// Expected is the full expectation text.
	Expected string `json:"expected"`

	// Actual is the formatted value that was observed.
	Actual string `json:"actual"`

	// Passed indicates whether the conjunct held.
	Passed bool `json:"passed"`

	// Message is a short description of the outcome.
	Message string `json:"message"`
}

// String renders the result as `cookie value: expected is "foo"
// but was "bar"` on failure.
func (r Result) String() string {
	if r.Passed {
		return r.Expected
	}
	if r.Field == presenceField {
		return "cookie: expected present but was " + r.Actual
	}
	expected := strings.TrimPrefix(r.Expected, subjectPrefix+r.Field+" ")
	return fmt.Sprintf(
		"%s%s: expected %s but was %s",
		subjectPrefix, r.Field, expected, r.Actual,
	)
}

// Report is the outcome of evaluating a matcher against one
// subject. A mismatch is never an error: it is a Report with
// Passed set to false.
type Report struct {
	// Passed is true when every conjunct held.
	Passed bool `json:"passed"`

	// Description is the full expectation of the matcher.
	Description string `json:"description"`

	// Results holds one entry per evaluated conjunct, presence
	// check first.
	Results []Result `json:"results"`
}

// Failures returns the conjuncts that did not hold.
func (r Report) Failures() []Result {
	var failed []Result
	for _, res := range r.Results {
		if !res.Passed {
			failed = append(failed, res)
		}
	}
	return failed
}

// Mismatch describes every failed conjunct, e.g.
// `value was "bar", maxAge was 100`. Empty when passed.
func (r Report) Mismatch() string {
	failed := r.Failures()
	msgs := make([]string, len(failed))
	for i, f := range failed {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, ", ")
}

// String renders the report in expected/but form.
func (r Report) String() string {
	if r.Passed {
		return "Expected: " + r.Description
	}
	return fmt.Sprintf(
		"Expected: %s\n     but: %s", r.Description, r.Mismatch(),
	)
}
