package matcher

import (
	"errors"
	"fmt"
	"net/http"

	"digital.vasic.cookiematch/pkg/cookie"
)

// Evaluate checks c against every conjunct. A nil cookie fails
// the presence check and no field is examined; otherwise every
// field condition is evaluated so the report lists all failures.
func (m *CookieMatcher) Evaluate(c *cookie.Cookie) Report {
	report := Report{Description: m.Describe()}

	if c == nil {
		report.Results = []Result{{
			Field:    presenceField,
			Expected: presenceDescription,
			Actual:   "<absent>",
			Message:  "cookie was absent",
		}}
		return report
	}

	conds := m.conditions()
	report.Passed = true
	report.Results = make([]Result, 0, len(conds)+1)
	report.Results = append(report.Results, Result{
		Field:    presenceField,
		Expected: presenceDescription,
		Actual:   "<present>",
		Passed:   true,
		Message:  "cookie is present",
	})

	for _, cond := range conds {
		r := cond.eval(c)
		if !r.Passed {
			report.Passed = false
		}
		report.Results = append(report.Results, r)
	}

	return report
}

// Matches reports whether c satisfies every conjunct.
func (m *CookieMatcher) Matches(c *cookie.Cookie) bool {
	return m.Evaluate(c).Passed
}

// Match evaluates an arbitrary subject. Accepted subjects are
// cookie.Cookie, net/http cookies (values or pointers) and
// map[string]any records; nil subjects yield an absent report.
// Any other subject, or a map that lacks or mistypes a
// referenced field, returns an *ExtractionError.
func (m *CookieMatcher) Match(actual any) (Report, error) {
	switch v := actual.(type) {
	case nil:
		return m.Evaluate(nil), nil
	case *cookie.Cookie:
		return m.Evaluate(v), nil
	case cookie.Cookie:
		return m.Evaluate(&v), nil
	case *http.Cookie:
		return m.Evaluate(cookie.FromHTTP(v)), nil
	case http.Cookie:
		return m.Evaluate(cookie.FromHTTP(&v)), nil
	case map[string]any:
		if v == nil {
			return m.Evaluate(nil), nil
		}
		c, err := cookie.FromMap(v, m.Fields()...)
		if err != nil {
			var fe *cookie.FieldError
			if errors.As(err, &fe) {
				return Report{}, &ExtractionError{
					Field:   fe.Field,
					Subject: "map[string]any",
					Err:     err,
				}
			}
			return Report{}, err
		}
		return m.Evaluate(c), nil
	}

	var field cookie.Field
	if fields := m.Fields(); len(fields) > 0 {
		field = fields[0]
	}
	return Report{}, &ExtractionError{
		Field:   field,
		Subject: fmt.Sprintf("%T", actual),
		Err:     errUnsupportedSubject,
	}
}
