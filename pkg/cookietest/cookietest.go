// Package cookietest reports cookie matcher mismatches through
// the testing package.
//
//	cookietest.Check(t, resp.Cookies()[0], matcher.New().Secured(true))
//	cookietest.Assert(t, c, matcher.New().Path("/").MaxAge(3600))
//
// Check records a mismatch and lets the test continue; Assert
// stops the test. A subject the matcher cannot read is a broken
// test rather than a mismatch and always stops it.
package cookietest

import (
	"testing"

	"digital.vasic.cookiematch/pkg/matcher"
)

// Check matches actual against m and reports a mismatch with
// t.Errorf. It returns whether actual matched.
func Check(t testing.TB, actual any, m *matcher.CookieMatcher) bool {
	t.Helper()
	report, err := m.Match(actual)
	if err != nil {
		t.Fatalf("%v", err)
		return false
	}
	if !report.Passed {
		t.Errorf("\n%s", report)
		return false
	}
	return true
}

// Assert matches actual against m and stops the test with
// t.Fatalf on a mismatch.
func Assert(t testing.TB, actual any, m *matcher.CookieMatcher) {
	t.Helper()
	report, err := m.Match(actual)
	if err != nil {
		t.Fatalf("%v", err)
		return
	}
	if !report.Passed {
		t.Fatalf("\n%s", report)
	}
}
