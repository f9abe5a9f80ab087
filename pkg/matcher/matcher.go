// Package matcher provides CookieMatcher, an immutable fluent
// builder that ANDs per-field predicates over a cookie.
//
//	m := matcher.New().
//		Value("sess123").
//		Domain("example.com").
//		MaxAgeThat(predicate.AtLeast(60))
//
//	report := m.Evaluate(c)
//
// Every chained call returns a new matcher; the receiver is left
// untouched, so a matcher can be shared between goroutines and
// used as the base of several diverging chains.
package matcher

import (
	"fmt"
	"strings"

	"digital.vasic.cookiematch/pkg/cookie"
	"digital.vasic.cookiematch/pkg/predicate"
)

// subjectPrefix prefixes every field description.
const subjectPrefix = "cookie "

// The presence check is the base conjunct of every matcher.
const (
	presenceField       = "cookie"
	presenceDescription = "cookie is present"
)

// condition is one conjunct of a matcher: a field extraction
// followed by a predicate test.
type condition struct {
	field    cookie.Field
	describe string
	eval     func(*cookie.Cookie) Result
}

// CookieMatcher is the conjunction of a presence check and zero
// or more field conditions, in the order they were chained. The
// zero value and a nil pointer both behave like New().
type CookieMatcher struct {
	conds []condition
}

// New returns a matcher that only requires the cookie to be
// present.
func New() *CookieMatcher {
	return &CookieMatcher{}
}

// Where ANDs a predicate over an arbitrary field into m and
// returns the new matcher. It panics with an *ExtractionError if
// the field has no accessor, and panics if p is nil; both are
// composition mistakes rather than test failures.
func Where[T any](
	m *CookieMatcher,
	f Field[T],
	p predicate.Predicate[T],
) *CookieMatcher {
	if f.Get == nil {
		panic(&ExtractionError{
			Field:   f.Name,
			Subject: "*cookie.Cookie",
			Err:     errNoAccessor,
		})
	}
	if p == nil {
		panic(fmt.Sprintf("matcher: nil predicate for field %q", f.Name))
	}

	expected := subjectPrefix + string(f.Name) + " " + p.Describe()
	return m.and(condition{
		field:    f.Name,
		describe: expected,
		eval: func(c *cookie.Cookie) Result {
			actual := f.Get(c)
			r := Result{
				Field:    string(f.Name),
				Expected: expected,
				Actual:   predicate.Format(actual),
				Passed:   p.Test(actual),
			}
			if r.Passed {
				r.Message = fmt.Sprintf("%s %s", f.Name, p.Describe())
			} else {
				r.Message = fmt.Sprintf("%s was %s", f.Name, r.Actual)
			}
			return r
		},
	})
}

// and copies the receiver's conditions into a fresh slice so
// that sibling chains never share backing arrays.
func (m *CookieMatcher) and(c condition) *CookieMatcher {
	conds := m.conditions()
	next := make([]condition, len(conds), len(conds)+1)
	copy(next, conds)
	return &CookieMatcher{conds: append(next, c)}
}

func (m *CookieMatcher) conditions() []condition {
	if m == nil {
		return nil
	}
	return m.conds
}

// Len returns the number of field conditions, excluding the
// presence check.
func (m *CookieMatcher) Len() int {
	return len(m.conditions())
}

// Fields returns the distinct fields referenced by the matcher,
// in the order they were first chained.
func (m *CookieMatcher) Fields() []cookie.Field {
	seen := make(map[cookie.Field]bool)
	var fields []cookie.Field
	for _, c := range m.conditions() {
		if !seen[c.field] {
			seen[c.field] = true
			fields = append(fields, c.field)
		}
	}
	return fields
}

// Describe returns the full expectation, e.g.
// `cookie is present and cookie value is "foo"`.
func (m *CookieMatcher) Describe() string {
	parts := []string{presenceDescription}
	for _, c := range m.conditions() {
		parts = append(parts, c.describe)
	}
	return strings.Join(parts, " and ")
}

// String implements fmt.Stringer.
func (m *CookieMatcher) String() string {
	return m.Describe()
}
