package matcher

import (
	"time"

	"digital.vasic.cookiematch/pkg/cookie"
	"digital.vasic.cookiematch/pkg/predicate"
)

// Field pairs a field name with a typed accessor. Custom fields
// can be matched through Where.
type Field[T any] struct {
	Name cookie.Field
	Get  func(*cookie.Cookie) T
}

// Accessors for every cookie attribute.
var (
	NameField = Field[string]{cookie.FieldName,
		func(c *cookie.Cookie) string { return c.Name }}
	ValueField = Field[string]{cookie.FieldValue,
		func(c *cookie.Cookie) string { return c.Value }}
	CommentField = Field[string]{cookie.FieldComment,
		func(c *cookie.Cookie) string { return c.Comment }}
	ExpiryDateField = Field[time.Time]{cookie.FieldExpiryDate,
		func(c *cookie.Cookie) time.Time { return c.ExpiryDate }}
	DomainField = Field[string]{cookie.FieldDomain,
		func(c *cookie.Cookie) string { return c.Domain }}
	PathField = Field[string]{cookie.FieldPath,
		func(c *cookie.Cookie) string { return c.Path }}
	SecuredField = Field[bool]{cookie.FieldSecured,
		func(c *cookie.Cookie) bool { return c.Secured }}
	HttpOnlyField = Field[bool]{cookie.FieldHttpOnly,
		func(c *cookie.Cookie) bool { return c.HttpOnly }}
	VersionField = Field[int]{cookie.FieldVersion,
		func(c *cookie.Cookie) int { return c.Version }}
	MaxAgeField = Field[int]{cookie.FieldMaxAge,
		func(c *cookie.Cookie) int { return c.MaxAge }}
)

// Name requires the cookie name to equal expected.
func (m *CookieMatcher) Name(expected string) *CookieMatcher {
	return m.NameThat(predicate.EqualTo(expected))
}

// NameThat requires the cookie name to satisfy p.
func (m *CookieMatcher) NameThat(p predicate.Predicate[string]) *CookieMatcher {
	return Where(m, NameField, p)
}

// Value requires the cookie value to equal expected.
func (m *CookieMatcher) Value(expected string) *CookieMatcher {
	return m.ValueThat(predicate.EqualTo(expected))
}

// ValueThat requires the cookie value to satisfy p.
func (m *CookieMatcher) ValueThat(p predicate.Predicate[string]) *CookieMatcher {
	return Where(m, ValueField, p)
}

// Comment requires the cookie comment to equal expected.
func (m *CookieMatcher) Comment(expected string) *CookieMatcher {
	return m.CommentThat(predicate.EqualTo(expected))
}

// CommentThat requires the cookie comment to satisfy p.
func (m *CookieMatcher) CommentThat(p predicate.Predicate[string]) *CookieMatcher {
	return Where(m, CommentField, p)
}

// ExpiryDate requires the expiry date to be the same instant as
// expected.
func (m *CookieMatcher) ExpiryDate(expected time.Time) *CookieMatcher {
	return m.ExpiryDateThat(predicate.SameInstant(expected))
}

// ExpiryDateThat requires the expiry date to satisfy p.
func (m *CookieMatcher) ExpiryDateThat(p predicate.Predicate[time.Time]) *CookieMatcher {
	return Where(m, ExpiryDateField, p)
}

// Domain requires the cookie domain to equal expected.
func (m *CookieMatcher) Domain(expected string) *CookieMatcher {
	return m.DomainThat(predicate.EqualTo(expected))
}

// DomainThat requires the cookie domain to satisfy p.
func (m *CookieMatcher) DomainThat(p predicate.Predicate[string]) *CookieMatcher {
	return Where(m, DomainField, p)
}

// Path requires the cookie path to equal expected.
func (m *CookieMatcher) Path(expected string) *CookieMatcher {
	return m.PathThat(predicate.EqualTo(expected))
}

// PathThat requires the cookie path to satisfy p.
func (m *CookieMatcher) PathThat(p predicate.Predicate[string]) *CookieMatcher {
	return Where(m, PathField, p)
}

// Secured requires the Secure flag to equal expected.
func (m *CookieMatcher) Secured(expected bool) *CookieMatcher {
	return m.SecuredThat(predicate.EqualTo(expected))
}

// SecuredThat requires the Secure flag to satisfy p.
func (m *CookieMatcher) SecuredThat(p predicate.Predicate[bool]) *CookieMatcher {
	return Where(m, SecuredField, p)
}

// HttpOnly requires the HttpOnly flag to equal expected.
func (m *CookieMatcher) HttpOnly(expected bool) *CookieMatcher {
	return m.HttpOnlyThat(predicate.EqualTo(expected))
}

// HttpOnlyThat requires the HttpOnly flag to satisfy p.
func (m *CookieMatcher) HttpOnlyThat(p predicate.Predicate[bool]) *CookieMatcher {
	return Where(m, HttpOnlyField, p)
}

// Version requires the cookie version to equal expected.
func (m *CookieMatcher) Version(expected int) *CookieMatcher {
	return m.VersionThat(predicate.EqualTo(expected))
}

// VersionThat requires the cookie version to satisfy p.
func (m *CookieMatcher) VersionThat(p predicate.Predicate[int]) *CookieMatcher {
	return Where(m, VersionField, p)
}

// MaxAge requires the max age to equal expected.
func (m *CookieMatcher) MaxAge(expected int) *CookieMatcher {
	return m.MaxAgeThat(predicate.EqualTo(expected))
}

// MaxAgeThat requires the max age to satisfy p.
func (m *CookieMatcher) MaxAgeThat(p predicate.Predicate[int]) *CookieMatcher {
	return Where(m, MaxAgeField, p)
}
