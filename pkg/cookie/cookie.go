// Package cookie defines the cookie record that matchers are
// evaluated against, plus conversions from net/http cookies,
// Set-Cookie headers and loosely typed maps.
package cookie

import (
	"strconv"
	"strings"
	"time"
)

// Undefined marks an integer attribute (Version, MaxAge) that
// was not present on the cookie.
const Undefined = -1

// Cookie is a single HTTP cookie with every attribute a matcher
// can constrain. Values are sensitive and should not be logged.
type Cookie struct {
	Name       string    `json:"name" yaml:"name"`
	Value      string    `json:"value" yaml:"value"`
	Comment    string    `json:"comment,omitempty" yaml:"comment,omitempty"`
	ExpiryDate time.Time `json:"expiryDate" yaml:"expiryDate"`
	Domain     string    `json:"domain" yaml:"domain"`
	Path       string    `json:"path" yaml:"path"`
	Secured    bool      `json:"secured" yaml:"secured"`
	HttpOnly   bool      `json:"httpOnly" yaml:"httpOnly"`
	Version    int       `json:"version" yaml:"version"`
	MaxAge     int       `json:"maxAge" yaml:"maxAge"`
}

// New creates a cookie with the given name and value and with
// Version and MaxAge left undefined.
func New(name, value string) *Cookie {
	return &Cookie{
		Name:    name,
		Value:   value,
		Version: Undefined,
		MaxAge:  Undefined,
	}
}

// HasExpiryDate reports whether the cookie carries an explicit
// expiry date.
func (c *Cookie) HasExpiryDate() bool {
	return !c.ExpiryDate.IsZero()
}

// String renders the cookie in Set-Cookie attribute order. The
// value is included, so callers must not log the result.
func (c *Cookie) String() string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte('=')
	b.WriteString(c.Value)
	if c.Comment != "" {
		b.WriteString("; Comment=" + c.Comment)
	}
	if c.Path != "" {
		b.WriteString("; Path=" + c.Path)
	}
	if c.Domain != "" {
		b.WriteString("; Domain=" + c.Domain)
	}
	if c.MaxAge != Undefined {
		b.WriteString("; Max-Age=" + strconv.Itoa(c.MaxAge))
	}
	if c.HasExpiryDate() {
		b.WriteString("; Expires=" + c.ExpiryDate.UTC().Format(time.RFC1123))
	}
	if c.Version != Undefined {
		b.WriteString("; Version=" + strconv.Itoa(c.Version))
	}
	if c.Secured {
		b.WriteString("; Secure")
	}
	if c.HttpOnly {
		b.WriteString("; HttpOnly")
	}
	return b.String()
}
