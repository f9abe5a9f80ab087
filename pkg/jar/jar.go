// Package jar holds cookie records loaded from browser cookie
// stores and exported cookie files, and finds them by name and
// domain for assertion.
//
// Cookie values are sensitive: loaders never log them, and only
// names and domains appear in diagnostics.
package jar

import (
	"strings"
	"sync"

	"digital.vasic.cookiematch/pkg/cookie"
)

// Jar is an ordered, concurrency-safe collection of cookies.
type Jar struct {
	mu      sync.RWMutex
	cookies []*cookie.Cookie
}

// New creates a jar holding the given cookies. Nil entries are
// dropped.
func New(cookies ...*cookie.Cookie) *Jar {
	j := &Jar{}
	j.Add(cookies...)
	return j
}

// Add appends cookies to the jar.
func (j *Jar) Add(cookies ...*cookie.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, c := range cookies {
		if c != nil {
			j.cookies = append(j.cookies, c)
		}
	}
}

// All returns the cookies in insertion order.
func (j *Jar) All() []*cookie.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	result := make([]*cookie.Cookie, len(j.cookies))
	copy(result, j.cookies)
	return result
}

// Len returns the number of cookies in the jar.
func (j *Jar) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.cookies)
}

// Find returns the first cookie called name whose domain
// matches domain, or nil. An empty domain matches any cookie.
// A nil result is a valid subject: it evaluates as an absent
// cookie.
func (j *Jar) Find(name, domain string) *cookie.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	for _, c := range j.cookies {
		if c.Name == name && MatchesDomain(c.Domain, domain) {
			return c
		}
	}
	return nil
}

// Filter returns a new jar with the cookies matching domain.
func (j *Jar) Filter(domain string) *Jar {
	j.mu.RLock()
	defer j.mu.RUnlock()
	out := &Jar{}
	for _, c := range j.cookies {
		if MatchesDomain(c.Domain, domain) {
			out.cookies = append(out.cookies, c)
		}
	}
	return out
}

// MatchesDomain reports whether a cookie domain belongs to
// domain: an exact match, the dot-prefixed form, or a
// subdomain. Comparison ignores case.
func MatchesDomain(cookieDomain, domain string) bool {
	if domain == "" {
		return true
	}
	cookieDomain = strings.ToLower(cookieDomain)
	domain = strings.ToLower(strings.TrimPrefix(domain, "."))
	dotDomain := "." + domain

	if cookieDomain == domain || cookieDomain == dotDomain {
		return true
	}
	return strings.HasSuffix(cookieDomain, dotDomain)
}
