package assertion

import "digital.vasic.cookiematch/pkg/cookie"

// Factory builds a field predicate for one assertion. kind is
// the kind of the target field; the returned value must be a
// predicate.Predicate of the matching Go type.
type Factory func(def Definition, kind cookie.Kind) (any, error)
