package matcher

import (
	"errors"
	"fmt"

	"digital.vasic.cookiematch/pkg/cookie"
)

// ErrExtraction matches every *ExtractionError via errors.Is.
var ErrExtraction = errors.New("cookie field extraction failed")

var (
	errNoAccessor         = errors.New("field has no accessor")
	errUnsupportedSubject = errors.New("subject is not a cookie record")
)

// ExtractionError reports that a subject does not expose a field
// the matcher references, or is not a cookie record at all. The
// latter is rejected even when the matcher references no field,
// in which case Field is empty. It signals a broken test setup, not a
// failed expectation, and is never folded into a Report.
type ExtractionError struct {
	// Field is the field that could not be extracted. It is
	// empty when the matcher references no field.
	Field cookie.Field

	// Subject is the Go type of the subject.
	Subject string

	// Err is the underlying cause.
	Err error
}

func (e *ExtractionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("cannot extract cookie from %s: %v", e.Subject, e.Err)
	}
	return fmt.Sprintf(
		"cannot extract cookie field %q from %s: %v",
		e.Field, e.Subject, e.Err,
	)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Is reports whether target is ErrExtraction.
func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtraction
}
