package bank

import (
	"fmt"

	"digital.vasic.cookiematch/pkg/assertion"
	"digital.vasic.cookiematch/pkg/matcher"
)

// ValidationError represents a validation issue found in an
// expectation file.
type ValidationError struct {
	Field   string
	Message string
	Index   int // -1 if not applicable
}

func (e ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("expectations[%d].%s: %s", e.Index, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateFile validates an expectation file and returns all
// errors found. Each assertion is built with engine so unknown
// fields, unknown types and ill-typed values are reported; a
// nil engine uses the built-in assertion types.
func ValidateFile(path string, engine assertion.Engine) []ValidationError {
	file, err := readFile(path)
	if err != nil {
		return []ValidationError{{Field: "file", Message: err.Error(), Index: -1}}
	}
	if engine == nil {
		engine = assertion.NewEngine()
	}

	var errs []ValidationError
	if file.Version == "" {
		errs = append(errs, ValidationError{
			Field: "version", Message: "version is required", Index: -1,
		})
	}

	seen := make(map[string]bool)
	for i, exp := range file.Expectations {
		switch {
		case exp.Cookie == "":
			errs = append(errs, ValidationError{
				Field: "cookie", Message: "cookie name is required", Index: i,
			})
		case seen[exp.Cookie]:
			errs = append(errs, ValidationError{
				Field:   "cookie",
				Message: fmt.Sprintf("duplicate cookie: %s", exp.Cookie),
				Index:   i,
			})
		default:
			seen[exp.Cookie] = true
		}

		for j, def := range exp.Assertions {
			if _, err := engine.Apply(matcher.New(), def); err != nil {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("assertions[%d]", j),
					Message: err.Error(),
					Index:   i,
				})
			}
		}
	}

	return errs
}
