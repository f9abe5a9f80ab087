package logging

import "strings"

// sensitiveKeys are field keys whose values are always masked.
var sensitiveKeys = map[string]bool{
	"value":         true,
	"cookie_value":  true,
	"set_cookie":    true,
	"cookie_header": true,
	"actual":        true,
}

// RedactingLogger is a decorator that keeps cookie values out of
// logs. Fields with sensitive keys are masked entirely, and any
// registered value is masked wherever it appears in a message or
// string field.
type RedactingLogger struct {
	inner  Logger
	values []string
}

// NewRedactingLogger creates a logger that redacts the given
// cookie values from all messages and string field values.
func NewRedactingLogger(
	inner Logger,
	values ...string,
) *RedactingLogger {
	return &RedactingLogger{
		inner:  inner,
		values: values,
	}
}

// minSubstringLen is the shortest value masked wherever it occurs.
// Shorter values are masked only as standalone tokens, so a value
// like "1" does not mangle "100".
const minSubstringLen = 6

func (r *RedactingLogger) redact(msg string) string {
	result := msg
	for _, v := range r.values {
		switch {
		case v == "":
		case len(v) >= minSubstringLen:
			result = strings.ReplaceAll(result, v, redactValue(v))
		default:
			result = replaceToken(result, v, redactValue(v))
		}
	}
	return result
}

// replaceToken replaces occurrences of token in s that are not
// adjacent to a letter or digit.
func replaceToken(s, token, mask string) string {
	var b strings.Builder
	start, pos := 0, 0
	for {
		i := strings.Index(s[pos:], token)
		if i < 0 {
			break
		}
		i += pos
		end := i + len(token)
		if isBoundary(s, i-1) && isBoundary(s, end) {
			b.WriteString(s[start:i])
			b.WriteString(mask)
			start, pos = end, end
		} else {
			pos = i + 1
		}
	}
	b.WriteString(s[start:])
	return b.String()
}

func isBoundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := s[i]
	return !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9')
}

// redactValue masks all but the first 2 characters of values
// longer than 4 characters, and everything otherwise.
func redactValue(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:2] + strings.Repeat("*", len(s)-2)
}

func (r *RedactingLogger) redactFields(fields []Field) []Field {
	result := make([]Field, len(fields))
	for i, f := range fields {
		switch {
		case sensitiveKeys[strings.ToLower(f.Key)]:
			result[i] = Field{Key: f.Key, Value: "****"}
		default:
			if str, ok := f.Value.(string); ok {
				result[i] = Field{Key: f.Key, Value: r.redact(str)}
			} else {
				result[i] = f
			}
		}
	}
	return result
}

// Info logs a redacted informational message.
func (r *RedactingLogger) Info(msg string, fields ...Field) {
	r.inner.Info(r.redact(msg), r.redactFields(fields)...)
}

// Warn logs a redacted warning message.
func (r *RedactingLogger) Warn(msg string, fields ...Field) {
	r.inner.Warn(r.redact(msg), r.redactFields(fields)...)
}

// Error logs a redacted error message.
func (r *RedactingLogger) Error(msg string, fields ...Field) {
	r.inner.Error(r.redact(msg), r.redactFields(fields)...)
}

// Debug logs a redacted debug message.
func (r *RedactingLogger) Debug(msg string, fields ...Field) {
	r.inner.Debug(r.redact(msg), r.redactFields(fields)...)
}

// WithFields returns a RedactingLogger wrapping a new inner
// logger with the given fields applied.
func (r *RedactingLogger) WithFields(fields ...Field) Logger {
	return &RedactingLogger{
		inner:  r.inner.WithFields(r.redactFields(fields)...),
		values: r.values,
	}
}

// Close closes the inner logger.
func (r *RedactingLogger) Close() error {
	return r.inner.Close()
}
