package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// jsonMarshal is a variable for dependency injection in tests.
var jsonMarshal = json.Marshal

// LogEntry represents a single JSON log entry.
type LogEntry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// LoggerConfig configures the JSONLogger.
type LoggerConfig struct {
	// OutputPath is the log file; stdout when empty.
	OutputPath string
	Level      LogLevel
	Fields     map[string]any
}

// jsonSink is shared by a JSONLogger and its WithFields
// children so that Close applies to all of them.
type jsonSink struct {
	mu     sync.Mutex
	output io.Writer
	closed bool
}

// JSONLogger implements Logger with JSON Lines output.
type JSONLogger struct {
	sink   *jsonSink
	level  LogLevel
	fields map[string]any
}

// NewJSONLogger creates a new JSON logger. If OutputPath is
// empty, logs are written to stdout.
func NewJSONLogger(config LoggerConfig) (*JSONLogger, error) {
	output := io.Writer(os.Stdout)

	if config.OutputPath != "" {
		dir := filepath.Dir(config.OutputPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf(
				"failed to create log directory: %w", err,
			)
		}
		file, err := os.OpenFile(
			config.OutputPath,
			os.O_CREATE|os.O_WRONLY|os.O_APPEND,
			0644,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to open log file: %w", err,
			)
		}
		output = file
	}

	return newJSONLoggerTo(output, config.Level, config.Fields), nil
}

func newJSONLoggerTo(
	w io.Writer, level LogLevel, fields map[string]any,
) *JSONLogger {
	return &JSONLogger{
		sink:   &jsonSink{output: w},
		level:  level,
		fields: mergeFields(fields, nil),
	}
}

func (l *JSONLogger) log(
	level LogLevel, msg string, fields ...Field,
) {
	if level < l.level {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		Level:     level.String(),
		Message:   msg,
		Fields:    mergeFields(l.fields, fields),
	}

	data, err := jsonMarshal(entry)
	if err != nil {
		return
	}

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	if l.sink.closed {
		return
	}
	fmt.Fprintln(l.sink.output, string(data))
}

// Info logs an informational message.
func (l *JSONLogger) Info(msg string, fields ...Field) {
	l.log(LevelInfo, msg, fields...)
}

// Warn logs a warning message.
func (l *JSONLogger) Warn(msg string, fields ...Field) {
	l.log(LevelWarn, msg, fields...)
}

// Error logs an error message.
func (l *JSONLogger) Error(msg string, fields ...Field) {
	l.log(LevelError, msg, fields...)
}

// Debug logs a debug message.
func (l *JSONLogger) Debug(msg string, fields ...Field) {
	l.log(LevelDebug, msg, fields...)
}

// WithFields returns a new Logger with additional default
// fields.
func (l *JSONLogger) WithFields(fields ...Field) Logger {
	return &JSONLogger{
		sink:   l.sink,
		level:  l.level,
		fields: mergeFields(l.fields, fields),
	}
}

// Close closes the underlying file, if any. Later entries are
// dropped.
func (l *JSONLogger) Close() error {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	if l.sink.closed {
		return nil
	}
	l.sink.closed = true

	if closer, ok := l.sink.output.(io.Closer); ok &&
		l.sink.output != os.Stdout {
		return closer.Close()
	}
	return nil
}
