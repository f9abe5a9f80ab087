package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerTo(&buf, LevelInfo)

	logger.Debug("hidden")
	logger.Info("checking cookie")
	logger.Warn("cookie missing")
	logger.Error("check failed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "checking cookie")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "ERROR")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestConsoleLogger_DebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerTo(&buf, LevelDebug)

	logger.Debug("trace detail")

	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "trace detail")
}

func TestConsoleLogger_FieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerTo(&buf, LevelInfo)

	logger.Info("evaluated",
		StringField("status", "passed"),
		CookieField("sid"),
	)

	assert.Contains(t, buf.String(), "{cookie=sid, status=passed}")
}

func TestConsoleLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewConsoleLoggerTo(&buf, LevelInfo)
	child := base.WithFields(StringField("source", "jar.txt"))

	child.Info("loaded")
	base.Info("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "source=jar.txt")
	assert.NotContains(t, lines[1], "source=")
	assert.NoError(t, child.Close())
}
