package runner

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.cookiematch/pkg/assertion"
	"digital.vasic.cookiematch/pkg/bank"
	"digital.vasic.cookiematch/pkg/cookie"
	"digital.vasic.cookiematch/pkg/jar"
	"digital.vasic.cookiematch/pkg/logging"
	"digital.vasic.cookiematch/pkg/predicate"
)

func sessionJar() *jar.Jar {
	sid := cookie.New("sid", "s3cr3t-session")
	sid.Domain = ".example.com"
	sid.Path = "/"
	sid.Secured = true
	sid.HttpOnly = true
	sid.MaxAge = 3600

	theme := cookie.New("theme", "dark")
	theme.Domain = "example.com"

	other := cookie.New("sid", "elsewhere")
	other.Domain = "tracker.net"

	return jar.New(other, sid, theme)
}

func expectation(name string, defs ...assertion.Definition) *bank.Expectation {
	return &bank.Expectation{Cookie: name, Assertions: defs}
}

func def(field, typ string, value any) assertion.Definition {
	return assertion.Definition{Field: field, Type: typ, Value: value}
}

func TestRunner_Run(t *testing.T) {
	r := NewRunner(WithDomain("example.com"))

	outcomes, err := r.Run(context.Background(), []*bank.Expectation{
		expectation("sid",
			def("secured", "equals", true),
			def("httpOnly", "equals", true),
			def("maxAge", "min", 600),
		),
		expectation("theme", def("value", "equals", "light")),
		expectation("csrf"),
	}, sessionJar())
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	assert.Equal(t, StatusPassed, outcomes[0].Status)
	assert.True(t, outcomes[0].Passed())
	assert.Len(t, outcomes[0].Report.Results, 4)

	assert.Equal(t, StatusFailed, outcomes[1].Status)
	assert.Equal(t, `value was "dark"`, outcomes[1].Report.Mismatch())

	assert.Equal(t, StatusFailed, outcomes[2].Status)
	assert.Equal(t, "cookie was absent", outcomes[2].Report.Mismatch())
}

func TestRunner_Run_DomainScopesLookup(t *testing.T) {
	exps := []*bank.Expectation{
		expectation("sid", def("value", "equals", "elsewhere")),
	}

	outcomes, err := NewRunner().Run(context.Background(), exps, sessionJar())
	require.NoError(t, err)
	assert.True(t, outcomes[0].Passed())

	outcomes, err = NewRunner(WithDomain("example.com")).
		Run(context.Background(), exps, sessionJar())
	require.NoError(t, err)
	assert.False(t, outcomes[0].Passed())
}

func TestRunner_Run_NilJar(t *testing.T) {
	outcomes, err := NewRunner().Run(context.Background(),
		[]*bank.Expectation{expectation("sid")}, nil)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, StatusFailed, outcomes[0].Status)
}

func TestRunner_Run_FailFast(t *testing.T) {
	exps := []*bank.Expectation{
		expectation("theme", def("value", "equals", "light")),
		expectation("sid"),
	}

	outcomes, err := NewRunner(WithFailFast(true)).
		Run(context.Background(), exps, sessionJar())
	require.NoError(t, err)
	assert.Len(t, outcomes, 1)

	outcomes, err = NewRunner().Run(context.Background(), exps, sessionJar())
	require.NoError(t, err)
	assert.Len(t, outcomes, 2)
}

func TestRunner_Run_InvalidAssertionAborts(t *testing.T) {
	outcomes, err := NewRunner().Run(context.Background(), []*bank.Expectation{
		expectation("theme"),
		expectation("sid", def("maxAge", "prefix", "1")),
		expectation("theme"),
	}, sessionJar())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "expectation sid: assertions[0]")
	assert.Len(t, outcomes, 1)
}

func TestRunner_Run_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, err := NewRunner().Run(ctx,
		[]*bank.Expectation{expectation("sid")}, sessionJar())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, outcomes)
}

func TestRunner_Run_CustomEngine(t *testing.T) {
	engine := assertion.NewEngine()
	require.NoError(t, engine.Register("dark_mode",
		func(_ assertion.Definition, _ cookie.Kind) (any, error) {
			return predicate.AtLeast(1), nil
		},
	))

	_, err := NewRunner(WithEngine(engine)).Run(context.Background(),
		[]*bank.Expectation{expectation("theme", def("value", "dark_mode", nil))},
		sessionJar())
	assert.ErrorContains(t, err, "requires a string predicate")
}

func TestRunner_Hooks(t *testing.T) {
	var seen []string
	var finished []Status

	r := NewRunner(
		WithPreHook(func(_ context.Context, exp *bank.Expectation, c *cookie.Cookie) error {
			seen = append(seen, exp.Cookie)
			if exp.Cookie == "csrf" {
				assert.Nil(t, c)
			}
			return nil
		}),
		WithPostHook(func(_ context.Context, o Outcome) error {
			finished = append(finished, o.Status)
			return errors.New("ignored")
		}),
	)

	_, err := r.Run(context.Background(), []*bank.Expectation{
		expectation("sid"), expectation("csrf"),
	}, sessionJar())
	require.NoError(t, err)
	assert.Equal(t, []string{"sid", "csrf"}, seen)
	assert.Equal(t, []Status{StatusPassed, StatusFailed}, finished)
}

func TestRunner_PreHookFailureAborts(t *testing.T) {
	r := NewRunner(WithPreHook(
		func(context.Context, *bank.Expectation, *cookie.Cookie) error {
			return errors.New("no session")
		},
	))

	_, err := r.Run(context.Background(),
		[]*bank.Expectation{expectation("sid")}, sessionJar())
	assert.ErrorContains(t, err, "pre-hook failed: no session")
}

func TestRunner_LogsRedactValues(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(
		WithDomain("example.com"),
		WithLogger(logging.NewConsoleLoggerTo(&buf, logging.LevelDebug)),
	)

	_, err := r.Run(context.Background(), []*bank.Expectation{
		expectation("sid", def("value", "equals", "other")),
		expectation("theme"),
	}, sessionJar())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "expectation failed")
	assert.Contains(t, out, "cookie=sid")
	assert.Contains(t, out, "expectation passed")
	assert.NotContains(t, out, "s3cr3t-session")
}
