package runner

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.cookiematch/pkg/bank"
	"digital.vasic.cookiematch/pkg/cookie"
	"digital.vasic.cookiematch/pkg/jar"
)

func manyCookies(n int) (*jar.Jar, []*bank.Expectation) {
	j := jar.New()
	exps := make([]*bank.Expectation, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("c%d", i)
		j.Add(cookie.New(name, "v"))
		exps[i] = expectation(name, def("value", "equals", "v"))
	}
	return j, exps
}

func TestRunParallel_PreservesOrder(t *testing.T) {
	j, exps := manyCookies(25)

	outcomes, err := NewRunner().RunParallel(context.Background(), exps, j, 8)
	require.NoError(t, err)
	require.Len(t, outcomes, 25)
	for i, o := range outcomes {
		assert.Equal(t, fmt.Sprintf("c%d", i), o.Cookie)
		assert.True(t, o.Passed())
	}
}

func TestRunParallel_RespectsMaxConcurrency(t *testing.T) {
	j, exps := manyCookies(12)
	var current, peak int32

	r := NewRunner(WithPreHook(
		func(context.Context, *bank.Expectation, *cookie.Cookie) error {
			n := atomic.AddInt32(&current, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&current, -1)
			return nil
		},
	))

	outcomes, err := r.RunParallel(context.Background(), exps, j, 3)
	require.NoError(t, err)
	assert.Len(t, outcomes, 12)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

func TestRunParallel_ZeroConcurrency(t *testing.T) {
	j, exps := manyCookies(3)

	outcomes, err := NewRunner().RunParallel(context.Background(), exps, j, 0)
	require.NoError(t, err)
	assert.Len(t, outcomes, 3)
}

func TestRunParallel_MixedResults(t *testing.T) {
	j, exps := manyCookies(2)
	exps = append(exps, expectation("missing"))

	outcomes, err := NewRunner().RunParallel(context.Background(), exps, j, 2)
	require.NoError(t, err)
	require.Len(t, outcomes, 3)
	assert.Equal(t, StatusFailed, outcomes[2].Status)
}

func TestRunParallel_InvalidAssertion(t *testing.T) {
	j, exps := manyCookies(2)
	exps[1] = expectation("c1", def("secured", "min", 1))

	outcomes, err := NewRunner().RunParallel(context.Background(), exps, j, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expectation c1")
	require.Len(t, outcomes, 1)
	assert.Equal(t, "c0", outcomes[0].Cookie)
}

func TestRunParallel_ContextCancelled(t *testing.T) {
	j, exps := manyCookies(4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, err := NewRunner().RunParallel(ctx, exps, j, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, outcomes)
}

func TestRunParallel_Empty(t *testing.T) {
	outcomes, err := NewRunner().RunParallel(context.Background(), nil, jar.New(), 4)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}
