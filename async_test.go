package purefunc

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	goerrors "github.com/go-errors/errors"
	"github.com/stretchr/testify/require"
)

// sleepy returns name after d, or the context error if cancelled first.
func sleepy(ctx context.Context, name string, d time.Duration) (string, error) {
	select {
	case <-time.After(d):
		return fmt.Sprintf("%s: %v", name, d), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func newSleepy(t *testing.T, name string, d time.Duration) *Curried {
	t.Helper()

	thunk, err := Thunkify(sleepy, WithParams("name", "d"))
	require.NoError(t, err)

	bound, err := thunk.Bind(name, d)
	require.NoError(t, err)
	require.Equal(t, 0, bound.Arity())

	return bound
}

// ============================================================================
// Async Runner Tests
// ============================================================================

func TestAsync_RunAndWait(t *testing.T) {
	t1 := newSleepy(t, "a", 40*time.Millisecond)
	t2 := newSleepy(t, "b", 10*time.Millisecond)
	require.Equal(t, AsyncNotStarted, t1.AsyncState())

	_, err := t1.AsyncRun()
	require.NoError(t, err)
	_, err = t2.AsyncRun()
	require.NoError(t, err)

	out, err := t2.AsyncWait()
	require.NoError(t, err)
	require.Equal(t, "b: 10ms", out)
	require.Equal(t, AsyncCompleted, t2.AsyncState())

	out, err = t1.AsyncWait()
	require.NoError(t, err)
	require.Equal(t, "a: 40ms", out)

	// Waiting again returns the cached result.
	out, err = t1.AsyncWait()
	require.NoError(t, err)
	require.Equal(t, "a: 40ms", out)
}

func TestAsync_RunsConcurrently(t *testing.T) {
	const n = 5

	var running, peak atomic.Int32
	work, err := Thunkify(func(i int) int {
		cur := running.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		running.Add(-1)
		return i * i
	})
	require.NoError(t, err)

	handles := make([]*Curried, n)
	for i := range handles {
		h, err := work.Bind(i)
		require.NoError(t, err)
		_, err = h.AsyncRun()
		require.NoError(t, err)
		handles[i] = h
	}

	results, err := AsyncWaitAll(handles...)
	require.NoError(t, err)
	require.Equal(t, []any{0, 1, 4, 9, 16}, results)
	require.Greater(t, peak.Load(), int32(1))
}

func TestAsync_Preconditions(t *testing.T) {
	t.Run("not a thunk", func(t *testing.T) {
		c, err := MustCurry(sleepy).Bind("a", time.Millisecond)
		require.NoError(t, err)

		_, err = c.AsyncRun()
		require.ErrorIs(t, err, ErrAsyncState)
	})

	t.Run("not saturated", func(t *testing.T) {
		c, err := Thunkify(sleepy)
		require.NoError(t, err)

		_, err = c.AsyncRun()
		require.ErrorIs(t, err, ErrAsyncState)
	})

	t.Run("run twice", func(t *testing.T) {
		c := newSleepy(t, "a", time.Millisecond)
		_, err := c.AsyncRun()
		require.NoError(t, err)

		_, err = c.AsyncRun()
		require.ErrorIs(t, err, ErrAsyncState)

		_, err = c.AsyncWait()
		require.NoError(t, err)
	})

	t.Run("wait before run", func(t *testing.T) {
		_, err := newSleepy(t, "a", time.Millisecond).AsyncWait()
		require.ErrorIs(t, err, ErrAsyncState)
	})

	t.Run("kill before run", func(t *testing.T) {
		_, err := newSleepy(t, "a", time.Millisecond).AsyncKill()
		require.ErrorIs(t, err, ErrAsyncState)
	})
}

func TestAsync_HandlesAreIndependent(t *testing.T) {
	base, err := Thunkify(sleepy)
	require.NoError(t, err)

	x, err := base.Bind("x", time.Millisecond)
	require.NoError(t, err)
	_, err = x.AsyncRun()
	require.NoError(t, err)

	// A derivation of a running handle starts with no async state.
	again, err := Curry(x)
	require.NoError(t, err)
	require.Equal(t, AsyncNotStarted, again.AsyncState())

	_, err = again.AsyncRun()
	require.NoError(t, err)

	results, err := AsyncWaitAll(x, again)
	require.NoError(t, err)
	require.Equal(t, []any{"x: 1ms", "x: 1ms"}, results)
	require.Equal(t, AsyncNotStarted, base.AsyncState())
}

func TestAsync_Kill(t *testing.T) {
	c := newSleepy(t, "slow", 10*time.Second)
	_, err := c.AsyncRun()
	require.NoError(t, err)
	require.Equal(t, AsyncRunning, c.AsyncState())

	start := time.Now()
	_, err = c.AsyncKill()
	require.ErrorIs(t, err, ErrKilled)
	require.ErrorIs(t, err, context.Canceled)
	require.Less(t, time.Since(start), 5*time.Second)
	require.Equal(t, AsyncKilled, c.AsyncState())

	_, err = c.AsyncWait()
	require.ErrorIs(t, err, ErrKilled)

	// Killing again reports the same outcome.
	_, err = c.AsyncKill()
	require.ErrorIs(t, err, ErrKilled)
}

func TestAsync_KillWaitsForExit(t *testing.T) {
	var exited atomic.Bool
	stubborn, err := Thunkify(func(ctx context.Context) error {
		// Blocking work is not interrupted; the context is only
		// observed once it returns.
		time.Sleep(30 * time.Millisecond)
		exited.Store(true)
		return ctx.Err()
	})
	require.NoError(t, err)

	_, err = stubborn.AsyncRun()
	require.NoError(t, err)

	_, err = stubborn.AsyncKill()
	require.ErrorIs(t, err, ErrKilled)
	require.True(t, exited.Load())
}

func TestAsync_KillAfterCompletion(t *testing.T) {
	c := newSleepy(t, "fast", time.Millisecond)
	_, err := c.AsyncRun()
	require.NoError(t, err)

	out, err := c.AsyncWait()
	require.NoError(t, err)
	require.Equal(t, "fast: 1ms", out)

	out, err = c.AsyncKill()
	require.NoError(t, err)
	require.Equal(t, "fast: 1ms", out)
	require.Equal(t, AsyncCompleted, c.AsyncState())
}

func TestAsync_KillWithoutContext(t *testing.T) {
	release := make(chan struct{})
	c, err := Thunkify(func() int {
		<-release
		return 1
	})
	require.NoError(t, err)

	_, err = c.AsyncRun()
	require.NoError(t, err)

	_, err = c.AsyncKill()
	require.ErrorIs(t, err, ErrAsyncKill)
	require.Equal(t, AsyncRunning, c.AsyncState())

	close(release)
	out, err := c.AsyncWait()
	require.NoError(t, err)
	require.Equal(t, 1, out)
}

func TestAsync_KillIgnored(t *testing.T) {
	release := make(chan struct{})
	c, err := Thunkify(func(ctx context.Context, x int) int {
		<-release
		return x
	})
	require.NoError(t, err)
	c, err = c.Bind(7)
	require.NoError(t, err)

	_, err = c.AsyncRun()
	require.NoError(t, err)

	type outcome struct {
		out any
		err error
	}
	killed := make(chan outcome, 1)
	go func() {
		out, err := c.AsyncKill()
		killed <- outcome{out, err}
	}()

	require.Eventually(t, func() bool {
		return c.AsyncState() == AsyncKilled
	}, time.Second, time.Millisecond)
	close(release)

	// The function never saw the cancellation, so the run completed.
	res := <-killed
	require.NoError(t, res.err)
	require.Equal(t, 7, res.out)
	require.Equal(t, AsyncCompleted, c.AsyncState())

	out, err := c.AsyncWait()
	require.NoError(t, err)
	require.Equal(t, 7, out)
}

func TestAsync_ParentContext(t *testing.T) {
	c := newSleepy(t, "slow", 10*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	_, err := c.AsyncRunContext(ctx)
	require.NoError(t, err)

	cancel()
	_, err = c.AsyncWait()
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, ErrKilled)
	require.Equal(t, AsyncCompleted, c.AsyncState())
}

func TestAsync_Errors(t *testing.T) {
	errBoom := errors.New("boom")

	t.Run("function error is re-raised", func(t *testing.T) {
		c, err := Thunkify(func() (int, error) { return 0, errBoom })
		require.NoError(t, err)
		_, err = c.AsyncRun()
		require.NoError(t, err)

		_, err = c.AsyncWait()
		require.ErrorIs(t, err, errBoom)
	})

	t.Run("panic is captured with a stack", func(t *testing.T) {
		c, err := Thunkify(func() int { panic("kaboom") })
		require.NoError(t, err)
		_, err = c.AsyncRun()
		require.NoError(t, err)

		_, err = c.AsyncWait()
		require.ErrorIs(t, err, ErrPanic)
		require.Contains(t, err.Error(), "kaboom")

		var stackErr *goerrors.Error
		require.ErrorAs(t, err, &stackErr)
		require.NotEmpty(t, stackErr.ErrorStack())
	})

	t.Run("type mismatch surfaces at wait", func(t *testing.T) {
		c, err := Thunkify(func(a int) int { return a }, WithTypeEnforcement())
		require.NoError(t, err)
		bound, err := c.Bind("1")
		require.NoError(t, err)
		_, err = bound.AsyncRun()
		require.NoError(t, err)

		_, err = bound.AsyncWait()
		require.ErrorIs(t, err, ErrTypeMismatch)
	})

	t.Run("wait all returns the first error", func(t *testing.T) {
		ok := newSleepy(t, "ok", time.Millisecond)
		bad, err := Thunkify(func() (int, error) { return 0, errBoom })
		require.NoError(t, err)

		for _, h := range []*Curried{ok, bad} {
			_, err := h.AsyncRun()
			require.NoError(t, err)
		}

		results, err := AsyncWaitAll(ok, bad)
		require.ErrorIs(t, err, errBoom)
		require.Equal(t, "ok: 1ms", results[0])
	})
}

func TestAsyncState_String(t *testing.T) {
	require.Equal(t, "not_started", AsyncNotStarted.String())
	require.Equal(t, "running", AsyncRunning.String())
	require.Equal(t, "completed", AsyncCompleted.String())
	require.Equal(t, "killed", AsyncKilled.String())
	require.Equal(t, "unknown", AsyncState(42).String())
}
