package datautil

import (
	"errors"
	"strings"
	"testing"

	"github.com/Pure-Company/purefunc"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Fold Tests
// ============================================================================

func TestAccumulate(t *testing.T) {
	sum := func(acc, x int) int { return acc + x }

	got, err := Accumulate(sum, 0, []any{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, []any{1, 3, 6}, got)

	_, err = Accumulate(sum, 0, nil)
	require.ErrorIs(t, err, ErrEmptyData)

	_, err = Accumulate(func(x int) int { return x }, 0, []any{1})
	require.ErrorIs(t, err, ErrNotCallable)

	_, err = Accumulate("sum", 0, []any{1})
	require.ErrorIs(t, err, ErrNotCallable)
	require.ErrorIs(t, err, purefunc.ErrArity)

	// Argument errors from the curry engine surface unchanged.
	_, err = Accumulate(sum, 0, []any{"x"})
	require.ErrorIs(t, err, purefunc.ErrTypeMismatch)
}

func TestReduce(t *testing.T) {
	got, err := Reduce(func(acc []string, s string) []string {
		return append(acc, strings.ToUpper(s))
	}, []string{}, []any{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, got)

	// A curried function with two open parameters works too.
	between := purefunc.MustCurry(func(sep, a, b string) string {
		return a + sep + b
	}).MustCall("-").(*purefunc.Curried)

	got, err = Reduce(between, "x", []any{"y", "z"})
	require.NoError(t, err)
	require.Equal(t, "x-y-z", got)

	errBoom := errors.New("boom")
	_, err = Reduce(func(a, b int) (int, error) {
		return 0, errBoom
	}, 0, []any{1})
	require.ErrorIs(t, err, errBoom)
}

func TestMap(t *testing.T) {
	got, err := Map(func(x int) int { return x * x }, []any{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, []any{1, 4, 9}, got)

	_, err = Map(func(x int) int { return x }, []any{})
	require.ErrorIs(t, err, ErrEmptyData)

	_, err = Map(func(a, b int) int { return a }, []any{1})
	require.ErrorIs(t, err, ErrNotCallable)
}

func TestMapDict(t *testing.T) {
	got, err := MapDict(strings.ToUpper, map[string]any{"a": "x", "b": "y"})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"a": "X", "b": "Y"}, got)

	_, err = MapDict(strings.ToUpper, nil)
	require.ErrorIs(t, err, ErrEmptyData)
}

func TestPipe(t *testing.T) {
	got, err := Pipe([]any{strings.TrimSpace, strings.ToUpper}, "  hi ")
	require.NoError(t, err)
	require.Equal(t, "HI", got)

	// A multi-argument first step is bound with data and flows on as a
	// curried value.
	apply := func(c *purefunc.Curried) (any, error) { return c.Call("b") }
	got, err = Pipe([]any{
		func(a, b string) string { return a + b },
		apply,
	}, "a")
	require.NoError(t, err)
	require.Equal(t, "ab", got)

	_, err = Pipe(nil, 1)
	require.ErrorIs(t, err, ErrEmptyData)

	_, err = Pipe([]any{func() int { return 1 }}, 1)
	require.ErrorIs(t, err, ErrNotCallable)

	_, err = Pipe([]any{strings.ToUpper, strings.Repeat}, "a")
	require.ErrorIs(t, err, ErrNotCallable)

	_, err = Pipe([]any{strings.ToUpper, 3}, "a")
	require.ErrorIs(t, err, ErrNotCallable)

	_, err = Pipe([]any{strings.ToUpper}, 42)
	require.ErrorIs(t, err, purefunc.ErrTypeMismatch)
	require.Contains(t, err.Error(), "pipe step 0")
}
