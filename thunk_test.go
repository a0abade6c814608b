package purefunc

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// flaky fails until it has been called failures+1 times.
func flaky(failures int) (ThunkFunc, *int) {
	calls := 0
	return func() (any, error) {
		calls++
		if calls <= failures {
			return nil, errors.New("not yet")
		}
		return calls, nil
	}, &calls
}

// ============================================================================
// ThunkFunc Tests
// ============================================================================

func TestThunkFunc_Retry(t *testing.T) {
	thunk, calls := flaky(2)

	out, err := thunk.Retry(3).Run()
	require.NoError(t, err)
	require.Equal(t, 3, out)
	require.Equal(t, 3, *calls)

	thunk, calls = flaky(5)
	_, err = thunk.Retry(2).Run()
	require.EqualError(t, err, "not yet")
	require.Equal(t, 3, *calls)
}

func TestThunkFunc_Map(t *testing.T) {
	bound, err := MustCurry(func(a, b int) int { return a * b }).Bind(6, 7)
	require.NoError(t, err)

	thunk, err := bound.Thunk()
	require.NoError(t, err)

	out, err := thunk.Map(func(v any) any { return v.(int) + 1 }).Run()
	require.NoError(t, err)
	require.Equal(t, 43, out)

	failing, _ := flaky(1)
	mapped := failing.Map(func(any) any {
		t.Fatal("map called on error")
		return nil
	})
	_, err = mapped.Run()
	require.Error(t, err)
}

func TestThunkFunc_Tap(t *testing.T) {
	var seen []any
	thunk := ThunkFunc(func() (any, error) { return "x", nil }).
		Tap(func(v any, err error) { seen = append(seen, v, err) })

	out, err := thunk.Run()
	require.NoError(t, err)
	require.Equal(t, "x", out)
	require.Equal(t, []any{"x", nil}, seen)
}

func TestThunkFunc_WithTimeout(t *testing.T) {
	slow := ThunkFunc(func() (any, error) {
		time.Sleep(200 * time.Millisecond)
		return "late", nil
	})
	_, err := slow.WithTimeout(10 * time.Millisecond).Run()
	require.ErrorIs(t, err, ErrThunkTimeout)

	fast := ThunkFunc(func() (any, error) { return "early", nil })
	out, err := fast.WithTimeout(time.Second).Run()
	require.NoError(t, err)
	require.Equal(t, "early", out)
}

// ============================================================================
// Timer Tests
// ============================================================================

func TestTimer(t *testing.T) {
	calls := 0
	timer, err := NewTimer(func() int {
		calls++
		time.Sleep(time.Millisecond)
		return calls
	})
	require.NoError(t, err)

	out, err := timer.Run()
	require.NoError(t, err)
	require.Equal(t, 1, out)

	stats, err := timer.Repeat(3)
	require.NoError(t, err)
	require.EqualValues(t, 4, stats.Runs)
	require.Zero(t, stats.Errors)
	require.GreaterOrEqual(t, stats.Min, time.Millisecond)
	require.GreaterOrEqual(t, stats.Max, stats.Min)
	require.GreaterOrEqual(t, stats.Mean(), stats.Min)
	require.LessOrEqual(t, stats.Mean(), stats.Max)
}

func TestTimer_Thunk(t *testing.T) {
	add, err := Thunkify(func(a, b int) int { return a + b })
	require.NoError(t, err)
	bound, err := add.Bind(2, 3)
	require.NoError(t, err)

	timer, err := NewTimer(bound)
	require.NoError(t, err)

	out, err := timer.Run()
	require.NoError(t, err)
	require.Equal(t, 5, out)
}

func TestTimer_Errors(t *testing.T) {
	_, err := NewTimer(func(a int) int { return a })
	require.ErrorIs(t, err, ErrArity)

	_, err = NewTimer("nope")
	require.ErrorIs(t, err, ErrArity)

	errBoom := errors.New("boom")
	timer, err := NewTimer(func() error { return errBoom })
	require.NoError(t, err)

	stats, err := timer.Repeat(5)
	require.ErrorIs(t, err, errBoom)
	require.EqualValues(t, 1, stats.Runs)
	require.EqualValues(t, 1, stats.Errors)

	require.Zero(t, TimerStats{}.Mean())
}
