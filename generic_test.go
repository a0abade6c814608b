package purefunc

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurryN(t *testing.T) {
	sub := func(a, b int) int { return a - b }
	require.Equal(t, 2, Curry2(sub)(5)(3))
	require.Equal(t, 2, Uncurry2(Curry2(sub))(5, 3))
	require.Equal(t, -2, Flip2(sub)(5, 3))

	join3 := func(a string, b int, c bool) string {
		return a + strconv.Itoa(b) + strconv.FormatBool(c)
	}
	require.Equal(t, "x1true", Curry3(join3)("x")(1)(true))

	sum4 := func(a, b, c, d int) int { return a + b + c + d }
	inc := Curry4(sum4)(0)(0)(1)
	require.Equal(t, 2, inc(1))
	require.Equal(t, 11, inc(10))
}

func TestThunk2(t *testing.T) {
	calls := 0
	thunk := Thunk2(func(a, b int) int {
		calls++
		return a * b
	}, 3, 4)
	require.Zero(t, calls)
	require.Equal(t, 12, thunk())
	require.Equal(t, 1, calls)
}
