package purefunc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// ============================================================================
// Error Tests
// ============================================================================

func TestError(t *testing.T) {
	err := &Error{
		Kind:  ErrKilled,
		Op:    "asyncKill",
		Fn:    "fetch",
		Cause: context.Canceled,
	}
	require.Equal(t, "killed (asyncKill fetch): context canceled", err.Error())
	require.ErrorIs(t, err, ErrKilled)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, []error{ErrKilled, context.Canceled}, err.Unwrap())

	plain := newError(ErrArity, "flip", "", "need %d", 2)
	require.Equal(t, "arity error (flip): need 2", plain.Error())
	require.NotErrorIs(t, plain, context.Canceled)
}

func TestError_Nil(t *testing.T) {
	var err *Error
	require.Empty(t, err.Error())
	require.Nil(t, err.Unwrap())
	require.False(t, errors.Is(err, ErrKilled))
}
