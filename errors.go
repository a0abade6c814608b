package purefunc

import (
	"errors"
	"fmt"
)

// ============================================================================
// Error Taxonomy
// ============================================================================

var (
	// ErrArity is returned when a value cannot be curried: it is not a
	// function, it is nil, or its parameter list cannot be sized (variadic).
	// Flip on a callable with fewer than two open parameters also reports it.
	ErrArity = errors.New("arity error")

	// ErrArgumentCount is returned when a call would bind more parameters
	// than the function declares, names an unknown parameter, or names a
	// parameter that was already filled positionally.
	ErrArgumentCount = errors.New("argument count error")

	// ErrAsyncState is returned when async operations are used out of order.
	ErrAsyncState = errors.New("async state error")

	// ErrAsyncKill is returned when cancellation cannot be delivered.
	ErrAsyncKill = errors.New("async kill error")

	// ErrKilled is reported by AsyncWait and AsyncKill once a handle has
	// been killed.
	ErrKilled = errors.New("killed")

	// ErrTypeMismatch is returned at invocation when an argument does not
	// fit its parameter type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrPanic wraps a panic raised inside an async run.
	ErrPanic = errors.New("panic in async run")
)

// Error is the concrete error produced by the curry engine. Kind is one of
// the sentinels above, Op names the operation that failed and Fn names the
// curried function.
type Error struct {
	Kind  error
	Op    string
	Fn    string
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	prefix := e.Kind.Error()
	if e.Fn != "" {
		prefix = fmt.Sprintf("%s (%s %s)", prefix, e.Op, e.Fn)
	} else if e.Op != "" {
		prefix = fmt.Sprintf("%s (%s)", prefix, e.Op)
	}
	switch {
	case e.Msg != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", prefix, e.Msg, e.Cause)
	case e.Msg != "":
		return prefix + ": " + e.Msg
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", prefix, e.Cause)
	}
	return prefix
}

// Unwrap exposes both the sentinel kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e == nil {
		return nil
	}
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func newError(kind error, op, fn, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Fn: fn, Msg: fmt.Sprintf(format, args...)}
}
