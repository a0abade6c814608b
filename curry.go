package purefunc

import (
	"context"
	"fmt"
	"sync"
)

// ============================================================================
// Curried Callables
// ============================================================================

// Curried is a partially applied function. Each call with arguments returns
// a new Curried carrying the merged argument set. Once every mandatory
// parameter is bound the wrapped function runs: immediately, or for a thunk
// only on a call with no arguments.
//
// Example:
//
//	list3 := MustCurry(func(a, b, c int) []int { return []int{a, b, c} })
//
//	x, _ := list3.Call(1, 2)
//	x.(*Curried).Call(3) //=> [1 2 3]
//	x.(*Curried).Call(4) //=> [1 2 4]
type Curried struct {
	sig *signature

	pos   []any
	named map[string]any

	// flips holds positional offsets recorded by Flip, newest first.
	flips []int

	remaining int
	thunk     bool
	typed     bool

	// mu guards async, the only state that changes after construction.
	mu    sync.Mutex
	async *asyncHandle
}

// NamedArg binds a value to a parameter by name.
type NamedArg struct {
	Name  string
	Value any
}

// Named returns a NamedArg for use in Call and Bind.
func Named(name string, value any) NamedArg {
	return NamedArg{Name: name, Value: value}
}

// Curry wraps fn for partial application. Currying a *Curried returns a copy
// that keeps its bound arguments and modifiers.
func Curry(fn any, opts ...Option) (*Curried, error) {
	cfg := newConfig(opts)
	if c, ok := fn.(*Curried); ok {
		cp := c.derive()
		cp.typed = cp.typed || cfg.typed
		return cp, nil
	}

	sig, err := inspect("curry", fn, cfg)
	if err != nil {
		return nil, err
	}

	log.Debugf("Curried %s: %d parameters, arity %d, context=%v",
		sig.name, len(sig.params), sig.arity, sig.withCtx)

	return &Curried{
		sig:       sig,
		remaining: sig.arity,
		typed:     cfg.typed,
	}, nil
}

// MustCurry is like Curry but panics on error. It is meant for package level
// variables built from known functions.
func MustCurry(fn any, opts ...Option) *Curried {
	c, err := Curry(fn, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Thunkify curries fn and marks it as a thunk.
func Thunkify(fn any, opts ...Option) (*Curried, error) {
	c, err := Curry(fn, opts...)
	if err != nil {
		return nil, err
	}
	return c.Thunkify(), nil
}

// Flip curries fn and swaps its first two positional arguments.
func Flip(fn any, opts ...Option) (*Curried, error) {
	c, err := Curry(fn, opts...)
	if err != nil {
		return nil, err
	}
	return c.Flip()
}

// Call binds args and returns either the wrapped function's result, when
// this call saturates it, or the new *Curried. Arguments of type NamedArg
// bind by name; all others bind by position.
func (c *Curried) Call(args ...any) (any, error) {
	return c.CallContext(context.Background(), args...)
}

// CallContext is Call with a context that is passed to a function whose
// first parameter is a context.Context.
func (c *Curried) CallContext(ctx context.Context, args ...any) (any, error) {
	next, err := c.bind("call", args)
	if err != nil {
		return nil, err
	}
	if next.remaining == 0 && (!c.thunk || len(args) == 0) {
		return next.invoke(ctx, "call")
	}
	return next, nil
}

// Bind is like Call but never invokes the wrapped function.
func (c *Curried) Bind(args ...any) (*Curried, error) {
	return c.bind("bind", args)
}

// MustCall calls c and panics on error.
func (c *Curried) MustCall(args ...any) any {
	out, err := c.Call(args...)
	if err != nil {
		panic(err)
	}
	return out
}

// Thunkify returns a copy of c whose invocation is deferred: once saturated
// it only runs when called with no arguments.
func (c *Curried) Thunkify() *Curried {
	cp := c.derive()
	cp.thunk = true
	return cp
}

// Flip returns a copy of c that swaps the next two positional arguments at
// invocation. Flipping twice before binding more arguments cancels out.
func (c *Curried) Flip() (*Curried, error) {
	if c.remaining < 2 {
		return nil, newError(ErrArity, "flip", c.sig.name,
			"flip needs an arity of at least 2, have %d", c.remaining)
	}
	cp := c.derive()
	cp.flips = make([]int, 0, len(c.flips)+1)
	cp.flips = append(cp.flips, len(c.pos))
	cp.flips = append(cp.flips, c.flips...)
	return cp, nil
}

// Thunk returns the saturated callable as a ThunkFunc.
func (c *Curried) Thunk() (ThunkFunc, error) {
	if c.remaining != 0 {
		return nil, newError(ErrArity, "thunk", c.sig.name,
			"thunk needs an arity of 0, have %d", c.remaining)
	}
	return func() (any, error) {
		return c.invoke(context.Background(), "thunk")
	}, nil
}

// Arity returns the number of mandatory arguments still required.
func (c *Curried) Arity() int {
	return c.remaining
}

// DeclaredArity returns the number of mandatory parameters of the wrapped
// function.
func (c *Curried) DeclaredArity() int {
	return c.sig.arity
}

// Name returns the display name of the wrapped function.
func (c *Curried) Name() string {
	return c.sig.name
}

// Params returns the parameter names in declaration order.
func (c *Curried) Params() []string {
	names := make([]string, len(c.sig.params))
	for i, p := range c.sig.params {
		names[i] = p.name
	}
	return names
}

// IsThunk reports whether invocation is deferred.
func (c *Curried) IsThunk() bool {
	return c.thunk
}

// IsTypeEnforced reports whether arguments are checked strictly.
func (c *Curried) IsTypeEnforced() bool {
	return c.typed
}

func (c *Curried) String() string {
	kind := "curried"
	if c.thunk {
		kind = "thunk"
	}
	return fmt.Sprintf("<%s %s arity=%d/%d>", kind, c.sig.name,
		c.remaining, c.sig.arity)
}

// derive copies the immutable state of c. The async handle is not copied.
func (c *Curried) derive() *Curried {
	return &Curried{
		sig:       c.sig,
		pos:       c.pos,
		named:     c.named,
		flips:     c.flips,
		remaining: c.remaining,
		thunk:     c.thunk,
		typed:     c.typed,
	}
}

// bind merges args into a new Curried, enforcing the arity invariants.
func (c *Curried) bind(op string, args []any) (*Curried, error) {
	sig := c.sig

	var (
		pos   []any
		named map[string]any
	)
	for _, a := range args {
		na, ok := a.(NamedArg)
		if !ok {
			pos = append(pos, a)
			continue
		}
		if _, known := sig.index[na.Name]; !known {
			return nil, newError(ErrArgumentCount, op, sig.name,
				"unknown parameter %q", na.Name)
		}
		if named == nil {
			named = make(map[string]any)
		}
		named[na.Name] = na.Value
	}

	if len(named) > 0 {
		slots, _, _ := sig.layout(c.pos, c.named)
		for name := range named {
			if slots[sig.index[name]] >= 0 {
				return nil, newError(ErrArgumentCount, op, sig.name,
					"parameter %q is already bound positionally", name)
			}
		}
	}

	next := c.derive()
	if len(pos) > 0 {
		next.pos = make([]any, 0, len(c.pos)+len(pos))
		next.pos = append(next.pos, c.pos...)
		next.pos = append(next.pos, pos...)
	}
	if len(named) > 0 {
		next.named = make(map[string]any, len(c.named)+len(named))
		for k, v := range c.named {
			next.named[k] = v
		}
		for k, v := range named {
			next.named[k] = v
		}
	}

	_, remaining, extra := sig.layout(next.pos, next.named)
	if extra > 0 {
		return nil, newError(ErrArgumentCount, op, sig.name,
			"too many arguments supplied: %d positional and %d named "+
				"for %d parameters", len(next.pos), len(next.named),
			len(sig.params))
	}
	next.remaining = remaining

	return next, nil
}
