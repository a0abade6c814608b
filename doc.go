/*
Package purefunc provides currying, partial application and deferred
execution for ordinary Go functions.

# Overview

Purefunc wraps any non-variadic function in a *Curried. Arguments can be
supplied in any number of calls, by position or by name, and the function
runs once every mandatory parameter is bound. Every call returns a new
value: a partially applied function can be branched as often as needed
without the branches seeing each other's arguments.

# Quick Example

	list3 := purefunc.MustCurry(func(a, b, c int) []int {
	    return []int{a, b, c}
	})

	x, _ := list3.Call(1, 2)
	x.(*purefunc.Curried).Call(3) //=> [1 2 3]
	x.(*purefunc.Curried).Call(4) //=> [1 2 4]

# Core Concepts

Arity: the number of mandatory arguments still required. It is derived
from the function's signature once, when the function is wrapped. A
leading context.Context parameter is not counted; the engine supplies it.

	purefunc.Arity(strings.Repeat) //=> 2, nil

Named arguments: name the parameters with WithParams and bind them with
Named. Positional arguments fill the remaining parameters in order.

	greet := purefunc.MustCurry(greeting, purefunc.WithParams("greeting", "name"))
	greet.Call(purefunc.Named("name", "Ada"), "Hello")

Defaults: WithDefault makes a trailing parameter optional. It can still be
supplied, positionally or by name.

Flip: swaps the next two positional arguments. Flipping twice cancels out.

	purefunc.MustCurry(concat).Flip() // concat(b, a, ...)

Thunks: a thunk does not run when its last argument arrives. It runs when
called with no arguments, or in the background with AsyncRun.

	t := add.Thunkify().MustCall(1, 2).(*purefunc.Curried)
	t.AsyncRun()
	sum, err := t.AsyncWait()

Type enforcement: by default numbers convert between kinds when no
information is lost. CurryTyped and TypeEnforce only accept values that
are assignable to the parameter type.

# Async Execution

AsyncRun starts a saturated thunk on its own goroutine. AsyncWait joins it
and returns the function's result and error. AsyncKill cancels the context
passed to the function and waits for it to exit; functions that do not
take a context.Context cannot be killed.

# Errors

All errors returned by the engine are *Error values whose Kind is one of
ErrArity, ErrArgumentCount, ErrAsyncState, ErrAsyncKill, ErrKilled,
ErrTypeMismatch or ErrPanic. Use errors.Is to test for a kind. Errors
returned by the wrapped function itself pass through unchanged.

# Logging

The package logs through btclog under the PFNC subsystem. Logging is off
until UseLogger is called.

# Related Packages

  - datautil: path access, grouping, folding and arithmetic helpers, all
    usable directly or through the curry engine.
  - datafile: CSV and JSON readers and writers for the data shapes that
    datautil works on.
  - cmd/purefunc: a command line tool converting CSV and JSON files and
    querying them by path.

# Package Import

	import pf "github.com/Pure-Company/purefunc"

	// Or full import
	import "github.com/Pure-Company/purefunc"
*/
package purefunc
