package datautil

import (
	"fmt"

	"github.com/Pure-Company/purefunc"
)

// curryN curries fn and checks that it takes exactly n arguments.
func curryN(op string, fn any, n int) (*purefunc.Curried, error) {
	c, err := purefunc.Curry(fn)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotCallable, op, err)
	}
	if c.Arity() != n {
		return nil, fmt.Errorf("%w: %s needs a function with an arity of "+
			"%d, have %d", ErrNotCallable, op, n, c.Arity())
	}
	return c, nil
}

// Accumulate folds data with fn, starting from initial, and returns every
// intermediate accumulator. fn may be any function of two arguments, or a
// *purefunc.Curried with an arity of 2.
//
// Example:
//
//	Accumulate(func(acc, x int) int { return acc + x }, 0, []any{1, 2, 3})
//	//=> [1 3 6], nil
func Accumulate(fn any, initial any, data []any) ([]any, error) {
	c, err := curryN("accumulate", fn, 2)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: accumulate", ErrEmptyData)
	}

	acc := initial
	out := make([]any, 0, len(data))
	for _, item := range data {
		acc, err = c.Call(acc, item)
		if err != nil {
			return nil, err
		}
		out = append(out, acc)
	}
	return out, nil
}

// Reduce is Accumulate that only returns the final accumulator.
func Reduce(fn any, initial any, data []any) (any, error) {
	steps, err := Accumulate(fn, initial, data)
	if err != nil {
		return nil, err
	}
	return steps[len(steps)-1], nil
}

// Map applies the unary fn to every element of data.
func Map(fn any, data []any) ([]any, error) {
	c, err := curryN("map", fn, 1)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: map", ErrEmptyData)
	}

	out := make([]any, len(data))
	for i, item := range data {
		if out[i], err = c.Call(item); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// MapDict applies the unary fn to every value of data.
func MapDict(fn any, data map[string]any) (map[string]any, error) {
	c, err := curryN("mapDict", fn, 1)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: mapDict", ErrEmptyData)
	}

	out := make(map[string]any, len(data))
	for k, v := range data {
		if out[k], err = c.Call(v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Pipe passes data through fns in order. The first function may take any
// number of arguments: when it needs more than one, data is bound as its
// first argument and the partial result flows on. Every other function must
// be unary.
//
// Example:
//
//	Pipe([]any{strings.TrimSpace, strings.ToUpper}, "  hi ") //=> "HI", nil
func Pipe(fns []any, data any) (any, error) {
	if len(fns) == 0 {
		return nil, fmt.Errorf("%w: pipe needs at least one function",
			ErrEmptyData)
	}

	steps := make([]*purefunc.Curried, len(fns))
	for i, fn := range fns {
		c, err := purefunc.Curry(fn)
		if err != nil {
			return nil, fmt.Errorf("%w: pipe step %d: %w",
				ErrNotCallable, i, err)
		}
		switch {
		case i == 0 && c.Arity() == 0:
			return nil, fmt.Errorf("%w: the first function of a pipe "+
				"must take at least one argument", ErrNotCallable)
		case i > 0 && c.Arity() != 1:
			return nil, fmt.Errorf("%w: pipe step %d must be unary, "+
				"have arity %d", ErrNotCallable, i, c.Arity())
		}
		steps[i] = c
	}

	for i, c := range steps {
		out, err := c.Call(data)
		if err != nil {
			return nil, fmt.Errorf("pipe step %d (%s): %w", i,
				c.Name(), err)
		}
		data = out
	}
	return data, nil
}
