package purefunc

import (
	"context"
	"fmt"
	"reflect"
)

const (
	slotOpen  = -1
	slotNamed = -2
)

// layout maps every parameter to its source: slotNamed, slotOpen or the
// index of the positional argument that fills it. Positional arguments fill
// parameters in order, skipping those bound by name. It also returns the
// number of open mandatory parameters and the positional arguments left
// over once every parameter is filled.
func (s *signature) layout(pos []any, named map[string]any) ([]int, int, int) {
	slots := make([]int, len(s.params))
	next, remaining := 0, 0
	for i, p := range s.params {
		switch _, ok := named[p.name]; {
		case ok:
			slots[i] = slotNamed
		case next < len(pos):
			slots[i] = next
			next++
		default:
			slots[i] = slotOpen
			if !p.hasDef {
				remaining++
			}
		}
	}
	return slots, remaining, len(pos) - next
}

// invoke resolves the bound arguments, applies flips and coercion and calls
// the wrapped function.
func (c *Curried) invoke(ctx context.Context, op string) (any, error) {
	sig := c.sig
	if ctx == nil {
		ctx = context.Background()
	}

	pos := c.unflip()
	slots, remaining, _ := sig.layout(pos, c.named)
	if remaining != 0 {
		return nil, newError(ErrArgumentCount, op, sig.name,
			"%d arguments still required", remaining)
	}

	in := make([]reflect.Value, 0, len(sig.params)+1)
	if sig.withCtx {
		in = append(in, reflect.ValueOf(ctx))
	}
	for i, p := range sig.params {
		var (
			arg   any
			bound = true
		)
		switch slots[i] {
		case slotNamed:
			arg = c.named[p.name]
		case slotOpen:
			bound = false
		default:
			arg = pos[slots[i]]
		}
		if !bound {
			in = append(in, p.def)
			continue
		}

		var (
			v  reflect.Value
			ok bool
		)
		if c.typed {
			v, ok = assignStrict(arg, p.typ)
		} else {
			v, ok = coerce(arg, p.typ)
		}
		if !ok {
			return nil, &Error{
				Kind: ErrTypeMismatch, Op: op, Fn: sig.name,
				Msg: fmt.Sprintf("parameter %q expects %s, got %s",
					p.name, p.typ, typeName(arg)),
			}
		}
		in = append(in, v)
	}

	log.Tracef("Invoking %s with %d arguments (op=%s)", sig.name, len(in), op)

	return unpack(sig.fn.Call(in))
}

// unflip applies the recorded flips to a copy of the positional arguments.
// Newest flips are unwound first. A flip whose slots were filled by name
// instead of by position has nothing to swap and is skipped.
func (c *Curried) unflip() []any {
	if len(c.flips) == 0 {
		return c.pos
	}
	args := make([]any, len(c.pos))
	copy(args, c.pos)
	for _, off := range c.flips {
		if off+1 < len(args) {
			args[off], args[off+1] = args[off+1], args[off]
		}
	}
	return args
}

// unpack turns reflect results into the engine's (value, error) convention.
func unpack(out []reflect.Value) (any, error) {
	var err error
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if e := out[n-1]; !e.IsNil() {
			err = e.Interface().(error)
		}
		out = out[:n-1]
	}

	switch len(out) {
	case 0:
		return nil, err
	case 1:
		return out[0].Interface(), err
	}
	results := make([]any, len(out))
	for i, v := range out {
		results[i] = v.Interface()
	}
	return results, err
}

// coerce converts v to t the lenient way: assignable values pass through,
// numbers convert between numeric kinds when no information is lost, and
// nil becomes the zero value of nilable types.
func coerce(v any, t reflect.Type) (reflect.Value, bool) {
	if rv, ok := assignStrict(v, t); ok {
		return rv, true
	}
	if v == nil {
		return reflect.Value{}, false
	}

	rv := reflect.ValueOf(v)
	if !isNumeric(rv.Kind()) || !isNumeric(t.Kind()) || !rv.CanConvert(t) {
		return reflect.Value{}, false
	}
	if isSigned(rv.Kind()) && rv.Int() < 0 && isUnsigned(t.Kind()) {
		return reflect.Value{}, false
	}
	cv := rv.Convert(t)
	if isUnsigned(rv.Kind()) && isSigned(t.Kind()) && cv.Int() < 0 {
		return reflect.Value{}, false
	}
	if !cv.Convert(rv.Type()).Equal(rv) {
		return reflect.Value{}, false
	}
	return cv, true
}

// assignStrict only accepts values whose dynamic type is assignable to t.
func assignStrict(v any, t reflect.Type) (reflect.Value, bool) {
	if v == nil {
		if isNilable(t.Kind()) {
			return reflect.Zero(t), true
		}
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(t) {
		return reflect.Value{}, false
	}
	if t.Kind() == reflect.Interface {
		// Keep the interface type so reflect.Call sees an exact match.
		nv := reflect.New(t).Elem()
		nv.Set(rv)
		return nv, true
	}
	return rv, true
}

func isNilable(k reflect.Kind) bool {
	switch k {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
		reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return true
	}
	return false
}

func isSigned(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUnsigned(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isNumeric(k reflect.Kind) bool {
	return isSigned(k) || isUnsigned(k) ||
		k == reflect.Float32 || k == reflect.Float64
}
