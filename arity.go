package purefunc

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// param describes one curryable parameter of a wrapped function.
type param struct {
	name   string
	typ    reflect.Type
	def    reflect.Value
	hasDef bool
}

// signature is computed once when a function is wrapped and never changes.
type signature struct {
	fn   reflect.Value
	name string

	// withCtx is set when the first parameter is a context.Context. The
	// engine supplies that argument itself.
	withCtx bool

	params []param
	index  map[string]int

	// arity is the number of parameters without a default.
	arity int
}

// Arity reports how many more arguments fn needs before it can be invoked.
// For a *Curried it is the remaining arity. For a plain function it is the
// number of parameters, excluding a leading context.Context and any
// parameter given a default through opts.
func Arity(fn any, opts ...Option) (int, error) {
	if c, ok := fn.(*Curried); ok {
		return c.Arity(), nil
	}
	sig, err := inspect("arity", fn, newConfig(opts))
	if err != nil {
		return 0, err
	}
	return sig.arity, nil
}

func inspect(op string, fn any, cfg *config) (*signature, error) {
	if fn == nil {
		return nil, newError(ErrArity, op, cfg.name, "nil is not a function")
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return nil, newError(ErrArity, op, cfg.name,
			"%T is not a function and has no arity", fn)
	}
	if v.IsNil() {
		return nil, newError(ErrArity, op, cfg.name, "nil %T has no arity", fn)
	}

	name := cfg.name
	if name == "" {
		name = funcName(v)
	}

	t := v.Type()
	if t.IsVariadic() {
		return nil, newError(ErrArity, op, name,
			"variadic parameters have no fixed arity")
	}

	sig := &signature{fn: v, name: name, index: make(map[string]int)}
	first := 0
	if t.NumIn() > 0 && t.In(0) == contextType {
		sig.withCtx = true
		first = 1
	}

	n := t.NumIn() - first
	if cfg.params != nil && len(cfg.params) != n {
		return nil, newError(ErrArity, op, name,
			"%d parameter names given for %d parameters",
			len(cfg.params), n)
	}

	sig.params = make([]param, n)
	for i := 0; i < n; i++ {
		pname := fmt.Sprintf("arg%d", i)
		if cfg.params != nil {
			pname = cfg.params[i]
		}
		if pname == "" {
			return nil, newError(ErrArity, op, name,
				"parameter %d has an empty name", i)
		}
		if _, dup := sig.index[pname]; dup {
			return nil, newError(ErrArity, op, name,
				"duplicate parameter name %q", pname)
		}
		sig.params[i] = param{name: pname, typ: t.In(first + i)}
		sig.index[pname] = i
	}

	for _, d := range cfg.defaults {
		i, ok := sig.index[d.name]
		if !ok {
			return nil, newError(ErrArity, op, name,
				"default given for unknown parameter %q", d.name)
		}
		p := &sig.params[i]
		dv, ok := coerce(d.value, p.typ)
		if !ok {
			return nil, &Error{
				Kind: ErrTypeMismatch, Op: op, Fn: name,
				Msg: fmt.Sprintf("default for parameter %q expects %s, got %s",
					p.name, p.typ, typeName(d.value)),
			}
		}
		p.def, p.hasDef = dv, true
	}

	seenDefault := false
	for _, p := range sig.params {
		switch {
		case p.hasDef:
			seenDefault = true
		case seenDefault:
			return nil, newError(ErrArity, op, name,
				"parameter %q without a default follows a defaulted parameter",
				p.name)
		default:
			sig.arity++
		}
	}

	return sig, nil
}

// funcName returns the short runtime name of a function value, e.g.
// "purefunc.Add" or "main.main.func1".
func funcName(v reflect.Value) string {
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return v.Type().String()
	}
	name := rf.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
