package purefunc

// CurryTyped curries fn with type enforcement: when the function is finally
// invoked every bound argument must be assignable to its parameter type.
// Numbers are not converted between kinds as they are by Curry.
//
// Example:
//
//	add, _ := CurryTyped(func(a, b int) int { return a + b })
//	add.MustCall(1).(*Curried).Call(1)   //=> 2, nil
//	add.MustCall(1).(*Curried).Call(1.5) //=> nil, ErrTypeMismatch
func CurryTyped(fn any, opts ...Option) (*Curried, error) {
	c, err := Curry(fn, opts...)
	if err != nil {
		return nil, err
	}
	return c.TypeEnforce(), nil
}

// TypeEnforce returns a copy of c with type enforcement switched on.
// Enforcement only applies at invocation, never while arguments are bound.
func (c *Curried) TypeEnforce() *Curried {
	cp := c.derive()
	cp.typed = true
	return cp
}
