package purefunc

// ============================================================================
// Typed Currying
// ============================================================================
//
// The helpers below curry functions of a fixed arity at compile time. They
// carry none of the bookkeeping of Curried and are the cheaper choice when
// the arity is known and named arguments are not needed.

// Curry2 takes a two argument function and returns a function that accepts
// the first argument and then returns a function that accepts the second.
func Curry2[A, B, R any](f func(A, B) R) func(A) func(B) R {
	return func(a A) func(B) R {
		return func(b B) R {
			return f(a, b)
		}
	}
}

// Curry3 is Curry2 for three argument functions.
func Curry3[A, B, C, R any](f func(A, B, C) R) func(A) func(B) func(C) R {
	return func(a A) func(B) func(C) R {
		return func(b B) func(C) R {
			return func(c C) R {
				return f(a, b, c)
			}
		}
	}
}

// Curry4 is Curry2 for four argument functions.
func Curry4[A, B, C, D, R any](
	f func(A, B, C, D) R) func(A) func(B) func(C) func(D) R {

	return func(a A) func(B) func(C) func(D) R {
		return func(b B) func(C) func(D) R {
			return func(c C) func(D) R {
				return func(d D) R {
					return f(a, b, c, d)
				}
			}
		}
	}
}

// Uncurry2 inverts Curry2.
func Uncurry2[A, B, R any](f func(A) func(B) R) func(A, B) R {
	return func(a A, b B) R {
		return f(a)(b)
	}
}

// Flip2 swaps the arguments of a two argument function.
func Flip2[A, B, R any](f func(A, B) R) func(B, A) R {
	return func(b B, a A) R {
		return f(a, b)
	}
}

// Thunk2 binds both arguments of f and defers the call.
func Thunk2[A, B, R any](f func(A, B) R, a A, b B) func() R {
	return func() R {
		return f(a, b)
	}
}
