package purefunc

import (
	"errors"
	"time"
)

// ErrThunkTimeout is returned by ThunkFunc.WithTimeout.
var ErrThunkTimeout = errors.New("thunk timeout")

// ThunkFunc is a deferred computation. It is what a saturated Curried
// becomes through Curried.Thunk and carries combinators for retrying,
// observing and bounding the computation.
//
// Example:
//
//	bound := MustCurry(load).Thunkify().MustCall("config.json").(*Curried)
//	fetch, _ := bound.Thunk()
//	cfg, err := fetch.Retry(3).WithTimeout(time.Second).Run()
type ThunkFunc func() (any, error)

// Run evaluates the thunk.
func (f ThunkFunc) Run() (any, error) {
	return f()
}

// Map transforms the result of a successful evaluation.
func (f ThunkFunc) Map(transform func(any) any) ThunkFunc {
	return func() (any, error) {
		out, err := f()
		if err != nil {
			return out, err
		}
		return transform(out), nil
	}
}

// Retry re-evaluates on error up to maxRetries times.
func (f ThunkFunc) Retry(maxRetries int) ThunkFunc {
	return func() (any, error) {
		var lastErr error
		for i := 0; i <= maxRetries; i++ {
			out, err := f()
			if err == nil {
				return out, nil
			}
			lastErr = err
			log.Debugf("Thunk attempt %d/%d failed: %v", i+1,
				maxRetries+1, err)
		}
		return nil, lastErr
	}
}

// Tap allows side effects without changing the result.
func (f ThunkFunc) Tap(fn func(any, error)) ThunkFunc {
	return func() (any, error) {
		out, err := f()
		fn(out, err)
		return out, err
	}
}

// WithTimeout bounds how long Run waits for the result. The evaluation
// itself is not interrupted; its result is dropped if it arrives late.
func (f ThunkFunc) WithTimeout(timeout time.Duration) ThunkFunc {
	return func() (any, error) {
		type result struct {
			out any
			err error
		}
		ch := make(chan result, 1)
		go func() {
			out, err := f()
			ch <- result{out, err}
		}()
		select {
		case r := <-ch:
			return r.out, r.err
		case <-time.After(timeout):
			return nil, ErrThunkTimeout
		}
	}
}
