package purefunc

import (
	"context"
	"errors"

	goerrors "github.com/go-errors/errors"
	"golang.org/x/sync/errgroup"
)

// ============================================================================
// Async Execution
// ============================================================================

// AsyncState is the lifecycle state of an async run.
type AsyncState int

const (
	// AsyncNotStarted is the state of a thunk before AsyncRun.
	AsyncNotStarted AsyncState = iota

	// AsyncRunning is the state while the run's goroutine is active.
	AsyncRunning

	// AsyncCompleted is the state of a run whose function returned,
	// including with an error or a panic.
	AsyncCompleted

	// AsyncKilled is the state of a run that AsyncKill cancelled. It is
	// entered when the kill is requested and kept only if the function
	// returns an error wrapping context.Canceled.
	AsyncKilled
)

func (s AsyncState) String() string {
	switch s {
	case AsyncNotStarted:
		return "not_started"
	case AsyncRunning:
		return "running"
	case AsyncCompleted:
		return "completed"
	case AsyncKilled:
		return "killed"
	default:
		return "unknown"
	}
}

// asyncHandle is attached to a Curried by AsyncRun. Its fields other than
// done and cancel are guarded by the owning Curried's mutex.
type asyncHandle struct {
	state  AsyncState
	cancel context.CancelFunc
	done   chan struct{}
	result any
	err    error
}

// AsyncRun starts the thunk on its own goroutine and returns c for
// chaining. c must be a thunk with arity 0, and can only be run once.
//
// Example:
//
//	sleepy, _ := Thunkify(func(ctx context.Context, name string) string {
//	    time.Sleep(time.Second)
//	    return name
//	})
//	t, _ := sleepy.Bind("a")
//	t.AsyncRun()
//	name, _ := t.AsyncWait() //=> "a"
func (c *Curried) AsyncRun() (*Curried, error) {
	return c.AsyncRunContext(context.Background())
}

// AsyncRunContext is AsyncRun with a parent context. Cancelling ctx has the
// same effect on the run as AsyncKill, without moving the handle to Killed.
func (c *Curried) AsyncRunContext(ctx context.Context) (*Curried, error) {
	if !c.thunk || c.remaining != 0 {
		return nil, newError(ErrAsyncState, "asyncRun", c.sig.name,
			"asyncRun needs a thunk with arity 0 (thunk=%v, arity=%d)",
			c.thunk, c.remaining)
	}

	c.mu.Lock()
	if c.async != nil {
		c.mu.Unlock()
		return nil, newError(ErrAsyncState, "asyncRun", c.sig.name,
			"asyncRun was already called on this thunk")
	}
	runCtx, cancel := context.WithCancel(ctx)
	h := &asyncHandle{
		state:  AsyncRunning,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	c.async = h
	c.mu.Unlock()

	log.Debugf("Starting async run of %s", c.sig.name)

	go c.runAsync(runCtx, h)

	return c, nil
}

func (c *Curried) runAsync(ctx context.Context, h *asyncHandle) {
	result, err := c.invokeRecover(ctx)

	c.mu.Lock()
	h.result, h.err = result, err

	// A kill only counts if the function gave up because of it.
	if h.state == AsyncRunning ||
		(h.state == AsyncKilled && !errors.Is(err, context.Canceled)) {

		h.state = AsyncCompleted
	}
	state := h.state
	c.mu.Unlock()

	h.cancel()
	close(h.done)

	log.Debugf("Async run of %s finished: state=%v, err=%v",
		c.sig.name, state, err)
}

// invokeRecover runs the thunk and turns a panic into an ErrPanic error
// carrying the goroutine's stack.
func (c *Curried) invokeRecover(ctx context.Context) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &Error{
				Kind:  ErrPanic,
				Op:    "asyncRun",
				Fn:    c.sig.name,
				Cause: goerrors.Wrap(r, 2),
			}
		}
	}()

	return c.invoke(ctx, "asyncRun")
}

// AsyncWait blocks until the async run ends and returns its result. An
// error returned by the wrapped function is returned here too. Waiting
// again returns the same values without blocking.
func (c *Curried) AsyncWait() (any, error) {
	h, err := c.handle("asyncWait")
	if err != nil {
		return nil, err
	}

	<-h.done

	return c.outcome("asyncWait", h)
}

// AsyncKill cancels a running thunk and waits for it to exit. Cancellation
// is cooperative: it is delivered through the context passed to a function
// whose first parameter is a context.Context and takes effect when the
// function next observes that context. Killing a run that already
// completed is a no-op that returns its result.
//
// The run ends Killed only when the function returns an error wrapping
// context.Canceled. A function that finishes normally, or fails for another
// reason, before it observes the cancellation ends Completed, and its result
// and error are returned as is.
func (c *Curried) AsyncKill() (any, error) {
	h, err := c.handle("asyncKill")
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	switch h.state {
	case AsyncCompleted:
		c.mu.Unlock()
		return h.result, h.err

	case AsyncKilled:
		c.mu.Unlock()
		<-h.done
		return c.outcome("asyncKill", h)
	}

	if !c.sig.withCtx {
		c.mu.Unlock()
		return nil, newError(ErrAsyncKill, "asyncKill", c.sig.name,
			"function takes no context.Context, cancellation cannot "+
				"be delivered")
	}
	h.state = AsyncKilled
	c.mu.Unlock()

	log.Debugf("Killing async run of %s", c.sig.name)

	h.cancel()
	<-h.done

	return c.outcome("asyncKill", h)
}

// outcome returns the result of a finished run.
func (c *Curried) outcome(op string, h *asyncHandle) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if h.state == AsyncKilled {
		return h.result, c.killedError(op, h.err)
	}
	return h.result, h.err
}

// AsyncState reports the lifecycle state of the async run.
func (c *Curried) AsyncState() AsyncState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.async == nil {
		return AsyncNotStarted
	}
	return c.async.state
}

func (c *Curried) handle(op string) (*asyncHandle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.async == nil {
		return nil, newError(ErrAsyncState, op, c.sig.name,
			"%s called before asyncRun", op)
	}
	return c.async, nil
}

func (c *Curried) killedError(op string, cause error) error {
	return &Error{Kind: ErrKilled, Op: op, Fn: c.sig.name, Cause: cause}
}

// AsyncWaitAll waits for every handle concurrently. Results are returned in
// argument order together with the first error encountered.
func AsyncWaitAll(handles ...*Curried) ([]any, error) {
	results := make([]any, len(handles))

	var g errgroup.Group
	for i, h := range handles {
		i, h := i, h
		g.Go(func() error {
			out, err := h.AsyncWait()
			results[i] = out
			return err
		})
	}
	err := g.Wait()

	return results, err
}
