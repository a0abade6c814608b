package purefunc

import (
	"sync"
	"time"
)

// TimerStats summarizes the runs of a Timer.
type TimerStats struct {
	Runs          int64
	Errors        int64
	TotalDuration time.Duration
	Min           time.Duration
	Max           time.Duration
}

// Mean returns the average run duration.
func (s TimerStats) Mean() time.Duration {
	if s.Runs == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Runs)
}

// Timer times a zero-arity callable and logs each run at info level.
type Timer struct {
	fn *Curried

	mu    sync.Mutex
	stats TimerStats
}

// NewTimer wraps fn, which must have an arity of 0. Thunkify and bind a
// function first to time it with arguments.
func NewTimer(fn any, opts ...Option) (*Timer, error) {
	c, err := Curry(fn, opts...)
	if err != nil {
		return nil, err
	}
	if c.Arity() != 0 {
		return nil, newError(ErrArity, "timer", c.Name(),
			"timed function must have an arity of 0, have %d; "+
				"consider thunkifying it first", c.Arity())
	}
	return &Timer{fn: c}, nil
}

// Run invokes the function once and records how long it took.
func (t *Timer) Run() (any, error) {
	start := time.Now()
	out, err := t.fn.Call()
	elapsed := time.Since(start)

	t.mu.Lock()
	t.stats.Runs++
	t.stats.TotalDuration += elapsed
	if t.stats.Runs == 1 || elapsed < t.stats.Min {
		t.stats.Min = elapsed
	}
	if elapsed > t.stats.Max {
		t.stats.Max = elapsed
	}
	if err != nil {
		t.stats.Errors++
	}
	t.mu.Unlock()

	log.Infof("%s: %.4fs", t.fn.Name(), elapsed.Seconds())

	return out, err
}

// Repeat runs the function n times and returns the accumulated stats. It
// stops at the first error.
func (t *Timer) Repeat(n int) (TimerStats, error) {
	for i := 0; i < n; i++ {
		if _, err := t.Run(); err != nil {
			return t.Stats(), err
		}
	}
	return t.Stats(), nil
}

// Stats returns a snapshot of the recorded runs.
func (t *Timer) Stats() TimerStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}
