package purefunc

// Option configures how a function is wrapped by Curry and friends.
//
// Example:
//
//	add3, _ := Curry(func(a, b, c int) int { return a + b + c },
//	    WithName("add3"),
//	    WithParams("a", "b", "c"),
//	    WithDefault("c", 0),
//	)
type Option func(*config)

type config struct {
	name     string
	params   []string
	defaults []defaultValue
	typed    bool
}

type defaultValue struct {
	name  string
	value any
}

// WithName sets the display name used in errors and log lines. Without it
// the runtime symbol name of the function is used.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithParams names the function's parameters, in declaration order, so they
// can be bound with Named. A leading context.Context parameter is not named.
func WithParams(names ...string) Option {
	return func(c *config) {
		c.params = append([]string(nil), names...)
	}
}

// WithDefault gives the named parameter a default value. Defaulted
// parameters do not count toward the declared arity and must form a trailing
// run of the parameter list.
func WithDefault(name string, value any) Option {
	return func(c *config) {
		c.defaults = append(c.defaults, defaultValue{name: name, value: value})
	}
}

// WithTypeEnforcement checks argument types strictly at invocation.
func WithTypeEnforcement() Option {
	return func(c *config) {
		c.typed = true
	}
}

func newConfig(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
