package ethabi

// MethodOption configures programmatic method construction.
type MethodOption func(*methodConfig)

// methodConfig holds configuration applied by NewMethod.
type methodConfig struct {
	scalarOutput bool
}

// ScalarOutput makes DecodeOutput return the single output value bare
// instead of wrapped in a one-element slice. Building a method with this
// option and anything other than exactly one output fails. Methods parsed
// from JSON never use it; their outputs always decode to a slice.
func ScalarOutput() MethodOption {
	return func(c *methodConfig) {
		c.scalarOutput = true
	}
}

// AggregateOption configures the Aggregate() and AggregateValue()
// operations.
type AggregateOption func(*aggregateConfig)

// aggregateConfig holds configuration for one aggregate batch.
type aggregateConfig struct {
	allowFailure bool
}

// newAggregateConfig applies options over the defaults.
func newAggregateConfig(opts []AggregateOption) *aggregateConfig {
	cfg := &aggregateConfig{
		allowFailure: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithAllowFailure sets whether an individual call failure is tolerated or
// reverts the whole batch. Default is true.
func WithAllowFailure(allow bool) AggregateOption {
	return func(c *aggregateConfig) {
		c.allowFailure = allow
	}
}
