package settings

import "go.uber.org/zap"

// Option configures a reader at construction time.
type Option func(*options)

type options struct {
	name       string
	registry   *Registry
	normalizer KeyNormalizer
	logger     *zap.Logger
	onMiss     MissFunc
}

func newOptions(opts []Option) options {
	o := options{
		registry:   DefaultRegistry(),
		normalizer: DefaultKeyNormalizer(),
		logger:     zap.NewNop(),
		onMiss:     ReturnDefault,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithName overrides the reader name.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithRegistry sets the converter registry. Defaults to DefaultRegistry().
func WithRegistry(reg *Registry) Option {
	return func(o *options) {
		if reg != nil {
			o.registry = reg
		}
	}
}

// WithKeyNormalizer sets the key normalizer. Defaults to DefaultKeyNormalizer().
func WithKeyNormalizer(n KeyNormalizer) Option {
	return func(o *options) {
		if n != nil {
			o.normalizer = n
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMissPolicy replaces the policy applied when ReadOr finds no value.
func WithMissPolicy(fn MissFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.onMiss = fn
		}
	}
}
