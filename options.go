package spatial

type options struct {
	logger       *Logger
	heapCapacity int
}

// Option configures KdTree and HashGrid constructors.
type Option func(*options)

// WithLogger sets the logger used for structural events (balanced builds,
// resizes, tag resets). If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithHeapCapacity sets the initial capacity hint of the scratch heap used by
// k-nearest queries. Values < 1 keep the default.
func WithHeapCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.heapCapacity = n
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{heapCapacity: 16}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
