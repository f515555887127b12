package recovery

// options contains the settings for the recovery middleware.
// It uses the functional options pattern for flexible configuration.
type options struct {
	exposeStackTrace bool
}

// Option is used to set options for the recovery middleware.
type Option func(*options)

// WithExposeStackTrace sets whether the stack trace should be included in the
// response body. The default value is false.
func WithExposeStackTrace(exposeStackTrace bool) Option {
	return func(o *options) {
		o.exposeStackTrace = exposeStackTrace
	}
}

// newOptions returns a new options struct with sane default values.
func newOptions(opts ...Option) options {
	o := options{
		exposeStackTrace: false,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
