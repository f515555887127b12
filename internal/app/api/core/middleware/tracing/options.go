package tracing

// options contains the settings for the tracing middleware.
// It uses the functional options pattern for flexible configuration.
type options struct {
	upstreamReqIdHeader string
	headerIdentifier    string
	contextIdentifier   string
}

// Option is used to set options for the tracing middleware.
type Option func(*options)

// WithUpstreamHeader sets the upstream header name that should be used to
// fetch the request id. If no upstream header is found, a random id is generated.
func WithUpstreamHeader(header string) Option {
	return func(o *options) {
		o.upstreamReqIdHeader = header
	}
}

// WithHeaderIdentifier specifies the header name for the request id that is
// added to the response headers. If the identifier is empty, the request id
// will not be added to the response headers.
func WithHeaderIdentifier(identifier string) Option {
	return func(o *options) {
		o.headerIdentifier = identifier
	}
}

// WithContextIdentifier specifies the value-key for the request id that is
// added to the request context. If the identifier is empty, the request id
// will not be added to the context.
func WithContextIdentifier(identifier string) Option {
	return func(o *options) {
		o.contextIdentifier = identifier
	}
}

// newOptions returns a new options struct with sane default values.
func newOptions(opts ...Option) options {
	o := options{
		headerIdentifier:  "X-Request-Id",
		contextIdentifier: "RequestId",
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
