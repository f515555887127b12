package cors

import "net/http"

// options contains the settings for the CORS middleware.
// It uses the functional options pattern for flexible configuration.
type options struct {
	allowedOrigins   []string
	allowedMethods   []string
	allowedHeaders   []string
	allowCredentials bool
}

// Option is used to set options for the CORS middleware.
type Option func(*options)

// WithAllowedOrigins sets the origins that are allowed to access the resource.
// The special value "*" allows any origin. The default value is "*".
func WithAllowedOrigins(origins ...string) Option {
	return func(o *options) {
		o.allowedOrigins = origins
	}
}

// WithAllowedMethods sets the methods that are announced in preflight responses.
func WithAllowedMethods(methods ...string) Option {
	return func(o *options) {
		o.allowedMethods = methods
	}
}

// WithAllowedHeaders sets the headers that are announced in preflight responses.
func WithAllowedHeaders(headers ...string) Option {
	return func(o *options) {
		o.allowedHeaders = headers
	}
}

// WithAllowCredentials sets whether the resource can be accessed with
// credentials such as cookies. The default value is true.
func WithAllowCredentials(allow bool) Option {
	return func(o *options) {
		o.allowCredentials = allow
	}
}

// newOptions returns a new options struct with sane default values.
func newOptions(opts ...Option) options {
	o := options{
		allowedOrigins: []string{"*"},
		allowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodOptions,
		},
		allowedHeaders:   []string{"Content-Type", "Authorization", "X-CSRF-TOKEN"},
		allowCredentials: true,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
