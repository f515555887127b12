package csrf

import "net/http"

type SessionReader func(r *http.Request) string
type SessionWriter func(r *http.Request, token string)

// options contains the settings for the CSRF middleware.
// It uses the functional options pattern for flexible configuration.
type options struct {
	tokenLength   int
	ignoreMethods []string

	errCallback func(w http.ResponseWriter, r *http.Request)
	tokenGetter func(r *http.Request) string

	sessionGetter SessionReader
	sessionWriter SessionWriter
}

// Option is used to set options for the CSRF middleware.
type Option func(*options)

// WithTokenLength sets the raw token length for the CSRF middleware.
// The default value is 32.
func WithTokenLength(length int) Option {
	return func(o *options) {
		o.tokenLength = length
	}
}

// WithErrorCallback sets the function that is called when the CSRF token is
// invalid. The default behavior is to write a 403 Forbidden response.
func WithErrorCallback(fn func(w http.ResponseWriter, r *http.Request)) Option {
	return func(o *options) {
		o.errCallback = fn
	}
}

// WithTokenGetter sets the function that extracts the CSRF token from the
// request. The default behavior checks the X-CSRF-TOKEN header, the _csrf
// query parameter and the _csrf form value.
func WithTokenGetter(fn func(r *http.Request) string) Option {
	return func(o *options) {
		o.tokenGetter = fn
	}
}

func withSessionReader(fn SessionReader) Option {
	return func(o *options) {
		o.sessionGetter = fn
	}
}

func withSessionWriter(fn SessionWriter) Option {
	return func(o *options) {
		o.sessionWriter = fn
	}
}

// newOptions returns a new options struct with sane default values.
func newOptions(opts ...Option) options {
	o := options{
		tokenLength:   32,
		ignoreMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		errCallback:   defaultErrorHandler,
		tokenGetter:   defaultTokenGetter,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
