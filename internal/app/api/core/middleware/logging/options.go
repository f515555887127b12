package logging

import "log/slog"

// options contains the settings for the logging middleware.
// It uses the functional options pattern for flexible configuration.
type options struct {
	level               slog.Level
	contextRequestIdKey string
}

// Option is used to set options for the logging middleware.
type Option func(*options)

// WithLevel sets the log level that is used for the request log messages.
// The default level is debug.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithContextRequestIdKey sets the context value key that holds the request id.
// If the key is empty, no request id is logged.
func WithContextRequestIdKey(key string) Option {
	return func(o *options) {
		o.contextRequestIdKey = key
	}
}

// newOptions returns a new options struct with sane default values.
func newOptions(opts ...Option) options {
	o := options{
		level: slog.LevelDebug,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
