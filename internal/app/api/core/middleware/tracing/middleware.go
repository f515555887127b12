package tracing

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Middleware tags each request with a unique id. The id is taken from an
// upstream header if present, otherwise a new one is generated.
type Middleware struct {
	o options
}

// New returns a new tracing middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	m := &Middleware{
		o: o,
	}

	return m
}

// Handler returns the tracing middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqId string

		if m.o.upstreamReqIdHeader != "" {
			reqId = r.Header.Get(m.o.upstreamReqIdHeader)
		}
		if reqId == "" {
			reqId = uuid.NewString()
		}

		if m.o.headerIdentifier != "" {
			w.Header().Set(m.o.headerIdentifier, reqId)
		}

		if m.o.contextIdentifier != "" {
			ctx := context.WithValue(r.Context(), m.o.contextIdentifier, reqId)
			r = r.WithContext(ctx)
		}

		next.ServeHTTP(w, r)
	})
}
