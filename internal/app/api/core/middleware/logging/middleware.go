package logging

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Middleware logs information about each handled request.
type Middleware struct {
	o options
}

// New returns a new logging middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	m := &Middleware{
		o: o,
	}

	return m
}

// Handler returns the logging middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := newWriterWrapper(w)
		start := time.Now()
		defer func() {
			args := []any{
				"status", ww.StatusCode,
				"dataLength", ww.WrittenBytes,
				"duration", time.Since(start).String(),
				"clientIP", clientIP(r),
				"userAgent", r.UserAgent(),
			}
			if m.o.contextRequestIdKey != "" {
				if reqId, _ := r.Context().Value(m.o.contextRequestIdKey).(string); reqId != "" {
					args = append(args, "requestId", reqId)
				}
			}

			slog.Log(r.Context(), m.o.level, r.Method+" "+r.URL.Path, args...)
		}()

		next.ServeHTTP(ww, r)
	})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}

	// strip the port from the remote address
	lastColonIndex := strings.LastIndex(r.RemoteAddr, ":")
	if lastColonIndex == -1 {
		return r.RemoteAddr
	}
	return r.RemoteAddr[:lastColonIndex]
}
