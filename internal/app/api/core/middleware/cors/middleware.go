package cors

import (
	"net/http"
	"slices"
	"strings"
)

// Middleware adds Cross-Origin Resource Sharing headers to responses and
// answers preflight requests.
type Middleware struct {
	o options
}

// New returns a new CORS middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	m := &Middleware{
		o: o,
	}

	return m
}

// Handler returns the CORS middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && m.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", m.allowOriginValue(origin))
			if m.o.allowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.Header().Set("Access-Control-Allow-Methods", strings.Join(m.o.allowedMethods, ", "))
			w.Header().Set("Access-Control-Allow-Headers", strings.Join(m.o.allowedHeaders, ", "))
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) originAllowed(origin string) bool {
	if slices.Contains(m.o.allowedOrigins, "*") {
		return true
	}
	return slices.Contains(m.o.allowedOrigins, origin)
}

func (m *Middleware) allowOriginValue(origin string) string {
	// with credentials, the wildcard origin is not allowed by the browsers
	if m.o.allowCredentials {
		return origin
	}
	if slices.Contains(m.o.allowedOrigins, "*") {
		return "*"
	}
	return origin
}
