package recovery

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
)

// Middleware recovers from panics in downstream handlers and returns an
// Internal Server Error response. It should be the first middleware in the
// chain, so that it can also recover from panics in other middlewares.
type Middleware struct {
	o options
}

// New returns a new recovery middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	m := &Middleware{
		o: o,
	}

	return m
}

// Handler returns the recovery middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				stack := debug.Stack()

				realErr, ok := err.(error)
				if !ok {
					realErr = fmt.Errorf("%v", err)
				}

				// A broken connection does not warrant a stack trace.
				if isBrokenPipeError(realErr) {
					return
				}

				slog.Error("recovered from panic", "error", realErr, "stack", string(stack))

				responseBody := map[string]any{
					"error": "Internal Server Error",
				}
				if m.o.exposeStackTrace {
					responseBody["stack"] = string(stack)
				}

				jsonBody, _ := json.Marshal(responseBody)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write(jsonBody)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func isBrokenPipeError(err error) bool {
	var syscallErr *os.SyscallError
	if errors.As(err, &syscallErr) {
		errMsg := strings.ToLower(syscallErr.Err.Error())
		if strings.Contains(errMsg, "broken pipe") ||
			strings.Contains(errMsg, "connection reset by peer") {
			return true
		}
	}

	return false
}
