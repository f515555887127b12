package tracing

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Middleware_GeneratesRequestId(t *testing.T) {
	m := New()

	var ctxId string
	handler := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxId, _ = r.Context().Value("RequestId").(string)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, ctxId)
	assert.Equal(t, ctxId, w.Header().Get("X-Request-Id"))
}

func Test_Middleware_ReusesUpstreamId(t *testing.T) {
	m := New(WithUpstreamHeader("X-Request-Id"))

	handler := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-Id", "upstream-id")

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, "upstream-id", w.Header().Get("X-Request-Id"))
}
