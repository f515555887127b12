package logging

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_writerWrapper_Defaults(t *testing.T) {
	w := newWriterWrapper(httptest.NewRecorder())

	assert.Equal(t, http.StatusOK, w.StatusCode)
	assert.Equal(t, int64(0), w.WrittenBytes)
}

func Test_writerWrapper_TracksStatusAndBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	w := newWriterWrapper(rec)

	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("not found"))
	assert.NoError(t, err)
	_, err = w.Write([]byte("!"))
	assert.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, w.StatusCode)
	assert.Equal(t, int64(10), w.WrittenBytes)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found!", rec.Body.String())
}
