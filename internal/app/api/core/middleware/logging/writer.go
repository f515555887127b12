package logging

import (
	"net/http"
)

// writerWrapper wraps a http.ResponseWriter and tracks the number of bytes
// written to it, as well as the last http response code passed to the
// WriteHeader func. If no such call is made, http.StatusOK is assumed.
type writerWrapper struct {
	http.ResponseWriter

	StatusCode   int
	WrittenBytes int64
}

func (w *writerWrapper) WriteHeader(code int) {
	w.StatusCode = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *writerWrapper) Write(data []byte) (int, error) {
	n, err := w.ResponseWriter.Write(data)
	w.WrittenBytes += int64(n)
	return n, err
}

func newWriterWrapper(w http.ResponseWriter) *writerWrapper {
	return &writerWrapper{ResponseWriter: w, StatusCode: http.StatusOK}
}
