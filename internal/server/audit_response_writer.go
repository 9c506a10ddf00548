package server

import (
	"bytes"
	"net/http"
)

// responseWriterWrapper tees the response for the audit record. The
// buffered copy stops at maxAuditBody; the client always receives the
// full body.
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode int
	buffer     bytes.Buffer
}

func newResponseWriterWrapper(w http.ResponseWriter) *responseWriterWrapper {
	return &responseWriterWrapper{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (w *responseWriterWrapper) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriterWrapper) Write(b []byte) (int, error) {
	if remaining := maxAuditBody - w.buffer.Len(); remaining > 0 {
		if len(b) > remaining {
			w.buffer.Write(b[:remaining])
		} else {
			w.buffer.Write(b)
		}
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseWriterWrapper) GetStatusCode() int {
	return w.statusCode
}

func (w *responseWriterWrapper) GetBody() []byte {
	return w.buffer.Bytes()
}
