package server

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shelfwise/bookstore/internal/auth"
)

const maxAuditBody = 4096

func (s *Server) auditMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.audit == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		entry := AuditLogEntry{
			ID:        uuid.NewString(),
			Timestamp: start.UTC(),
			Method:    r.Method,
			Path:      r.URL.Path,
		}

		if cookie, err := r.Cookie(auth.CookieName); err == nil {
			if ac, err := s.signer.Parse(cookie.Value); err == nil {
				entry.UserID = ac.UserID
				entry.UserType = string(ac.UserType)
			}
		}

		if id := orderIDFromPath(r.URL.Path); id != "" {
			entry.OrderID = id
		}

		if r.Body != nil && !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
			body, _ := io.ReadAll(io.LimitReader(r.Body, maxAuditBody))
			r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), r.Body))
			entry.Request = redactCredentials(r.URL.Path, string(body))
		}

		wrw := newResponseWriterWrapper(w)
		next.ServeHTTP(wrw, r)

		entry.StatusCode = wrw.GetStatusCode()
		entry.DurationMs = time.Since(start).Milliseconds()
		entry.Response = string(wrw.GetBody())

		s.audit.LogEntry(r.Context(), entry)
	})
}

func orderIDFromPath(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if part == "orders" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

// redactCredentials keeps password-bearing request bodies out of the
// audit stream.
func redactCredentials(path, body string) string {
	if strings.HasSuffix(path, "/login") ||
		strings.HasSuffix(path, "/customers") ||
		strings.HasSuffix(path, "/admins") {
		return "[redacted]"
	}
	return body
}
