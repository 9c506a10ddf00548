package server

import (
	"net/http"

	"github.com/shelfwise/bookstore/internal/auth"
)

// authenticated resolves the auth cookie into an auth.Context and stores it
// on the request context. Requests without a valid token get 401.
func (s *Server) authenticated(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.CookieName)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		ac, err := s.signer.Parse(cookie.Value)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next(w, r.WithContext(auth.WithContext(r.Context(), ac)))
	})
}

func (s *Server) adminOnly(next http.HandlerFunc) http.Handler {
	return s.authenticated(func(w http.ResponseWriter, r *http.Request) {
		ac, err := auth.FromContext(r.Context())
		if err != nil || ac.UserType != auth.UserTypeAdmin {
			respondError(w, http.StatusForbidden, "admin access required")
			return
		}
		next(w, r)
	})
}
