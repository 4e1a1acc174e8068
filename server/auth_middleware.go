package server

import (
	"net/http"
)

// guardMode selects how RequireAdminSession answers a request without a valid session
type guardMode int

const (
	// guardPage redirects browsers to the login page
	guardPage guardMode = iota
	// guardAPI answers 401 with a JSON body
	guardAPI
)

// RequireAdminSession admits a request only when its admin_session cookie
// verifies. Missing, expired and tampered tokens are treated the same.
func (s *Server) RequireAdminSession(mode guardMode) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if s.hasAdminSession(r) {
				w.Header().Set("Cache-Control", "no-store")
				next(w, r)
				return
			}

			if mode == guardAPI {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			redirectSuccess(w, r, RouteAdminLogin)
		}
	}
}

func (s *Server) hasAdminSession(r *http.Request) bool {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	return s.auth.Verify(cookie.Value)
}
