package middleware

import (
	"net/http"

	"hrportal/internal/transport/http/api"
)

const msgForbidden = "Access denied: insufficient permissions"

// RequireRole must run after Authenticate. The role has to match exactly.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, msgTokenRequired, GetRequestID(r.Context()))
				return
			}
			if user.Role != role {
				api.Fail(w, http.StatusForbidden, msgForbidden, GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
