package api

import (
	"context"
	"net/http"

	"github.com/tenantkit/tenantkit/internal/auth"
)

type contextKey int

const callerKey contextKey = 0

// authenticated verifies the Authorization header and stores the resulting
// auth context on the request context. Requests without a verifiable bearer
// token are rejected before any handler runs.
func (s *Server) authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := s.tokens.Authenticate(r.Header.Get("Authorization"))
		if !ok {
			s.respondError(w, http.StatusUnauthorized, "not_authenticated")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), callerKey, caller)))
	})
}

// requireRoles guards a route with a role list. An empty list admits any
// authenticated caller.
func (s *Server) requireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := callerFrom(r)
			if caller == nil || !auth.HasAnyRole(caller, roles) {
				s.respondError(w, http.StatusForbidden, "not_authorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func callerFrom(r *http.Request) *auth.Context {
	caller, _ := r.Context().Value(callerKey).(*auth.Context)
	return caller
}
