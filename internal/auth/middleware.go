package auth

import (
	"context"
	"net/http"
	"strings"

	"parkease/internal/service"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "userRole"
)

const adminRole = "admin"

// Middleware authenticates requests with a Bearer JWT and stores the
// requester's identity in the request context.
type Middleware struct {
	auth *service.AuthService
}

func NewMiddleware(auth *service.AuthService) *Middleware {
	return &Middleware{auth: auth}
}

func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		userID, role, err := m.auth.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, roleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates a route on the admin role. Must run after
// Authenticate.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if RoleFromContext(r.Context()) != adminRole {
			http.Error(w, "Access denied. Admin only.", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserIDFromContext returns the authenticated user's id, or 0 when the
// request was not authenticated.
func UserIDFromContext(ctx context.Context) int {
	id, _ := ctx.Value(userIDKey).(int)
	return id
}

func RoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(roleKey).(string)
	return role
}

func IsAdmin(ctx context.Context) bool {
	return RoleFromContext(ctx) == adminRole
}
