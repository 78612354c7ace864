package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/wysanalytics/takwimu-plus/internal/util"
)

// Injected key type to avoid context collisions
type contextKey string

const (
	UserContextKey  = contextKey("user")
	AdminContextKey = contextKey("admin")
)

// UserID extracts the authenticated tenant id from the request context.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserContextKey).(int64)
	return id, ok
}

// IsAdmin reports whether the request carries an operator token.
func IsAdmin(ctx context.Context) bool {
	ok, _ := ctx.Value(AdminContextKey).(bool)
	return ok
}

func bearerClaims(r *http.Request, jwtSecret string) (*util.Claims, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, errMissingHeader
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errMalformedHeader
	}
	return util.ValidateJWT(parts[1], jwtSecret)
}

var (
	errMissingHeader   = &authError{"Authorization header missing"}
	errMalformedHeader = &authError{"Invalid authorization header"}
)

type authError struct{ msg string }

func (e *authError) Error() string { return e.msg }

// AuthMiddleware rejects requests without a valid tenant token.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := bearerClaims(r, jwtSecret)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			if claims.Role != util.RoleTenant || claims.UserID == 0 {
				http.Error(w, "Tenant token required", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), UserContextKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminMiddleware rejects requests without a valid operator token.
func AdminMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := bearerClaims(r, jwtSecret)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			if claims.Role != util.RoleAdmin {
				http.Error(w, "Operator token required", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), AdminContextKey, true)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
