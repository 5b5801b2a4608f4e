package httpapi

import (
	"context"
	"net/http"
	"strings"

	"eats-backend/internal/domain"
)

type contextKey string

const userContextKey contextKey = "user"

// RoleAny marks a route that accepts any authenticated user with no further
// role check.
const RoleAny = domain.UserRole("Any")

// userFromContext returns the authenticated user attached by RequireRoles.
func userFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	return user, ok
}

// RequireRoles resolves the bearer token, loads the acting user, and rejects
// the request unless the user's role is in roles. Routes declare their role
// set explicitly at registration; there is no per-handler auth logic.
func (h *Handler) RequireRoles(next http.HandlerFunc, roles ...domain.UserRole) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r)
		if tokenString == "" {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		userID, err := h.Signer.Verify(tokenString)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		user, err := h.Users.Profile(userID)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		if !roleAllowed(user.Role, roles) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

func roleAllowed(role domain.UserRole, allowed []domain.UserRole) bool {
	for _, candidate := range allowed {
		if candidate == RoleAny || candidate == role {
			return true
		}
	}
	return false
}

// bearerToken accepts both "Authorization: Bearer <t>" and a bare "token"
// header.
func bearerToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return r.Header.Get("token")
}
