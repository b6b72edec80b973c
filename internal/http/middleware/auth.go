package middleware

import (
	"context"
	"net/http"
	"strings"

	"placenet/internal/common"
	"placenet/internal/domain/user"
	"placenet/internal/http/response"
	"placenet/internal/security"
)

type contextKey string

const (
	ContextUserIDKey contextKey = "user_id"
	ContextRolesKey  contextKey = "roles"
	ContextRoleKey   contextKey = "role"
)

// AuthMiddleware resolves the caller entirely from bearer token claims.
// Accounts live in the identity service; this API never loads a user row
// to authenticate a request.
type AuthMiddleware struct {
	jwt *security.JWTProvider
}

func NewAuthMiddleware(jwt *security.JWTProvider) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Error(w, common.NewError(common.CodeUnauthorized, "missing authorization header", nil))
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid authorization header", nil))
			return
		}
		claims, err := m.jwt.Parse(parts[1])
		if err != nil {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid token", err))
			return
		}
		userID, err := common.ParseUUID(claims.UserID)
		if err != nil {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid user id", err))
			return
		}
		roles := make([]user.Role, 0, len(claims.Roles))
		for _, role := range claims.Roles {
			roles = append(roles, user.Role(role))
		}
		ctx := context.WithValue(r.Context(), ContextUserIDKey, userID)
		ctx = context.WithValue(ctx, ContextRolesKey, roles)
		ctx = context.WithValue(ctx, ContextRoleKey, resolveActiveRole(claims.Role, roles))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolveActiveRole picks the role a dual-account user (a recruiter who is
// also an alum student, say) is acting as. A claimed role outside the held
// set resolves to none, so RequireRole rejects the request.
func resolveActiveRole(claimed string, held []user.Role) user.Role {
	active := strings.ToLower(strings.TrimSpace(claimed))
	if active == "" && len(held) == 1 {
		active = strings.ToLower(string(held[0]))
	}
	for _, role := range held {
		if strings.ToLower(string(role)) == active {
			return user.Role(active)
		}
	}
	return ""
}

func RequireRole(role user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			activeRole, ok := r.Context().Value(ContextRoleKey).(user.Role)
			if !ok {
				response.Error(w, common.NewError(common.CodeForbidden, "role not found", nil))
				return
			}
			if activeRole == "" {
				response.Error(w, common.NewError(common.CodeForbidden, "role not selected", nil))
				return
			}
			if activeRole != role {
				response.Error(w, common.NewError(common.CodeForbidden, "insufficient role", nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func UserIDFromContext(ctx context.Context) (common.UUID, bool) {
	id, ok := ctx.Value(ContextUserIDKey).(common.UUID)
	return id, ok
}

func ActiveRoleFromContext(ctx context.Context) (user.Role, bool) {
	role, ok := ctx.Value(ContextRoleKey).(user.Role)
	return role, ok
}
