package middleware

import (
	"context"
	"net/http"
	"strings"

	"jobly/internal/common"
	"jobly/internal/http/response"
	"jobly/internal/security"
)

type contextKey string

const ContextIdentityKey contextKey = "identity"

// Identity is the authenticated caller. Requests without a token carry none.
type Identity struct {
	Username string
	IsAdmin  bool
}

type AuthMiddleware struct {
	jwt *security.JWTProvider
}

func NewAuthMiddleware(jwt *security.JWTProvider) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

// Authenticate attaches the caller identity when a bearer token is present.
// Requests without an Authorization header continue anonymously; a header
// that is present but invalid is rejected.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid authorization header", nil))
			return
		}
		claims, err := m.jwt.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(w, common.NewError(common.CodeUnauthorized, "invalid token", err))
			return
		}
		ctx := WithIdentity(r.Context(), Identity{Username: claims.Username, IsAdmin: claims.IsAdmin})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin lets through only authenticated administrators.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			response.Error(w, common.NewError(common.CodeUnauthorized, "authentication required", nil))
			return
		}
		if !identity.IsAdmin {
			response.Error(w, common.NewError(common.CodeForbidden, "admin only", nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, ContextIdentityKey, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(ContextIdentityKey).(Identity)
	return identity, ok
}
