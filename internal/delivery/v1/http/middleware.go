package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/storefront-tech/go-backend/internal/cfg"
	"github.com/storefront-tech/go-backend/pkg/e"
	"github.com/storefront-tech/go-backend/pkg/logger"
)

type ctxKey string

const identityCtxKey ctxKey = "identity"

const adminRole = "admin"

// Identity — данные аутентифицированного пользователя из JWT.
type Identity struct {
	UserID int64
	Role   string
}

type tokenClaims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware проверяет Bearer-токен и кладёт Identity в контекст запроса.
type AuthMiddleware struct {
	cfg    *cfg.AuthCfg
	logger logger.Logger
}

func NewAuthMiddleware(cfg *cfg.AuthCfg, logger logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg, logger: logger}
}

func (m *AuthMiddleware) Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			WriteError(w, e.ErrUnauthorized)
			return
		}

		claims := &tokenClaims{}
		token, err := jwt.ParseWithClaims(
			strings.TrimPrefix(header, "Bearer "),
			claims,
			func(token *jwt.Token) (interface{}, error) {
				return m.cfg.JWTSecret, nil
			},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid {
			m.logger.Warnf("invalid token: %v", err)
			WriteError(w, e.ErrUnauthorized)
			return
		}

		identity := &Identity{UserID: claims.UserID, Role: claims.Role}
		next.ServeHTTP(w, r.WithContext(
			context.WithValue(r.Context(), identityCtxKey, identity),
		))
	})
}

// AdminOnly пропускает только пользователей с ролью admin.
// Должен стоять после Identity.
func (m *AuthMiddleware) AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := identityFromCtx(r.Context())
		if err != nil {
			WriteError(w, err)
			return
		}
		if identity.Role != adminRole {
			WriteError(w, e.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func identityFromCtx(ctx context.Context) (*Identity, error) {
	identity, ok := ctx.Value(identityCtxKey).(*Identity)
	if !ok {
		return nil, e.ErrUnauthorized
	}
	return identity, nil
}
