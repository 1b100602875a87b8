package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"smarthire_backend/internal/auth"
	"smarthire_backend/internal/logger"
	"smarthire_backend/internal/models"
	"smarthire_backend/pkg/apperrors"
	"smarthire_backend/pkg/contextkeys"
)

// Authenticator превращает bearer-токен в пользователя запроса
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Identity, error)
}

// AuthMiddleware - middleware проверки JWT
func AuthMiddleware(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			apperrors.HandleError(c, apperrors.ErrTokenRequired)
			return
		}

		identity, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		setIdentity(c, identity)
		c.Next()
	}
}

// OptionalAuth прикрепляет пользователя при валидном токене, иначе пропускает запрос анонимно
func OptionalAuth(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if identity, err := authenticator.Authenticate(c.Request.Context(), token); err == nil {
				setIdentity(c, identity)
			}
		}
		c.Next()
	}
}

// RequireRoles - пропускает только перечисленные роли. Ставится после AuthMiddleware.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			apperrors.HandleError(c, apperrors.ErrTokenRequired)
			return
		}
		if !identity.HasRole(roles...) {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			return
		}
		c.Next()
	}
}

// GetIdentity извлекает пользователя из контекста
func GetIdentity(c *gin.Context) (*auth.Identity, bool) {
	v, exists := c.Get(contextkeys.IdentityKey)
	if !exists {
		return nil, false
	}
	identity, ok := v.(*auth.Identity)
	return identity, ok && identity != nil
}

func setIdentity(c *gin.Context, identity *auth.Identity) {
	c.Set(contextkeys.IdentityKey, identity)
	ctx := logger.WithUserID(c.Request.Context(), identity.UserID)
	ctx = context.WithValue(ctx, contextkeys.IdentityContextKey, identity)
	c.Request = c.Request.WithContext(ctx)
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}
