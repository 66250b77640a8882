package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Y4SHVINE/smart-product-assistant/internal/model"
)

// TokenVerifier checks a bearer token with the identity provider.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*model.AuthUser, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth rejects requests without a valid Authorization: Bearer token.
// On success the verified user is stored in the context under "user".
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Bearer token is required",
			})
			return
		}

		user, err := m.verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			// A rejected token is the caller's problem; an unreachable
			// identity provider is ours.
			if errors.Is(err, model.ErrUpstream) {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error during authentication",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		c.Set("user", user)
		c.Next()
	}
}
