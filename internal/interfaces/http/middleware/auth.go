package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atelier-edu/atelier/internal/infrastructure/auth"
	"github.com/atelier-edu/atelier/internal/shared/constants"
	"github.com/atelier-edu/atelier/internal/shared/logger"
	"github.com/atelier-edu/atelier/internal/shared/utils"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAuth verifies the bearer token and stores the principal identity
// on the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		if claims.TokenType != auth.TokenTypeAccess {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid token type")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyPrincipalID, claims.PrincipalID)
		c.Set(constants.ContextKeyPrincipalRole, string(claims.Role))

		c.Next()
	}
}

// GetPrincipalID extracts the authenticated principal's ID from the context.
func GetPrincipalID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(constants.ContextKeyPrincipalID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
