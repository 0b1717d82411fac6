package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wallfeed/wallfeed/internal/constants"
	"github.com/wallfeed/wallfeed/internal/service"
	ctxutil "github.com/wallfeed/wallfeed/pkg/context"
	"github.com/wallfeed/wallfeed/pkg/logger"
	"go.uber.org/zap"
)

// AuthGuard is the per-request authorization gate in front of every
// profile and posts route. It is a pure gate: allow/deny plus identity
// attachment, no state, no writes.
type AuthGuard struct {
	authService *service.AuthService
}

func NewAuthGuard(authService *service.AuthService) *AuthGuard {
	return &AuthGuard{authService: authService}
}

// ResolveIdentity extracts the bearer token from an Authorization header
// value and resolves it to a user id. The scheme prefix is discarded
// without validating its name, matching the shipped behavior.
func (g *AuthGuard) ResolveIdentity(authHeader string) (uint, bool) {
	if authHeader == "" {
		return 0, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return 0, false
	}
	token := parts[1]

	claims := g.authService.ValidateToken(token)
	if claims == nil {
		return 0, false
	}

	userID, ok := service.SubjectID(claims)
	if !ok {
		return 0, false
	}

	return userID, true
}

// RequireAuth rejects requests without a valid token and attaches the
// resolved identity to the request context for downstream handlers.
func (g *AuthGuard) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)

		userID, ok := g.ResolveIdentity(authHeader)
		if !ok {
			logger.GetLogger().Warn("Request rejected by access guard",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.Bool("header_present", authHeader != ""))
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthorized",
			})
			c.Abort()
			return
		}

		c.Set(constants.GinKeyUserID, userID)
		// Flow the identity into the request context so the context
		// logger picks it up in deeper layers.
		c.Request = c.Request.WithContext(ctxutil.WithUserID(c.Request.Context(), userID))

		logger.GetLogger().Debug("Request authenticated",
			zap.Uint("user_id", userID),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method))

		c.Next()
	}
}
