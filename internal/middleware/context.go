package middleware

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/gin-gonic/gin"
	"github.com/wallfeed/wallfeed/internal/constants"
	ctxutil "github.com/wallfeed/wallfeed/pkg/context"
	"github.com/wallfeed/wallfeed/pkg/logger"
)

func newRequestID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(buf)
}

// ContextMiddleware seeds the request context with the tracking fields
// the context logger extracts: request id, client ip, user agent and
// start time. An incoming X-Request-ID is honored, otherwise one is
// generated.
func ContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = newRequestID()
		}

		ctx := ctxutil.WithRequestInfo(c.Request.Context(),
			requestID, c.ClientIP(), c.Request.UserAgent())
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(constants.HeaderXRequestID, requestID)

		c.Next()

		logger.DebugWithContext(ctx, "Request completed").
			String("method", c.Request.Method).
			String("path", c.Request.URL.Path).
			String("user_agent", ctxutil.GetUserAgent(ctx)).
			Int("status_code", c.Writer.Status()).
			Duration(ctxutil.GetDuration(ctx)).
			Log()
	}
}
