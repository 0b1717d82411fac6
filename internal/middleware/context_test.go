package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wallfeed/wallfeed/internal/constants"
	ctxutil "github.com/wallfeed/wallfeed/pkg/context"
)

func TestContextMiddleware_SeedsTrackingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var (
		gotRequestID string
		gotClientIP  string
		gotUserAgent string
		gotStart     time.Time
	)

	router := gin.New()
	router.Use(ContextMiddleware())
	router.GET("/", func(c *gin.Context) {
		ctx := c.Request.Context()
		gotRequestID = ctxutil.GetRequestID(ctx)
		gotClientIP = ctxutil.GetClientIP(ctx)
		gotUserAgent = ctxutil.GetUserAgent(ctx)
		gotStart = ctxutil.GetStartTime(ctx)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderUserAgent, "test-agent")
	router.ServeHTTP(w, req)

	assert.NotEmpty(t, gotRequestID)
	assert.NotEmpty(t, gotClientIP)
	assert.Equal(t, "test-agent", gotUserAgent)
	assert.False(t, gotStart.IsZero())

	// The generated id is echoed back to the caller.
	assert.Equal(t, gotRequestID, w.Header().Get(constants.HeaderXRequestID))
}

func TestContextMiddleware_HonorsIncomingRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var gotRequestID string
	router := gin.New()
	router.Use(ContextMiddleware())
	router.GET("/", func(c *gin.Context) {
		gotRequestID = ctxutil.GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderXRequestID, "fixed-id")
	router.ServeHTTP(w, req)

	assert.Equal(t, "fixed-id", gotRequestID)
	assert.Equal(t, "fixed-id", w.Header().Get(constants.HeaderXRequestID))
}

func TestAuthGuard_FlowsIdentityIntoRequestContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	guard, jwtService := newTestGuard(t)

	var gotUserID uint
	var gotOK bool
	router := gin.New()
	router.GET("/protected", guard.RequireAuth(), func(c *gin.Context) {
		gotUserID, gotOK = ctxutil.GetUserID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	token, err := jwtService.Issue(21, time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, gotOK)
	assert.Equal(t, uint(21), gotUserID)
}
