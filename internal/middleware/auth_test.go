package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wallfeed/wallfeed/internal/constants"
	"github.com/wallfeed/wallfeed/internal/model"
	"github.com/wallfeed/wallfeed/internal/repository"
	"github.com/wallfeed/wallfeed/internal/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestGuard(t *testing.T) (*AuthGuard, *service.JWTService) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Profile{}, &model.Post{}))

	jwtService := service.NewJWTService("test-secret")
	authService := service.NewAuthService(repository.NewProfileRepository(db), jwtService, time.Hour, time.Hour)
	return NewAuthGuard(authService), jwtService
}

func TestAuthGuard_ResolveIdentity(t *testing.T) {
	guard, jwtService := newTestGuard(t)

	valid, err := jwtService.Issue(42, time.Hour)
	require.NoError(t, err)
	expired, err := jwtService.Issue(42, -time.Minute)
	require.NoError(t, err)
	foreign, err := service.NewJWTService("other-secret").Issue(42, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		wantID uint
		wantOK bool
	}{
		{name: "bearer token", header: "Bearer " + valid, wantID: 42, wantOK: true},
		// The scheme word is discarded without being checked.
		{name: "unvalidated scheme", header: "Token " + valid, wantID: 42, wantOK: true},
		{name: "empty header", header: ""},
		{name: "no space", header: valid},
		{name: "expired token", header: "Bearer " + expired},
		{name: "wrong signing key", header: "Bearer " + foreign},
		{name: "garbage token", header: "Bearer not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := guard.ResolveIdentity(tt.header)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestAuthGuard_RequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	guard, jwtService := newTestGuard(t)

	router := gin.New()
	router.GET("/protected", guard.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint(constants.GinKeyUserID)})
	})

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message": "Unauthorized"}`, w.Body.String())
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := jwtService.Issue(7, time.Hour)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id": 7}`, w.Body.String())
	})
}
