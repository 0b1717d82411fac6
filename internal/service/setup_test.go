package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wallfeed/wallfeed/internal/model"
	"github.com/wallfeed/wallfeed/internal/repository"
	"github.com/wallfeed/wallfeed/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database migrated to the current
// schema. cache=shared keeps the pooled connections on the same store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Profile{}, &model.Post{}))

	return db
}

func newDisabledCache() *FeedCache {
	client := redis.NewClient(redis.Config{Enabled: false}, zap.NewNop())
	return NewFeedCache(client, time.Minute)
}

func newTestAuthService(t *testing.T) (*AuthService, repository.ProfileRepository) {
	t.Helper()

	profiles := repository.NewProfileRepository(newTestDB(t))
	jwtService := NewJWTService("test-secret")
	return NewAuthService(profiles, jwtService, time.Hour, 30*time.Minute), profiles
}
