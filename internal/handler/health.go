package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wallfeed/wallfeed/internal/constants"
	"github.com/wallfeed/wallfeed/pkg/redis"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:    db,
		redis: redisClient,
	}
}

func (h *HealthHandler) Check(c *gin.Context) {
	status := http.StatusOK
	overall := "ok"
	checks := gin.H{}

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		checks["database"] = "down"
		overall = "degraded"
		status = http.StatusServiceUnavailable
	} else {
		checks["database"] = "up"
	}

	if h.redis != nil && h.redis.IsEnabled() {
		if err := h.redis.Ping(c.Request.Context()); err != nil {
			checks["redis"] = "down"
		} else {
			checks["redis"] = "up"
		}
	} else {
		checks["redis"] = "disabled"
	}

	c.JSON(status, gin.H{
		"status":    overall,
		"app":       constants.AppName,
		"checks":    checks,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
