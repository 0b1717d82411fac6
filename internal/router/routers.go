package router

import (
	"github.com/gin-gonic/gin"
	"github.com/wallfeed/wallfeed/config"
	"github.com/wallfeed/wallfeed/internal/handler"
	"github.com/wallfeed/wallfeed/internal/middleware"
)

type Router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	postHandler    *handler.PostHandler
	healthHandler  *handler.HealthHandler

	guard  *middleware.AuthGuard
	Config *config.Config
}

func NewRouter(
	auth *handler.AuthHandler,
	profile *handler.ProfileHandler,
	post *handler.PostHandler,
	health *handler.HealthHandler,
	guard *middleware.AuthGuard,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:    auth,
		profileHandler: profile,
		postHandler:    post,
		healthHandler:  health,
		guard:          guard,
		Config:         cfg,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	middleware.RegisterValidators()

	router := gin.New()

	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.ContextMiddleware())
	router.Use(middleware.CORS())

	// Uploaded avatars and post images are served straight from disk.
	router.Static("/uploads", r.Config.Uploads.Dir)

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.Check)

		r.authRoutes(api)
		r.profileRoutes(api)
		r.postRoutes(api)
	}

	return router
}
