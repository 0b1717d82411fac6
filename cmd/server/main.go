package main

import (
	"os"
	"os/signal"
	"syscall"

	configs "github.com/wallfeed/wallfeed/config"
	"github.com/wallfeed/wallfeed/internal/handler"
	"github.com/wallfeed/wallfeed/internal/middleware"
	"github.com/wallfeed/wallfeed/internal/repository"
	"github.com/wallfeed/wallfeed/internal/router"
	"github.com/wallfeed/wallfeed/internal/service"
	"github.com/wallfeed/wallfeed/internal/upload"
	"github.com/wallfeed/wallfeed/pkg/database"
	"github.com/wallfeed/wallfeed/pkg/logger"
	"github.com/wallfeed/wallfeed/pkg/redis"
	"go.uber.org/zap"
)

func main() {
	config, err := configs.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(config); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.GetLogger().Info("Application starting",
		zap.String("app_name", config.App.Name),
		zap.String("environment", config.App.Environment),
	)

	db, err := database.NewPostgresDB(config.DatabaseConnectionString())
	if err != nil {
		logger.GetLogger().Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		logger.GetLogger().Fatal("Failed to run database migrations", zap.Error(err))
	}
	if err := database.EnsureIndexes(db); err != nil {
		logger.GetLogger().Fatal("Failed to create database indexes", zap.Error(err))
	}
	logger.GetLogger().Info("Database migrated successfully")

	redisClient := redis.NewClient(redis.Config{
		Host:         config.Redis.Host,
		Port:         config.Redis.Port,
		Password:     config.Redis.Password,
		DB:           config.Redis.Database,
		Enabled:      config.Redis.Enabled,
		PoolSize:     config.Redis.PoolSize,
		MinIdleConns: config.Redis.MinIdleConns,
	}, logger.GetLogger())
	defer redisClient.Close()

	logger.GetLogger().Info("Redis client initialized",
		zap.Bool("enabled", redisClient.IsEnabled()),
	)

	saver, err := upload.NewSaver(config.Uploads.Dir, config.Uploads.MaxFileSize)
	if err != nil {
		logger.GetLogger().Fatal("Failed to prepare uploads directory", zap.Error(err))
	}

	// Repositories
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)

	// Services
	jwtService := service.NewJWTService(config.JWT.Secret)
	authService := service.NewAuthService(profileRepo, jwtService, config.JWT.AccessTTL, config.JWT.RefreshTTL)
	profileService := service.NewProfileService(profileRepo)
	feedCache := service.NewFeedCache(redisClient, config.Redis.FeedTTL)
	postService := service.NewPostService(postRepo, profileRepo, feedCache)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService, saver)
	postHandler := handler.NewPostHandler(postService, saver)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	guard := middleware.NewAuthGuard(authService)

	r := router.NewRouter(
		authHandler,
		profileHandler,
		postHandler,
		healthHandler,
		guard,
		config,
	).SetupRoutes()

	go func() {
		logger.GetLogger().Info("Server starting",
			zap.String("port", config.App.Port),
		)
		if err := r.Run(":" + config.App.Port); err != nil {
			logger.GetLogger().Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", config.App.Port),
			)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.GetLogger().Info("Shutting down server...")
}
