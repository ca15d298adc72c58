// Package main runs the admin platform HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cyberxltr/admin-platform/config"
	"github.com/cyberxltr/admin-platform/internal/auth"
	"github.com/cyberxltr/admin-platform/internal/middleware"
	"github.com/cyberxltr/admin-platform/internal/notifications"
	"github.com/cyberxltr/admin-platform/internal/organizations"
	"github.com/cyberxltr/admin-platform/internal/users"
	"github.com/cyberxltr/admin-platform/pkg/database"
	"github.com/cyberxltr/admin-platform/pkg/response"
)

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours, cfg.JWT.RefreshExpireHours)
	allowList := auth.NewAllowList(cfg.Admin.Emails)

	// Auth
	authRepo := auth.NewRepository(pool)
	authHandler := auth.NewHandler(authRepo, jwtService, allowList, logger)

	// Organizations
	orgRepo := organizations.NewRepository(pool)
	orgHandler := organizations.NewHandler(orgRepo)

	// Users
	userRepo := users.NewRepository(pool)
	userHandler := users.NewHandler(userRepo, allowList, logger)

	// Notifications
	notificationRepo := notifications.NewRepository(pool)
	notificationHandler := notifications.NewHandler(notificationRepo)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.Logger(logger))

	// Health
	router.GET("/", func(c *gin.Context) {
		response.OK(c, gin.H{"message": "admin platform", "status": "operational"})
	})
	router.GET("/health", func(c *gin.Context) {
		if err := pool.Ping(c.Request.Context()); err != nil {
			response.ServiceUnavailable(c, "database disconnected")
			return
		}
		response.OK(c, gin.H{"status": "healthy", "database": "connected"})
	})

	v1 := router.Group("/api/v1")

	// Auth (public)
	v1.POST("/auth/login", authHandler.Login)

	// Protected API: valid admin-scoped JWT plus allow-list membership.
	api := v1.Group("")
	api.Use(middleware.JWT(jwtService))
	api.Use(middleware.RequireAdmin(allowList, authRepo))
	{
		// Organizations
		api.GET("/organizations", orgHandler.List)
		api.POST("/organizations", orgHandler.Create)
		api.GET("/organizations/:id", orgHandler.GetByID)
		api.PUT("/organizations/:id", orgHandler.Update)
		api.DELETE("/organizations/:id", orgHandler.Deactivate)
		api.POST("/organizations/:id/reactivate", orgHandler.Reactivate)

		// Users
		api.GET("/users", userHandler.List)
		api.POST("/users", userHandler.Create)
		api.GET("/users/:id", userHandler.GetByID)
		api.PUT("/users/:id", userHandler.Update)
		api.DELETE("/users/:id", userHandler.Deactivate)
		api.POST("/users/:id/reactivate", userHandler.Reactivate)

		// Notifications
		api.GET("/notifications", notificationHandler.List)
		api.POST("/notifications", notificationHandler.Create)
		api.GET("/notifications/stats/overview", notificationHandler.Stats)
		api.GET("/notifications/:id", notificationHandler.GetByID)
		api.PUT("/notifications/:id", notificationHandler.Update)
		api.DELETE("/notifications/:id", notificationHandler.Deactivate)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
