package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/Wind28111988/QLCV-DLRR/internal/config"
	"github.com/Wind28111988/QLCV-DLRR/internal/constants"
	"github.com/Wind28111988/QLCV-DLRR/internal/handlers"
	"github.com/Wind28111988/QLCV-DLRR/internal/middleware"
	"github.com/Wind28111988/QLCV-DLRR/internal/repository"
	"github.com/Wind28111988/QLCV-DLRR/internal/services"
	"github.com/Wind28111988/QLCV-DLRR/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Open the local durable cache
	local, err := store.OpenLocal(cfg.CachePath)
	if err != nil {
		log.Fatalf("Failed to open local cache: %v", err)
	}

	// The remote mirror is optional: without credentials the store runs
	// in local-only mode.
	var remote *store.Remote
	if cfg.RemoteConfigured() {
		remote = store.NewRemote(cfg.KVRestAPIURL, cfg.KVRestAPIToken)
		logger.Info("remote mirror configured", "endpoint", cfg.KVRestAPIURL)
	} else {
		logger.Info("no remote mirror configured, running local-only")
	}

	kv := store.New(local, remote, logger)
	defer kv.Close()

	// Load the collections and wire the services
	ctx := context.Background()
	users := repository.NewUserRepository(ctx, kv, logger)
	tasks := repository.NewTaskRepository(ctx, kv, logger)
	sessionRepo := repository.NewSessionRepository(kv, logger)

	authService := services.NewAuthService(users, sessionRepo)
	taskService := services.NewTaskService(tasks)
	delegationService := services.NewDelegationService(users, taskService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	delegationHandler := handlers.NewDelegationHandler(delegationService)
	dashboardHandler := handlers.NewDashboardHandler(taskService)
	adminHandler := handlers.NewAdminHandler(authService, taskService, users, cfg.DefaultPassword)

	// Initialize Gin router with cookie sessions
	r := gin.Default()

	cookieStore := cookie.NewStore([]byte(cfg.SessionSecret))
	isProduction := cfg.GinMode == "release"
	cookieStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, cookieStore))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/me", middleware.RequireAuth(users), authHandler.GetCurrentUser)
			auth.POST("/change-password", middleware.RequireAuth(users), authHandler.ChangePassword)
		}

		// Protected routes: authenticated and past the forced
		// password-change flow
		protected := api.Group("")
		protected.Use(middleware.RequireAuth(users), middleware.RequirePasswordChanged())
		{
			tasksGroup := protected.Group("/tasks")
			{
				tasksGroup.GET("", taskHandler.ListTasks)
				tasksGroup.POST("", taskHandler.CreateTask)
				tasksGroup.PATCH("/:id", taskHandler.UpdateTask)
				tasksGroup.POST("/:id/status", taskHandler.UpdateStatus)
				tasksGroup.DELETE("/:id", taskHandler.DeleteTask)
			}

			delegation := protected.Group("/delegation")
			{
				delegation.GET("/units", delegationHandler.ListUnits)
				delegation.GET("/targets", delegationHandler.ListTargets)
				delegation.POST("/assign", delegationHandler.Assign)
			}

			protected.GET("/dashboard", dashboardHandler.GetStats)

			admin := protected.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/users", adminHandler.ListUsers)
				admin.GET("/tasks", adminHandler.UserTasks)
				admin.POST("/import", adminHandler.ImportUsers)
			}
		}
	}

	// Start server
	logger.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
