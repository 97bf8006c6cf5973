package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nizam1989/Nizam-CP-sub001/config"
	"github.com/Nizam1989/Nizam-CP-sub001/handler"
	"github.com/Nizam1989/Nizam-CP-sub001/middleware"
	"github.com/Nizam1989/Nizam-CP-sub001/pkg/logger"
	"github.com/Nizam1989/Nizam-CP-sub001/service"
	"github.com/Nizam1989/Nizam-CP-sub001/store"
	"github.com/Nizam1989/Nizam-CP-sub001/workflow"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Open the relational store
	st, err := store.Open(&cfg.Database)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	// Attachment storage
	storage, err := service.NewAttachmentStorage(&cfg.Minio)
	if err != nil {
		slog.Error("failed to initialize attachment storage", "error", err)
		os.Exit(1)
	}
	if err := storage.EnsureBucket(context.Background()); err != nil {
		slog.Error("failed to ensure attachment bucket", "error", err)
		os.Exit(1)
	}

	// Optional push relay; polling works without it
	var notifier workflow.Notifier
	if cfg.Redis.Addr != "" {
		relay, err := service.NewUpdateRelay(&cfg.Redis)
		if err != nil {
			slog.Error("failed to connect update relay", "error", err)
			os.Exit(1)
		}
		defer relay.Close()
		notifier = relay
		slog.Info("update relay connected", "channel", cfg.Redis.Channel)
	}

	engine := workflow.NewEngine(st, cfg.Workflow.AllowImplicitSteps, notifier)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(cfg)
	jobHandler := handler.NewJobHandler(engine)
	stepHandler := handler.NewStepHandler(engine)
	updatesHandler := handler.NewUpdatesHandler(engine)
	attachmentHandler := handler.NewAttachmentHandler(engine, storage)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware

	// Add custom middleware
	router.Use(middleware.RequestID())                 // Request ID for tracing
	router.Use(middleware.Recovery())                  // Panic recovery
	router.Use(middleware.RequestLogger())             // Access logging
	router.Use(corsMiddleware())                       // CORS
	router.Use(middleware.RateLimit(100, time.Minute)) // Rate limiting: 100 requests per minute

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)

		protected.POST("/jobs", jobHandler.Create)
		protected.GET("/jobs", jobHandler.List)
		protected.GET("/jobs/:id", jobHandler.Get)
		protected.POST("/jobs/:id/hold", jobHandler.Hold)
		protected.POST("/jobs/:id/resume", jobHandler.Resume)

		protected.GET("/jobs/:id/steps", stepHandler.List)
		protected.PUT("/jobs/:id/steps/:step", stepHandler.Update)
		protected.PUT("/steps/:id", stepHandler.UpdateByID)

		protected.GET("/updates", updatesHandler.List)

		protected.POST("/jobs/:id/attachments", attachmentHandler.Upload)
		protected.GET("/jobs/:id/attachments", attachmentHandler.List)
		protected.GET("/attachments/:id", attachmentHandler.Download)
		protected.DELETE("/attachments/:id", attachmentHandler.Delete)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// corsMiddleware handles CORS headers
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
