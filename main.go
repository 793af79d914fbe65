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

	"github.com/TejasDeepLearning/tenant-dashboard-3/config"
	"github.com/TejasDeepLearning/tenant-dashboard-3/handler"
	"github.com/TejasDeepLearning/tenant-dashboard-3/middleware"
	"github.com/TejasDeepLearning/tenant-dashboard-3/pkg/logger"
	"github.com/TejasDeepLearning/tenant-dashboard-3/service"
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

	// Initialize services
	persist := service.NewJSONFileStore(map[string]string{
		service.CollectionActive:   cfg.Storage.DataFile,
		service.CollectionArchived: cfg.Storage.ArchiveFile,
	})
	store := service.NewAgreementStore(persist)
	settings := service.NewSettingsStore(cfg.Storage.SettingsFile)

	textExtractor := service.NewPDFTextExtractor()
	fieldExtractor := service.NewOpenAIExtractor(&cfg.Extractor)
	mailer := service.NewSMTPMailer(&cfg.SMTP)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(cfg)
	agreementHandler := handler.NewAgreementHandler(store, textExtractor, fieldExtractor, cfg.Storage.UploadDir)
	settingsHandler := handler.NewSettingsHandler(settings)
	alertHandler := handler.NewAlertHandler(store, settings, mailer)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware
	router.MaxMultipartMemory = 16 << 20

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
			"active":    store.CountActive(),
			"archived":  store.CountArchived(),
		})
	})

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/auth/login", middleware.RateLimit(10, time.Minute), authHandler.Login)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)

		protected.POST("/agreements/upload", middleware.RateLimit(20, time.Minute), agreementHandler.Upload)
		protected.GET("/agreements", agreementHandler.List)
		protected.GET("/agreements/archived", agreementHandler.ListArchived)
		protected.GET("/agreements/export", agreementHandler.ExportCSV)
		protected.DELETE("/agreements/:id", agreementHandler.Archive)
		protected.POST("/agreements/:id/restore", agreementHandler.Restore)

		protected.GET("/settings/contacts", settingsHandler.GetContacts)
		protected.POST("/settings/contacts", settingsHandler.AddContact)
		protected.DELETE("/settings/contacts", settingsHandler.RemoveContact)

		protected.POST("/alerts/send", middleware.RateLimit(5, time.Minute), alertHandler.SendAlerts)
		protected.POST("/alerts/test", middleware.RateLimit(5, time.Minute), alertHandler.TestEmail)
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
