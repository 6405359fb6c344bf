package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"io.winapps.communitydiary/internal/db"
	"io.winapps.communitydiary/internal/diary"
	firebaseutil "io.winapps.communitydiary/internal/firebase"
	"io.winapps.communitydiary/internal/handlers"
	"io.winapps.communitydiary/internal/middleware"
	"io.winapps.communitydiary/internal/notify"
	"io.winapps.communitydiary/internal/social"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	// Initialize Firebase
	firebaseApp, err := firebaseutil.InitFirebase()
	if err != nil {
		logger.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Initialize PostgreSQL
	postgresDB, err := db.InitPostgres()
	if err != nil {
		logger.Fatalf("Failed to initialize PostgreSQL: %v", err)
	}
	defer postgresDB.Close()

	// Initialize Redis
	redisClient, err := db.InitRedis()
	if err != nil {
		logger.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer redisClient.Close()

	// Wire the diary core
	users := diary.NewUserDirectory(postgresDB)
	entries := diary.NewEntryStore(postgresDB)
	subs := diary.NewSubscriptionRegistry(postgresDB)
	moderator := diary.NewModerator(postgresDB, users)
	notifier := notify.NewPushNotifier(firebaseApp, postgresDB, redisClient, logger)
	dispatcher := diary.NewDispatcher(subs, notifier, logger)
	comments := diary.NewCommentStore(postgresDB, entries, dispatcher)
	graph := social.NewGraph(postgresDB, redisClient)
	feedQuery := diary.NewFeedQuery(postgresDB, users, graph)

	// Initialize Gin router
	router := gin.New()
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Add CORS middleware for browser clients
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Initialize handlers
	entryHandler := handlers.NewEntryHandler(entries, comments, subs, users, redisClient, logger)
	commentHandler := handlers.NewCommentHandler(comments, redisClient, logger)
	subscriptionHandler := handlers.NewSubscriptionHandler(subs, logger)
	moderationHandler := handlers.NewModerationHandler(moderator, comments, redisClient, logger)
	feedHandler := handlers.NewFeedHandler(feedQuery, redisClient, logger)

	requireAuth := middleware.AuthMiddleware(firebaseApp, postgresDB, redisClient)
	optionalAuth := middleware.OptionalAuthMiddleware(firebaseApp, postgresDB, redisClient)

	// Define routes
	v1 := router.Group("/api/v1")
	{
		// Protected entry routes
		entriesGroup := v1.Group("/entries")
		entriesGroup.Use(requireAuth)
		{
			entriesGroup.POST("/create-entry", entryHandler.CreateEntry)
			entriesGroup.POST("/update-entry", entryHandler.UpdateEntry)
			entriesGroup.GET("/new-entry-defaults", entryHandler.NewEntryDefaults)
			entriesGroup.POST("/create-comment", commentHandler.CreateComment)
			entriesGroup.POST("/subscribe", subscriptionHandler.Subscribe)
			entriesGroup.POST("/unsubscribe", subscriptionHandler.Unsubscribe)
			entriesGroup.POST("/hide-entry", moderationHandler.HideEntry)
			entriesGroup.POST("/hide-comment", moderationHandler.HideComment)
		}

		// Public read routes; a viewer is resolved when a token is supplied
		public := v1.Group("/diary")
		public.Use(optionalAuth)
		{
			public.POST("/get-entry", entryHandler.GetEntry)
			public.GET("/list", feedHandler.ListEntries)
			public.GET("/feed", feedHandler.Feed)
			public.GET("/comments", commentHandler.ListUserComments)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + getEnvOrDefault("PORT", "9091"),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Infow("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	// Give a 5 second timeout for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("server exited")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
