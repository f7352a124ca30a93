package main

import (
	stdlog "log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/queueless/queueless-api/internal/cache"
	"github.com/queueless/queueless-api/internal/client"
	"github.com/queueless/queueless-api/internal/config"
	"github.com/queueless/queueless-api/internal/database"
	"github.com/queueless/queueless-api/internal/handler"
	"github.com/queueless/queueless-api/internal/logger"
	"github.com/queueless/queueless-api/internal/metrics"
	"github.com/queueless/queueless-api/internal/middleware"
	"github.com/queueless/queueless-api/internal/migration"
	"github.com/queueless/queueless-api/internal/repository"
	"github.com/queueless/queueless-api/internal/service"
	"github.com/queueless/queueless-api/internal/websocket"
)

const Version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Structured logging
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	logger.InitAudit()
	log := logger.Global()
	log.Info().
		Str("version", Version).
		Str("port", cfg.Port).
		Str("log_level", cfg.LogLevel).
		Bool("log_json", cfg.LogJSON).
		Msg("Queueless API starting")

	// Metrics singleton
	metrics.Init()

	// Database
	db, err := database.Connect(database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close(db)

	// Schema migrations
	if err := migration.NewMigrator(db).Run(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// In-process cache, shared by reference data, baselines and sessions
	appCache := cache.NewCache(cfg.ReferenceCacheTTL)
	defer appCache.Stop()

	// Repositories
	referenceRepo := repository.NewReferenceRepository(db)
	signalRepo := repository.NewSignalRepository(db)

	// WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Explanation text comes from Gemini when a key is configured
	var generator service.TextGenerator
	if cfg.GeminiAPIKey != "" {
		generator = client.NewGeminiClient(cfg.GeminiAPIKey)
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, estimates use the fallback explanation")
	}

	// Services
	explainer := service.NewExplainer(generator)
	referenceService := service.NewReferenceService(referenceRepo, appCache)
	estimator := service.NewEstimatorService(referenceRepo, signalRepo, explainer, appCache, cfg.ReferenceCacheTTL)
	sessionStore := service.NewSessionStore(appCache, cfg.SessionTTL)
	checkinService := service.NewCheckInService(signalRepo, sessionStore, hub)
	reportGenerator := service.NewReportGenerator(referenceRepo, signalRepo)

	// Handlers
	healthHandler := handler.NewHealthHandlerWithWebSocket(db, hub, Version)
	referenceHandler := handler.NewReferenceHandler(referenceService)
	estimateHandler := handler.NewEstimateHandler(estimator, referenceService)
	signalHandler := handler.NewSignalHandler(checkinService, referenceService)
	reportHandler := handler.NewReportHandler(reportGenerator)
	wsHandler := handler.NewWebSocketHandler(hub)

	// Router
	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.MetricsMiddleware())
	r.Use(gin.Recovery())

	// Health and metrics (public)
	r.GET("/health", healthHandler.DetailedHealthCheck)
	r.GET("/health/live", healthHandler.LivenessCheck)
	r.GET("/health/ready", healthHandler.ReadinessCheck)
	r.GET("/metrics", healthHandler.GetMetrics)
	r.GET("/metrics/summary", healthHandler.GetMetricsSummary)
	r.GET("/metrics/endpoints", healthHandler.GetEndpointMetrics)

	// API routes carry the anonymous session
	api := r.Group("/api/v1")
	api.Use(middleware.Session(sessionStore))
	{
		api.GET("/locations", referenceHandler.ListLocations)
		api.GET("/locations/:id/offices", referenceHandler.ListOffices)
		api.GET("/slots", referenceHandler.ListSlots)

		api.GET("/offices/:id/estimate", estimateHandler.GetEstimate)
		api.GET("/offices/:id/best-slot", estimateHandler.GetBestSlot)
		api.POST("/offices/:id/signals", signalHandler.CheckIn)
		api.GET("/offices/:id/report", reportHandler.Download)

		api.GET("/ws", wsHandler.HandleConnection)
		api.GET("/ws/stats", wsHandler.GetConnectionStats)
	}

	// Start server
	log.Info().Str("port", cfg.Port).Msg("Server starting")

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
		os.Exit(1)
	}
}
