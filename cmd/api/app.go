package main

import (
	"log/slog"
	"net/http"
	"time"

	"weather-predictor/internal/config"
	"weather-predictor/internal/observability"
	"weather-predictor/internal/prediction"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"

	_ "weather-predictor/docs" // Ensure docs are imported
)

// App encapsulates application dependencies
type App struct {
	router            *gin.Engine
	handler           http.Handler
	logger            *slog.Logger
	predictionService prediction.Service
	cfg               *config.Config
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger, predictionService prediction.Service) *App {
	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(observability.RequestID())
	router.Use(observability.Logger(logger))
	router.Use(observability.MetricsAndTracing(observability.Tracer()))

	app := &App{
		router:            router,
		logger:            logger,
		predictionService: predictionService,
		cfg:               cfg,
	}

	// Register routes
	app.registerRoutes()

	// CORS runs ahead of gin so preflight requests never reach the router
	app.handler = cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORS.FrontendURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{observability.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})(router)

	return app
}

// Handler returns the fully wrapped HTTP handler
func (app *App) Handler() http.Handler {
	return app.handler
}

// NewServer builds the HTTP server for addr
func (app *App) NewServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      app.handler,
		ReadTimeout:  app.cfg.Server.ReadTimeout,
		WriteTimeout: app.cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
}
