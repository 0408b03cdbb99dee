package main

//go:generate go run github.com/swaggo/swag/cmd/swag@latest init -g docs.go -o ../../docs --parseDependency

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-predictor/internal/cache"
	"weather-predictor/internal/config"
	"weather-predictor/internal/forecast"
	"weather-predictor/internal/location"
	"weather-predictor/internal/model"
	"weather-predictor/internal/observability"
	"weather-predictor/internal/prediction"
	"weather-predictor/internal/providers/openweather"
	"weather-predictor/internal/timezone"

	"github.com/redis/go-redis/v9"

	_ "weather-predictor/docs" // Import generated docs
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger) // Set as default logger for the application

	shutdownTracing, err := observability.SetupTracing(context.Background(), cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}

	store, closeStore := newGeocodeCache(cfg, logger)

	predictionSvc := newPredictionService(cfg, store, logger)

	// Create app
	app := NewApp(cfg, logger, predictionSvc)
	srv := app.NewServer(cfg.GetServerAddr())

	go func() {
		logger.Info("starting server", "addr", srv.Addr, "models_loaded", predictionSvc.ModelsLoaded())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	logger.Info("shutting down")
	if err := srv.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", "error", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		logger.Warn("failed to flush traces", "error", err)
	}
	closeStore()
}

// newPredictionService loads the models and wires the geocode, forecast and inference pipeline
func newPredictionService(cfg *config.Config, store cache.Store, logger *slog.Logger) prediction.Service {
	bundle := model.Load(model.Paths{
		FeatureExtractor: cfg.FeatureExtractorPath(),
		Classifier:       cfg.ClassifierPath(),
		LabelEncoder:     cfg.LabelEncoderPath(),
	}, logger)
	if !bundle.Ready() {
		logger.Warn("starting without models, predictions are disabled", "bundle", bundle.String())
	}

	client := openweather.NewClient(cfg.OpenWeather.APIKey,
		openweather.WithGeocodeURL(cfg.OpenWeather.GeocodeURL),
		openweather.WithForecastURL(cfg.OpenWeather.ForecastURL),
		openweather.WithTimeout(cfg.OpenWeather.Timeout),
	)

	// Dates fall back to the provider's UTC offset without the zone index
	var tzSvc timezone.Service
	if svc, err := timezone.NewService(); err != nil {
		logger.Warn("timezone lookup disabled", "error", err)
	} else {
		tzSvc = svc
	}

	return prediction.NewPredictionService(
		location.NewLocationService(client, store, logger),
		forecast.NewForecastService(client, tzSvc, logger),
		tzSvc,
		bundle,
		logger,
	)
}

// newGeocodeCache selects Redis when an address is configured, the in-memory cache otherwise
func newGeocodeCache(cfg *config.Config, logger *slog.Logger) (cache.Store, func()) {
	noop := func() {}

	if cfg.Cache.TTL == 0 {
		logger.Info("geocoding cache disabled")
		return cache.Noop{}, noop
	}

	if cfg.Cache.RedisAddr == "" {
		return cache.NewMemory(cfg.Cache.TTL), noop
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, using in-memory geocoding cache",
			"addr", cfg.Cache.RedisAddr,
			"error", err,
		)
		_ = rdb.Close()
		return cache.NewMemory(cfg.Cache.TTL), noop
	}

	logger.Info("using redis geocoding cache", "addr", cfg.Cache.RedisAddr)
	return cache.NewRedis(rdb, cfg.Cache.TTL), func() {
		if err := rdb.Close(); err != nil {
			logger.Warn("failed to close redis client", "error", err)
		}
	}
}
