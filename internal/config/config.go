package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingAPIKey is returned when no OpenWeatherMap credential is configured
var ErrMissingAPIKey = errors.New("OPENWEATHER_API_KEY is required")

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Log         LogConfig
	CORS        CORSConfig
	OpenWeather OpenWeatherConfig
	Models      ModelsConfig
	Cache       CacheConfig
	Telemetry   TelemetryConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port            int
	GinMode         string // debug, release, test
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// CORSConfig holds the single origin allowed to call the API from a browser
type CORSConfig struct {
	FrontendURL string
}

// OpenWeatherConfig holds upstream provider settings
type OpenWeatherConfig struct {
	APIKey      string
	GeocodeURL  string
	ForecastURL string
	Timeout     time.Duration
}

// ModelsConfig locates the pretrained artifacts on disk
type ModelsConfig struct {
	Dir              string
	FeatureExtractor string
	Classifier       string
	LabelEncoder     string
}

// CacheConfig configures the geocoding cache. An empty RedisAddr selects the in-memory cache.
type CacheConfig struct {
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// TelemetryConfig configures tracing export
type TelemetryConfig struct {
	ServiceName  string
	OTLPEndpoint string
}

// Load reads configuration from an optional .env file, an optional config file and environment variables
func Load() (*Config, error) {
	// .env is a development convenience; its absence is not an error
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.weather-predictor")

	setDefaults(v)

	v.SetEnvPrefix("WEATHER_PREDICTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Names kept from the original deployment contract
	_ = v.BindEnv("cors.frontendurl", "FRONTEND_URL", "WEATHER_PREDICTOR_CORS_FRONTENDURL")
	_ = v.BindEnv("openweather.apikey", "OPENWEATHER_API_KEY", "WEATHER_PREDICTOR_OPENWEATHER_APIKEY")
	_ = v.BindEnv("server.port", "WEATHER_PREDICTOR_SERVER_PORT", "PORT")
	_ = v.BindEnv("cache.redisaddr", "WEATHER_PREDICTOR_CACHE_REDISADDR", "REDIS_ADDR")
	_ = v.BindEnv("cache.redispassword", "WEATHER_PREDICTOR_CACHE_REDISPASSWORD", "REDIS_PASSWORD")
	_ = v.BindEnv("telemetry.otlpendpoint", "WEATHER_PREDICTOR_TELEMETRY_OTLPENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("server.readtimeout", 15*time.Second)
	v.SetDefault("server.writetimeout", 30*time.Second)
	v.SetDefault("server.shutdowntimeout", 5*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("cors.frontendurl", "http://localhost:5173")
	v.SetDefault("openweather.apikey", "")
	v.SetDefault("openweather.geocodeurl", "http://api.openweathermap.org/geo/1.0/direct")
	v.SetDefault("openweather.forecasturl", "http://api.openweathermap.org/data/2.5/forecast")
	v.SetDefault("openweather.timeout", 10*time.Second)
	v.SetDefault("models.dir", "models")
	v.SetDefault("models.featureextractor", "feature_extractor.json")
	v.SetDefault("models.classifier", "xgb_model.json")
	v.SetDefault("models.labelencoder", "label_encoder.json")
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("cache.redisaddr", "")
	v.SetDefault("cache.redispassword", "")
	v.SetDefault("cache.redisdb", 0)
	v.SetDefault("telemetry.servicename", "weather-predictor")
	v.SetDefault("telemetry.otlpendpoint", "")
}

// Validate rejects configurations the service cannot start with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OpenWeather.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl must not be negative, got %s", c.Cache.TTL)
	}
	return nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// FeatureExtractorPath returns the full path of the feature extractor artifact
func (c *Config) FeatureExtractorPath() string {
	return filepath.Join(c.Models.Dir, c.Models.FeatureExtractor)
}

// ClassifierPath returns the full path of the gradient-boosted classifier artifact
func (c *Config) ClassifierPath() string {
	return filepath.Join(c.Models.Dir, c.Models.Classifier)
}

// LabelEncoderPath returns the full path of the label encoder artifact
func (c *Config) LabelEncoderPath() string {
	return filepath.Join(c.Models.Dir, c.Models.LabelEncoder)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(c.Log.Level),
	}

	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
