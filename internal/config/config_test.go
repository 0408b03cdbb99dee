package config

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.CORS.FrontendURL != "http://localhost:5173" {
		t.Errorf("CORS.FrontendURL = %q, want %q", cfg.CORS.FrontendURL, "http://localhost:5173")
	}
	if cfg.OpenWeather.APIKey != "test-key" {
		t.Errorf("OpenWeather.APIKey = %q, want %q", cfg.OpenWeather.APIKey, "test-key")
	}
	if cfg.OpenWeather.Timeout != 10*time.Second {
		t.Errorf("OpenWeather.Timeout = %v, want 10s", cfg.OpenWeather.Timeout)
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
	}
	if got, want := cfg.ClassifierPath(), "models/xgb_model.json"; got != want {
		t.Errorf("ClassifierPath() = %q, want %q", got, want)
	}
	if got, want := cfg.GetServerAddr(), ":8000"; got != want {
		t.Errorf("GetServerAddr() = %q, want %q", got, want)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "test-key")
	t.Setenv("FRONTEND_URL", "https://weather.example.com")
	t.Setenv("PORT", "9090")
	t.Setenv("WEATHER_PREDICTOR_MODELS_DIR", "/srv/models")
	t.Setenv("WEATHER_PREDICTOR_CACHE_TTL", "5m")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}

	if cfg.CORS.FrontendURL != "https://weather.example.com" {
		t.Errorf("CORS.FrontendURL = %q", cfg.CORS.FrontendURL)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if got, want := cfg.LabelEncoderPath(), "/srv/models/label_encoder.json"; got != want {
		t.Errorf("LabelEncoderPath() = %q, want %q", got, want)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("Cache.TTL = %v, want 5m", cfg.Cache.TTL)
	}
	if cfg.Cache.RedisAddr != "redis:6379" {
		t.Errorf("Cache.RedisAddr = %q, want %q", cfg.Cache.RedisAddr, "redis:6379")
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "")

	_, err := Load()
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Load() error = %v, want %v", err, ErrMissingAPIKey)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid",
			cfg: Config{
				Server:      ServerConfig{Port: 8000},
				OpenWeather: OpenWeatherConfig{APIKey: "k"},
			},
		},
		{
			name: "blank api key",
			cfg: Config{
				Server:      ServerConfig{Port: 8000},
				OpenWeather: OpenWeatherConfig{APIKey: "   "},
			},
			wantErr: true,
		},
		{
			name: "port out of range",
			cfg: Config{
				Server:      ServerConfig{Port: 70000},
				OpenWeather: OpenWeatherConfig{APIKey: "k"},
			},
			wantErr: true,
		},
		{
			name: "negative cache ttl",
			cfg: Config{
				Server:      ServerConfig{Port: 8000},
				OpenWeather: OpenWeatherConfig{APIKey: "k"},
				Cache:       CacheConfig{TTL: -time.Second},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewLogger_Level(t *testing.T) {
	tests := []struct {
		level   string
		enabled slog.Level
		blocked slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 1},
		{"info", slog.LevelInfo, slog.LevelDebug},
		{"WARNING", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
		{"bogus", slog.LevelInfo, slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := &Config{Log: LogConfig{Level: tt.level, Format: "json"}}
			logger := cfg.NewLogger()
			ctx := context.Background()

			if !logger.Enabled(ctx, tt.enabled) {
				t.Errorf("level %q: %v should be enabled", tt.level, tt.enabled)
			}
			if logger.Enabled(ctx, tt.blocked) {
				t.Errorf("level %q: %v should be disabled", tt.level, tt.blocked)
			}
		})
	}
}
