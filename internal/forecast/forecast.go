package forecast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"weather-predictor/internal/providers/openweather"
	"weather-predictor/internal/timezone"
	"weather-predictor/internal/types"
)

const (
	// Days is the number of daily vectors built from one forecast
	Days = 5
	// SamplesPerDay is the number of 3-hour steps folded into one day
	SamplesPerDay = 8
	// SampleCount is the size of the provider's 5 day / 3 hour forecast
	SampleCount = Days * SamplesPerDay
)

// ErrForecastUnavailable is returned when no usable forecast could be fetched
var ErrForecastUnavailable = errors.New("forecast unavailable")

// ForecastProvider fetches the raw 5 day / 3 hour forecast
type ForecastProvider interface {
	Forecast(ctx context.Context, latitude, longitude float64) (*openweather.ForecastAPIResponse, error)
}

// Service turns coordinates into daily feature vectors
type Service interface {
	GetDailyForecasts(ctx context.Context, coords types.Coords) ([]types.DailyForecast, error)
}

type forecastService struct {
	forecastProvider ForecastProvider
	timezoneService  timezone.Service
	logger           *slog.Logger
}

// NewForecastService creates a forecast service with the OpenWeatherMap client.
// timezoneService may be nil, in which case dates use the provider's UTC offset.
func NewForecastService(client *openweather.Client, timezoneService timezone.Service, logger *slog.Logger) Service {
	return NewForecastServiceWithProvider(client, timezoneService, logger)
}

func NewForecastServiceWithProvider(
	forecastProvider ForecastProvider,
	timezoneService timezone.Service,
	logger *slog.Logger,
) Service {
	return &forecastService{
		forecastProvider: forecastProvider,
		timezoneService:  timezoneService,
		logger:           logger.With("component", "forecast-service"),
	}
}

func (s *forecastService) GetDailyForecasts(ctx context.Context, coords types.Coords) ([]types.DailyForecast, error) {
	apiResponse, err := s.forecastProvider.Forecast(ctx, coords.Latitude, coords.Longitude)
	if err != nil {
		s.logger.Error("failed to get forecast from provider",
			"latitude", coords.Latitude,
			"longitude", coords.Longitude,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", ErrForecastUnavailable, err)
	}

	if len(apiResponse.List) < SampleCount {
		s.logger.Error("forecast response too short",
			"samples", len(apiResponse.List),
			"want", SampleCount,
		)
		return nil, fmt.Errorf("%w: got %d samples, want %d", ErrForecastUnavailable, len(apiResponse.List), SampleCount)
	}

	loc := s.location(coords, apiResponse.City.Timezone)

	return Aggregate(apiResponse.List[:SampleCount], loc), nil
}

// location prefers the IANA zone of the coordinates and falls back to the provider's fixed offset
func (s *forecastService) location(coords types.Coords, offsetSeconds int) *time.Location {
	if s.timezoneService != nil {
		loc, err := s.timezoneService.GetLocation(coords.Latitude, coords.Longitude)
		if err == nil {
			return loc
		}
		s.logger.Debug("timezone lookup failed, using provider offset", "error", err)
	}
	if offsetSeconds != 0 {
		return time.FixedZone("", offsetSeconds)
	}
	return time.UTC
}
