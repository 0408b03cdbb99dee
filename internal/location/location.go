package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"weather-predictor/internal/cache"
	"weather-predictor/internal/observability"
	"weather-predictor/internal/providers/openweather"
	"weather-predictor/internal/types"
)

// ErrCityNotFound is returned whenever a query cannot be turned into coordinates
var ErrCityNotFound = errors.New("city not found")

// Query is a free-text place name with optional disambiguators
type Query struct {
	City    string
	State   string
	Country string
	// Limit is the number of candidates requested upstream; the first one wins
	Limit int
}

// Service resolves place names to coordinates
type Service interface {
	// Resolve returns nil coordinates and an error wrapping ErrCityNotFound when the
	// place cannot be resolved for any reason
	Resolve(ctx context.Context, query Query) (*types.Coords, error)
}

// GeocodeProvider defines the interface for forward geocoding providers
type GeocodeProvider interface {
	Geocode(ctx context.Context, city, state, country string, limit int) ([]openweather.GeocodeResult, error)
}

// locationService implements the Service interface
type locationService struct {
	geocodeProvider GeocodeProvider
	cache           cache.Store
	logger          *slog.Logger
}

// NewLocationService creates a new location service backed by OpenWeatherMap
func NewLocationService(client *openweather.Client, store cache.Store, logger *slog.Logger) Service {
	return NewLocationServiceWithProviders(client, store, logger)
}

// NewLocationServiceWithProviders creates a new location service with a custom provider
// This is useful for testing with mock providers
func NewLocationServiceWithProviders(
	geocodeProvider GeocodeProvider,
	store cache.Store,
	logger *slog.Logger,
) Service {
	if store == nil {
		store = cache.Noop{}
	}
	return &locationService{
		geocodeProvider: geocodeProvider,
		cache:           store,
		logger:          logger.With("component", "location-service"),
	}
}

// Resolve looks the query up in the cache, then upstream. No retries.
func (s *locationService) Resolve(ctx context.Context, query Query) (*types.Coords, error) {
	city := strings.TrimSpace(query.City)
	if city == "" {
		return nil, fmt.Errorf("%w: empty city name", ErrCityNotFound)
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 1
	}

	key := cache.Key(city, query.State, query.Country)
	if coords, ok := s.fromCache(ctx, key); ok {
		return &coords, nil
	}

	results, err := s.geocodeProvider.Geocode(ctx, city, query.State, query.Country, limit)
	if err != nil {
		s.logger.Warn("geocoding request failed",
			"city", city,
			"error", err,
		)
		return nil, fmt.Errorf("%w: %v", ErrCityNotFound, err)
	}

	if len(results) == 0 {
		s.logger.Debug("geocoding returned no results", "city", city)
		return nil, fmt.Errorf("%w: no results for %q", ErrCityNotFound, city)
	}

	coords := translateCoords(results[0])

	if err := s.cache.Set(ctx, key, coords); err != nil {
		s.logger.Warn("failed to cache coordinates", "key", key, "error", err)
	}

	s.logger.Debug("resolved city",
		"city", city,
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
	)

	return &coords, nil
}

func (s *locationService) fromCache(ctx context.Context, key string) (types.Coords, bool) {
	coords, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		observability.GeocodeCacheCounter.WithLabelValues("error").Inc()
		s.logger.Warn("geocoding cache read failed", "key", key, "error", err)
		return types.Coords{}, false
	case ok:
		observability.GeocodeCacheCounter.WithLabelValues("hit").Inc()
		return coords, true
	default:
		observability.GeocodeCacheCounter.WithLabelValues("miss").Inc()
		return types.Coords{}, false
	}
}

// translateCoords converts an OpenWeatherMap geocoding result to domain Coords type
func translateCoords(result openweather.GeocodeResult) types.Coords {
	return types.NewCoords(result.Lat, result.Lon)
}
