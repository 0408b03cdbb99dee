package prediction

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"weather-predictor/internal/forecast"
	"weather-predictor/internal/location"
	"weather-predictor/internal/model"
	"weather-predictor/internal/observability"
	"weather-predictor/internal/timezone"
	"weather-predictor/internal/types"
)

// ErrModelsNotLoaded is returned when any inference artifact is unavailable
var ErrModelsNotLoaded = errors.New("models not loaded")

// Request identifies the place to predict for
type Request struct {
	City    string
	State   string
	Country string
}

// Service runs the geocode, forecast and inference pipeline for one city
type Service interface {
	// PredictCity returns the 5 day outlook. Errors wrap ErrModelsNotLoaded,
	// location.ErrCityNotFound, forecast.ErrForecastUnavailable or ErrInferenceFailed.
	PredictCity(ctx context.Context, req Request) (*types.CityForecast, error)
	// ModelsLoaded reports whether every inference artifact is available
	ModelsLoaded() bool
}

type predictionService struct {
	locationService location.Service
	forecastService forecast.Service
	timezoneService timezone.Service
	bundle          *model.Bundle
	logger          *slog.Logger
}

// NewPredictionService wires the pipeline. timezoneService may be nil.
func NewPredictionService(
	locationService location.Service,
	forecastService forecast.Service,
	timezoneService timezone.Service,
	bundle *model.Bundle,
	logger *slog.Logger,
) Service {
	return &predictionService{
		locationService: locationService,
		forecastService: forecastService,
		timezoneService: timezoneService,
		bundle:          bundle,
		logger:          logger.With("component", "prediction-service"),
	}
}

func (s *predictionService) ModelsLoaded() bool {
	return s.bundle.Ready()
}

func (s *predictionService) PredictCity(ctx context.Context, req Request) (*types.CityForecast, error) {
	ctx, span := observability.Tracer().Start(ctx, "prediction.city")
	defer span.End()
	span.SetAttributes(attribute.String("city", req.City))

	result, outcome, err := s.run(ctx, req)
	observability.PredictionCounter.WithLabelValues(outcome).Inc()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		return nil, err
	}
	return result, nil
}

func (s *predictionService) run(ctx context.Context, req Request) (*types.CityForecast, string, error) {
	// checked first so that no upstream call is made while degraded
	if !s.bundle.Ready() {
		s.logger.Warn("prediction requested without models", "missing", s.bundle.Missing())
		return nil, observability.OutcomeModelsNotLoaded, ErrModelsNotLoaded
	}

	coords, err := s.locationService.Resolve(ctx, location.Query{
		City:    req.City,
		State:   req.State,
		Country: req.Country,
	})
	if err != nil || coords == nil {
		s.logger.Info("city not found", "city", req.City, "error", err)
		if err == nil {
			err = location.ErrCityNotFound
		}
		return nil, observability.OutcomeCityNotFound, err
	}

	days, err := s.forecastService.GetDailyForecasts(ctx, *coords)
	if err != nil {
		s.logger.Warn("could not fetch forecast", "city", req.City, "coords", coords.String(), "error", err)
		return nil, observability.OutcomeForecastMissing, err
	}

	records, err := Predict(ctx, days, s.bundle)
	if err != nil {
		s.logger.Error("prediction failed", "city", req.City, "error", err)
		return nil, observability.OutcomeInferenceFailure, err
	}

	result := &types.CityForecast{
		City:        titleCase(req.City),
		Timezone:    s.timezoneName(*coords),
		Predictions: records,
	}

	s.logger.Debug("prediction complete", "city", result.City, "days", len(records))
	return result, observability.OutcomeSuccess, nil
}

func (s *predictionService) timezoneName(coords types.Coords) string {
	if s.timezoneService == nil {
		return ""
	}
	name, err := s.timezoneService.GetTimezone(coords.Latitude, coords.Longitude)
	if err != nil {
		s.logger.Debug("timezone lookup failed", "coords", coords.String(), "error", err)
		return ""
	}
	return name
}

// titleCase trims the input and capitalizes each word using Unicode word
// boundaries. Casers are stateful, so one is built per call.
func titleCase(city string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(city))
}
