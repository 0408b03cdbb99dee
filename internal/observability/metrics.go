package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_predictor_http_requests_total",
			Help: "Total requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weather_predictor_http_request_duration_seconds",
			Help:    "Request latency by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	PredictionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_predictor_predictions_total",
			Help: "Prediction requests by outcome.",
		},
		[]string{"outcome"},
	)

	InferenceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weather_predictor_inference_duration_seconds",
			Help:    "Time spent per model stage for one forecast day.",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
		[]string{"stage"},
	)

	ModelArtifactLoaded = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "weather_predictor_model_artifact_loaded",
			Help: "1 if the artifact loaded at startup, 0 otherwise.",
		},
		[]string{"artifact"},
	)

	GeocodeCacheCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_predictor_geocode_cache_total",
			Help: "Geocoding cache lookups by result (hit, miss, error).",
		},
		[]string{"result"},
	)
)

// Prediction outcomes
const (
	OutcomeSuccess          = "success"
	OutcomeModelsNotLoaded  = "models_not_loaded"
	OutcomeCityNotFound     = "city_not_found"
	OutcomeForecastMissing  = "forecast_unavailable"
	OutcomeInferenceFailure = "inference_failed"
)

func init() {
	prometheus.MustRegister(
		RequestCounter,
		RequestDuration,
		PredictionCounter,
		InferenceDuration,
		ModelArtifactLoaded,
		GeocodeCacheCounter,
	)
}
