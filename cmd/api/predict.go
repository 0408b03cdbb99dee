package main

import (
	"errors"
	"net/http"

	"weather-predictor/internal/forecast"
	"weather-predictor/internal/location"
	"weather-predictor/internal/prediction"
	_ "weather-predictor/internal/types" // imported for swagger type definitions

	"github.com/gin-gonic/gin"
)

// Error messages returned in the body of failed predictions
const (
	msgModelsNotLoaded  = "Models not loaded properly"
	msgCityNotFound     = "City not found"
	msgForecastMissing  = "Could not fetch forecast"
	msgPredictionFailed = "Prediction failed"
)

// ErrorResponse is returned with HTTP 200 when a prediction cannot be made
type ErrorResponse struct {
	Error string `json:"error" example:"City not found"`
}

// PredictInput holds the optional disambiguators for the city path parameter
type PredictInput struct {
	State   string `form:"state"`   // State code, US only
	Country string `form:"country"` // ISO 3166 country code
}

// handlePredict godoc
// @Summary 5 day weather prediction
// @Description Geocodes the city, aggregates its 5 day / 3 hour forecast into daily features and classifies each day.
// @Description Pipeline failures are reported with HTTP 200 and an ErrorResponse body such as {"error": "City not found"}.
// @Tags weather
// @Produce json
// @Param city path string true "City name" example(Paris)
// @Param state query string false "State code (US only)"
// @Param country query string false "ISO 3166 country code" example(FR)
// @Success 200 {object} types.CityForecast "Prediction, or ErrorResponse when the pipeline fails"
// @Failure 400 {object} ErrorResponse "Malformed query string"
// @Failure 500 "Recovered panic, empty body"
// @Router /weather/predict/{city} [get]
func (app *App) handlePredict(c *gin.Context) {
	var input PredictInput
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := app.predictionService.PredictCity(c.Request.Context(), prediction.Request{
		City:    c.Param("city"),
		State:   input.State,
		Country: input.Country,
	})
	if err != nil {
		c.JSON(http.StatusOK, ErrorResponse{Error: errorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, result)
}

// errorMessage maps pipeline errors to their client-facing message
func errorMessage(err error) string {
	switch {
	case errors.Is(err, prediction.ErrModelsNotLoaded):
		return msgModelsNotLoaded
	case errors.Is(err, location.ErrCityNotFound):
		return msgCityNotFound
	case errors.Is(err, forecast.ErrForecastUnavailable):
		return msgForecastMissing
	default:
		return msgPredictionFailed
	}
}
