package main

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
)

const rootMessage = "🌤 Weather Prediction API is running!"

// Health states reported by /health
const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

// RootResponse represents the response for the root endpoint
type RootResponse struct {
	Message string `json:"message" example:"🌤 Weather Prediction API is running!"`
}

// HealthResponse represents the response for the health endpoint.
// python_version carries the Go runtime version; the key is kept for existing clients.
type HealthResponse struct {
	Status        string `json:"status" example:"healthy" enums:"healthy,degraded"` // degraded when any model artifact is missing
	ModelsLoaded  bool   `json:"models_loaded" example:"true"`
	PythonVersion string `json:"python_version" example:"go1.25.3"`
}

// handleRoot godoc
// @Summary Liveness message
// @Description Confirms the API process is up
// @Tags health
// @Produce json
// @Success 200 {object} RootResponse
// @Router / [get]
func (app *App) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Message: rootMessage,
	})
}

// handleHealth godoc
// @Summary Health check
// @Description Reports whether all model artifacts loaded at startup
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (app *App) handleHealth(c *gin.Context) {
	loaded := app.predictionService.ModelsLoaded()

	status := statusHealthy
	if !loaded {
		status = statusDegraded
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:        status,
		ModelsLoaded:  loaded,
		PythonVersion: runtime.Version(),
	})
}
