package types

// PredictionRecord is the per-day result returned to API callers
type PredictionRecord struct {
	Day           string  `json:"day" example:"DAY 1"`
	Weather       string  `json:"weather" example:"rain"`
	Precipitation float64 `json:"precipitation" example:"2.4"`
	TempMin       float64 `json:"temp_min" example:"11.3"`
	TempMax       float64 `json:"temp_max" example:"18.9"`
	Wind          float64 `json:"wind" example:"3.75"`
	Date          string  `json:"date,omitempty" example:"2025-05-14"`
}

// CityForecast is the successful prediction response body
type CityForecast struct {
	City        string             `json:"city" example:"Paris"`
	Timezone    string             `json:"timezone,omitempty" example:"Europe/Paris"`
	Predictions []PredictionRecord `json:"predictions"`
}
