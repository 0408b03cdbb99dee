package forecast

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"weather-predictor/internal/providers/openweather"
	"weather-predictor/internal/types"
)

// Aggregate folds samples into contiguous, non-overlapping windows of SamplesPerDay.
// A trailing partial window is dropped. loc is used only for the date label.
func Aggregate(samples []openweather.ForecastSample, loc *time.Location) []types.DailyForecast {
	if loc == nil {
		loc = time.UTC
	}

	days := make([]types.DailyForecast, 0, len(samples)/SamplesPerDay)
	for start := 0; start+SamplesPerDay <= len(samples); start += SamplesPerDay {
		chunk := samples[start : start+SamplesPerDay]
		days = append(days, types.DailyForecast{
			Date:     windowDate(chunk[0], loc),
			Features: aggregateWindow(chunk),
		})
	}
	return days
}

func aggregateWindow(chunk []openweather.ForecastSample) types.DailyFeatureVector {
	rain := make([]float64, len(chunk))
	wind := make([]float64, len(chunk))
	tempMax := make([]float64, len(chunk))
	tempMin := make([]float64, len(chunk))

	for i, sample := range chunk {
		rain[i] = sample.RainVolume()
		wind[i] = sample.Wind.Speed
		tempMax[i] = sample.Main.TempMax
		tempMin[i] = sample.Main.TempMin
	}

	return types.NewDailyFeatureVector(
		sum(rain),
		maxFloat(tempMax),
		minFloat(tempMin),
		mean(wind),
	)
}

func windowDate(first openweather.ForecastSample, loc *time.Location) string {
	if first.Dt == 0 {
		return ""
	}
	return time.Unix(first.Dt, 0).In(loc).Format(time.DateOnly)
}

func minFloat(value []float64) float64 {
	if len(value) == 0 {
		return 0
	}
	return floats.Min(value)
}

func maxFloat(value []float64) float64 {
	if len(value) == 0 {
		return 0
	}
	return floats.Max(value)
}

func sum(value []float64) float64 {
	return floats.Sum(value)
}

func mean(value []float64) float64 {
	if len(value) == 0 {
		return 0
	}
	return stat.Mean(value, nil)
}
