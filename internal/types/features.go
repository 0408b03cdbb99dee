package types

import "math"

// Feature positions inside a DailyFeatureVector
const (
	FeaturePrecipitation = iota
	FeatureTempMax
	FeatureTempMin
	FeatureWind

	FeatureCount
)

// DailyFeatureVector summarizes one forecast day as
// [precipitation_mm, temp_max_c, temp_min_c, wind_mean_ms]
type DailyFeatureVector [FeatureCount]float64

func NewDailyFeatureVector(precipitation, tempMax, tempMin, wind float64) DailyFeatureVector {
	return DailyFeatureVector{
		FeaturePrecipitation: Round2(precipitation),
		FeatureTempMax:       Round2(tempMax),
		FeatureTempMin:       Round2(tempMin),
		FeatureWind:          Round2(wind),
	}
}

func (v DailyFeatureVector) Precipitation() float64 { return v[FeaturePrecipitation] }
func (v DailyFeatureVector) TempMax() float64       { return v[FeatureTempMax] }
func (v DailyFeatureVector) TempMin() float64       { return v[FeatureTempMin] }
func (v DailyFeatureVector) Wind() float64          { return v[FeatureWind] }

// DailyForecast pairs a feature vector with the local calendar date its window starts on.
// Date is empty when the provider gave no usable timestamp.
type DailyForecast struct {
	Date     string
	Features DailyFeatureVector
}

// Round2 rounds half away from zero to two decimal places
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
