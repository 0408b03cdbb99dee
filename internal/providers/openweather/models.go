package openweather

// GeocodeResult is one entry of the direct geocoding response list
type GeocodeResult struct {
	Name       string            `json:"name"`
	LocalNames map[string]string `json:"local_names,omitempty"`
	Lat        float64           `json:"lat"`
	Lon        float64           `json:"lon"`
	Country    string            `json:"country"`
	State      string            `json:"state,omitempty"`
}

// ForecastAPIResponse is the 5 day / 3 hour forecast payload
type ForecastAPIResponse struct {
	Cod     string           `json:"cod"`
	Message float64          `json:"message"`
	Cnt     int              `json:"cnt"`
	List    []ForecastSample `json:"list"`
	City    ForecastCity     `json:"city"`
}

// ForecastSample is a single 3-hour step of the forecast
type ForecastSample struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
		Gust  float64 `json:"gust"`
	} `json:"wind"`
	// Rain is omitted by the provider for dry periods
	Rain  *Volume `json:"rain,omitempty"`
	Snow  *Volume `json:"snow,omitempty"`
	Pop   float64 `json:"pop"`
	DtTxt string  `json:"dt_txt"`
}

// Volume is a precipitation volume in mm
type Volume struct {
	ThreeHours float64 `json:"3h"`
}

// ForecastCity describes the location the forecast was produced for
type ForecastCity struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Coord   struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	// Timezone is the shift in seconds from UTC
	Timezone int `json:"timezone"`
}

// RainVolume returns the 3-hour rain volume, treating a missing rain block as 0
func (s ForecastSample) RainVolume() float64 {
	if s.Rain == nil {
		return 0
	}
	return s.Rain.ThreeHours
}
