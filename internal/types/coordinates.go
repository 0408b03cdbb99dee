package types

import "fmt"

// Coords is a resolved geographic position in decimal degrees
type Coords struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

func NewCoords(latitude, longitude float64) Coords {
	return Coords{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

func (c Coords) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", c.Latitude, c.Longitude)
}
