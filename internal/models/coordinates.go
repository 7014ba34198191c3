package models

import "math"

// Coordinates represents a geographical point defined by its longitude and latitude in degrees.
type Coordinates struct {
	Longitude float64 `json:"longitude"` // Longitude of the geographical point (x).
	Latitude  float64 `json:"latitude"`  // Latitude of the geographical point (y).
}

// Valid reports whether both components are finite and inside the WGS84 ranges.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) ||
		math.IsInf(c.Latitude, 0) || math.IsInf(c.Longitude, 0) {
		return false
	}

	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}
