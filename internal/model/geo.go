package model

// GeoPoint is a WGS-84 coordinate in degrees. It is passed by value and
// replaced wholesale on relocation.
type GeoPoint struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Bearing is a compass direction in degrees clockwise from true north, in [0,360).
type Bearing float64

// UserLocation is a GeoPoint plus how it was obtained.
type UserLocation struct {
	Point    GeoPoint `json:"point"`
	CityName string   `json:"city_name"`
	IsAuto   bool     `json:"is_auto"` // GPS fix when true, manual city pick otherwise
}
