package model

// Weather is the current conditions at a location.
type Weather struct {
	Location    GeoPoint `json:"location"`
	Temperature float64  `json:"temperature"` // °C
	Humidity    float64  `json:"humidity"`    // %
	WindSpeed   float64  `json:"wind_speed"`  // km/h
	IsDay       bool     `json:"is_day"`
	Code        int      `json:"code"` // WMO weather code
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
}
