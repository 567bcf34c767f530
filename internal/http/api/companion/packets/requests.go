package packets

// query for location-scoped endpoints, e.g. ?lat=51.5&lng=-0.12
type LocationQuery struct {
	Latitude  *float64 `form:"lat" binding:"required,min=-90,max=90"`
	Longitude *float64 `form:"lng" binding:"required,min=-180,max=180"`
}

// body for starting or relocating a device
type DeviceLocationRequest struct {
	Latitude  *float64 `json:"lat" binding:"required,min=-90,max=90"`
	Longitude *float64 `json:"lng" binding:"required,min=-180,max=180"`
}

// one orientation event as the browser reports it
type OrientationSampleRequest struct {
	CompassHeading *float64 `json:"webkitCompassHeading"`
	Alpha          *float64 `json:"alpha"`
}
