// Package qibla computes the great-circle bearing toward the Kaaba and tracks
// a device's live heading against it.
package qibla

import (
	"math"

	"github.com/Nixie-Tech-LLC/sakina/internal/model"
)

// Kaaba is the default target point.
var Kaaba = model.GeoPoint{Latitude: 21.422487, Longitude: 39.826206}

const degToRad = math.Pi / 180

// InitialBearing returns the initial great-circle bearing from origin to
// target. Coincident points have no defined bearing and yield 0.
func InitialBearing(origin, target model.GeoPoint) model.Bearing {
	phi1 := origin.Latitude * degToRad
	phi2 := target.Latitude * degToRad
	deltaLambda := (target.Longitude - origin.Longitude) * degToRad

	y := math.Sin(deltaLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(deltaLambda)

	if origin == target || (math.Abs(x) < 1e-15 && math.Abs(y) < 1e-15) {
		return 0
	}

	deg := math.Atan2(y, x) / degToRad
	if math.IsNaN(deg) {
		return 0
	}
	return model.Bearing(Normalize(deg))
}

// QiblaFrom is InitialBearing toward the Kaaba.
func QiblaFrom(origin model.GeoPoint) model.Bearing {
	return InitialBearing(origin, Kaaba)
}

// Normalize maps any angle in degrees into [0,360).
func Normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// CircularDistance is the smaller angle between a and b, in [0,180].
func CircularDistance(a, b float64) float64 {
	d := math.Abs(Normalize(a) - Normalize(b))
	return math.Min(d, 360-d)
}

// MarkerAngle is how far the target marker sits clockwise from the top of a
// device pointing at heading.
func MarkerAngle(heading, bearing float64) float64 {
	return Normalize(bearing - heading + 360)
}

// shortestDelta is the signed rotation in (-180,180] taking from onto to.
func shortestDelta(from, to float64) float64 {
	d := Normalize(to - from)
	if d > 180 {
		d -= 360
	}
	return d
}
