package qibla

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nixie-Tech-LLC/sakina/internal/model"
)

func TestInitialBearing_KnownCities(t *testing.T) {
	cases := []struct {
		name   string
		origin model.GeoPoint
		want   float64
	}{
		{"london", model.GeoPoint{Latitude: 51.5074, Longitude: -0.1278}, 118.9},
		{"new york", model.GeoPoint{Latitude: 40.7128, Longitude: -74.0060}, 58.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := float64(QiblaFrom(tc.origin))
			assert.InDelta(t, tc.want, got, 0.5)
		})
	}
}

func TestInitialBearing_SamePointIsZero(t *testing.T) {
	kaaba := model.GeoPoint{Latitude: 21.4225, Longitude: 39.8262}
	got := InitialBearing(kaaba, kaaba)
	assert.Equal(t, model.Bearing(0), got)
	assert.False(t, math.IsNaN(float64(got)))

	// also for the package target and a point near the pole
	assert.Equal(t, model.Bearing(0), QiblaFrom(Kaaba))
	pole := model.GeoPoint{Latitude: 89.9, Longitude: 10}
	assert.Equal(t, model.Bearing(0), InitialBearing(pole, pole))
}

func TestInitialBearing_LongitudeWraparound(t *testing.T) {
	origin := model.GeoPoint{Latitude: 48.8566, Longitude: 2.3522}
	for _, lng := range []float64{-170, -45.5, 0, 39.8262, 120, 179.9} {
		base := InitialBearing(origin, model.GeoPoint{Latitude: 21.42, Longitude: lng})
		plus := InitialBearing(origin, model.GeoPoint{Latitude: 21.42, Longitude: lng + 360})
		minus := InitialBearing(origin, model.GeoPoint{Latitude: 21.42, Longitude: lng - 360})
		assert.InDelta(t, float64(base), float64(plus), 1e-9, "lng %v", lng)
		assert.InDelta(t, float64(base), float64(minus), 1e-9, "lng %v", lng)
	}
}

func TestInitialBearing_Range(t *testing.T) {
	origin := model.GeoPoint{Latitude: -33.8688, Longitude: 151.2093}
	for lat := -80.0; lat <= 80; lat += 20 {
		for lng := -180.0; lng < 180; lng += 30 {
			b := float64(InitialBearing(origin, model.GeoPoint{Latitude: lat, Longitude: lng}))
			assert.GreaterOrEqual(t, b, 0.0)
			assert.Less(t, b, 360.0)
		}
	}
}

func TestInitialBearing_CardinalDirections(t *testing.T) {
	origin := model.GeoPoint{}
	assert.InDelta(t, 0, float64(InitialBearing(origin, model.GeoPoint{Latitude: 10})), 1e-9)
	assert.InDelta(t, 90, float64(InitialBearing(origin, model.GeoPoint{Longitude: 10})), 1e-9)
	assert.InDelta(t, 180, float64(InitialBearing(origin, model.GeoPoint{Latitude: -10})), 1e-9)
	assert.InDelta(t, 270, float64(InitialBearing(origin, model.GeoPoint{Longitude: -10})), 1e-9)
}

func TestCircularDistance(t *testing.T) {
	assert.Equal(t, 2.0, CircularDistance(359, 1))
	assert.Equal(t, 2.0, CircularDistance(1, 359))
	assert.Equal(t, 180.0, CircularDistance(0, 180))
	assert.Equal(t, 0.0, CircularDistance(42, 42))

	for a := 0.0; a < 360; a += 17 {
		for b := 0.0; b < 360; b += 23 {
			assert.Equal(t, CircularDistance(a, b), CircularDistance(b, a))
		}
	}
}

func TestNormalizeAndMarkerAngle(t *testing.T) {
	assert.Equal(t, 0.0, Normalize(360))
	assert.Equal(t, 350.0, Normalize(-10))
	assert.Equal(t, 10.0, Normalize(730))

	assert.Equal(t, 0.0, MarkerAngle(118, 118))
	assert.Equal(t, 90.0, MarkerAngle(28, 118))
	assert.Equal(t, 350.0, MarkerAngle(10, 0))
}
