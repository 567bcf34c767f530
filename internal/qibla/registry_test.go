package qibla

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/sakina/internal/model"
	"github.com/Nixie-Tech-LLC/sakina/internal/sensor"
)

var london = model.GeoPoint{Latitude: 51.5074, Longitude: -0.1278}

func TestRegistry_Lifecycle(t *testing.T) {
	r := NewRegistry(nil, time.Hour)
	defer r.Close()

	snap := r.Start(context.Background(), "phone-1", london)
	assert.InDelta(t, 118.9, float64(snap.Target), 0.5)
	assert.False(t, snap.Calibrated)
	assert.True(t, snap.Supported)

	snap, err := r.Push("phone-1", model.RawOrientation{CompassHeading: ptr(119)})
	require.NoError(t, err)
	assert.True(t, snap.Calibrated)
	assert.True(t, snap.Aligned)

	snap, err = r.Relocate("phone-1", model.GeoPoint{Latitude: 40.7128, Longitude: -74.0060})
	require.NoError(t, err)
	assert.False(t, snap.Aligned)
	assert.True(t, snap.Calibrated)

	require.NoError(t, r.Stop("phone-1"))
	_, err = r.Get("phone-1")
	assert.ErrorIs(t, err, ErrUnknownDevice)
	assert.ErrorIs(t, r.Stop("phone-1"), ErrUnknownDevice)
}

func TestRegistry_UnsupportedSource(t *testing.T) {
	r := NewRegistry(func(string) sensor.Source { return nil }, time.Hour)
	defer r.Close()

	snap := r.Start(context.Background(), "desktop", london)
	assert.False(t, snap.Supported)
	assert.False(t, snap.Calibrated)
}

func TestRegistry_PushRecoversUnsupportedDevice(t *testing.T) {
	r := NewRegistry(func(id string) sensor.Source { return sensor.NewMQTTSource(nil, id) }, time.Hour)
	defer r.Close()

	snap := r.Start(context.Background(), "phone-2", london)
	require.False(t, snap.Supported)

	// no usable angle leaves it unsupported
	snap, err := r.Push("phone-2", model.RawOrientation{})
	require.NoError(t, err)
	assert.False(t, snap.Supported)
	assert.False(t, snap.Calibrated)

	snap, err = r.Push("phone-2", model.RawOrientation{CompassHeading: ptr(119)})
	require.NoError(t, err)
	assert.True(t, snap.Supported)
	assert.True(t, snap.Calibrated)
}

func TestRegistry_UnknownDevice(t *testing.T) {
	r := NewRegistry(nil, time.Hour)
	_, err := r.Push("ghost", model.RawOrientation{CompassHeading: ptr(1)})
	assert.ErrorIs(t, err, ErrUnknownDevice)
	_, err = r.Relocate("ghost", london)
	assert.ErrorIs(t, err, ErrUnknownDevice)
}
