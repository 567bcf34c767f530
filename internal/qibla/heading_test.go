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

func compass(deg float64) model.HeadingSample {
	return model.HeadingSample{Degrees: deg, Source: model.SourceCompass, Timestamp: time.Now()}
}

func ptr(f float64) *float64 { return &f }

func TestTracker_IdleTickUntilCalibrated(t *testing.T) {
	tr := NewTracker(118)
	assert.False(t, tr.Calibrated())

	for i := 0; i < 5; i++ {
		assert.True(t, tr.Tick())
	}
	assert.InDelta(t, 5*IdleStep, tr.Heading(), 1e-9)

	tr.Observe(compass(200))
	assert.True(t, tr.Calibrated())
	assert.Equal(t, 200.0, tr.Heading())

	// ticks no longer move the heading
	assert.False(t, tr.Tick())
	assert.Equal(t, 200.0, tr.Heading())
}

func TestTracker_CalibrationIsIrreversible(t *testing.T) {
	tr := NewTracker(0)
	tr.Observe(compass(10))
	require.True(t, tr.Calibrated())

	// events without any usable angle leave the state alone
	assert.False(t, tr.ObserveRaw(model.RawOrientation{}))
	assert.False(t, tr.ObserveRaw(model.RawOrientation{Alpha: ptr(0)}))
	tr.Tick()
	assert.True(t, tr.Calibrated())
	assert.Equal(t, 10.0, tr.Heading())
}

func TestTracker_OrientationFallbackCalibrates(t *testing.T) {
	tr := NewTracker(0)
	ok := tr.ObserveRaw(model.RawOrientation{Alpha: ptr(90)})
	assert.True(t, ok)
	assert.True(t, tr.Calibrated())
	assert.Equal(t, 270.0, tr.Heading())

	// compass field wins when both are present
	tr.ObserveRaw(model.RawOrientation{CompassHeading: ptr(45), Alpha: ptr(90)})
	assert.Equal(t, 45.0, tr.Heading())
}

func TestTracker_Alignment(t *testing.T) {
	tr := NewTracker(358)
	tr.Observe(compass(2))
	assert.True(t, tr.Aligned(), "4 degrees across north is aligned")

	tr.Observe(compass(3.5))
	assert.False(t, tr.Aligned())

	tr.SetTarget(5)
	assert.True(t, tr.Aligned(), "alignment follows the new target without a new sample")

	tr.SetTarget(10)

	tr.Observe(compass(15))
	assert.True(t, tr.Aligned(), "exactly on the tolerance edge")
}

func TestTracker_Smoothing(t *testing.T) {
	tr := NewTracker(0, WithSmoothing(0.5))
	tr.Observe(compass(350))
	assert.Equal(t, 350.0, tr.Heading(), "first sample is taken as-is")

	tr.Observe(compass(10))
	assert.InDelta(t, 0.0, tr.Heading(), 1e-9, "filter moves through north, not through 180")
}

func TestTracker_AttachUnsupported(t *testing.T) {
	tr := NewTracker(0)
	unsubscribe := tr.Attach(nil)
	unsubscribe()
	assert.False(t, tr.Supported())
	assert.False(t, tr.Calibrated())

	src := sensor.NewPushSource()
	src.Disable()
	tr2 := NewTracker(0)
	tr2.Attach(src)
	assert.False(t, tr2.Supported())
}

func TestTracker_AttachReceivesPushes(t *testing.T) {
	src := sensor.NewPushSource()
	tr := NewTracker(90)
	unsubscribe := tr.Attach(src)

	assert.Equal(t, 1, src.Push(model.RawOrientation{CompassHeading: ptr(92)}))
	snap := tr.Snapshot()
	assert.True(t, snap.Supported)
	assert.True(t, snap.Calibrated)
	assert.True(t, snap.Aligned)
	assert.NotNil(t, snap.LastSample)

	unsubscribe()
	unsubscribe()
	assert.Equal(t, 0, src.Push(model.RawOrientation{CompassHeading: ptr(180)}))
	assert.Equal(t, 92.0, tr.Heading())
}

func TestTracker_RunStopsAfterCalibration(t *testing.T) {
	tr := NewTracker(0)
	done := make(chan struct{})
	go func() {
		tr.Run(context.Background(), time.Millisecond)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	tr.Observe(compass(33))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after calibration")
	}
	assert.Equal(t, 33.0, tr.Heading())
}
