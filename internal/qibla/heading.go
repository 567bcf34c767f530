package qibla

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/sakina/internal/model"
	"github.com/Nixie-Tech-LLC/sakina/internal/sensor"
)

const (
	// DefaultTolerance is the alignment window on either side of the target.
	DefaultTolerance = 5.0
	// IdleStep is how far the idle animation turns per tick before calibration.
	IdleStep = 0.2
	// IdleInterval is the default tick period for Run.
	IdleInterval = 100 * time.Millisecond
)

// headingState is either uncalibrated or calibrated. The transition only ever
// goes one way.
type headingState interface {
	heading() float64
}

type uncalibrated struct {
	idle float64
}

func (s uncalibrated) heading() float64 { return s.idle }

type calibrated struct {
	last    model.HeadingSample
	current float64
}

func (s calibrated) heading() float64 { return s.current }

// Tracker turns a raw orientation stream into a display heading and a
// "facing the target" signal.
type Tracker struct {
	mu        sync.Mutex
	state     headingState
	target    float64
	tolerance float64
	smoothing float64
	supported bool
}

type Option func(*Tracker)

// WithTolerance sets the alignment window in degrees.
func WithTolerance(deg float64) Option {
	return func(t *Tracker) { t.tolerance = deg }
}

// WithSmoothing enables a first-order low-pass filter on calibrated samples.
// s in [0,1) is the weight kept from the previous heading; 0 disables the
// filter. For a sample interval dt the time constant is -dt/ln(s).
func WithSmoothing(s float64) Option {
	return func(t *Tracker) {
		if s >= 0 && s < 1 {
			t.smoothing = s
		}
	}
}

func NewTracker(target model.Bearing, opts ...Option) *Tracker {
	t := &Tracker{
		state:     uncalibrated{},
		target:    Normalize(float64(target)),
		tolerance: DefaultTolerance,
		supported: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Observe folds one sample into the heading. Any sample calibrates the tracker.
func (t *Tracker) Observe(sample model.HeadingSample) {
	deg := Normalize(sample.Degrees)

	t.mu.Lock()
	defer t.mu.Unlock()

	switch st := t.state.(type) {
	case uncalibrated:
		t.state = calibrated{last: sample, current: deg}
	case calibrated:
		next := deg
		if t.smoothing > 0 {
			next = Normalize(st.current + (1-t.smoothing)*shortestDelta(st.current, deg))
		}
		t.state = calibrated{last: sample, current: next}
	}
}

// ObserveRaw converts a platform event and observes it. Events carrying no
// usable angle are ignored and reported as false.
func (t *Tracker) ObserveRaw(raw model.RawOrientation) bool {
	sample, ok := raw.Sample(time.Now())
	if !ok {
		return false
	}
	t.Observe(sample)
	return true
}

// Tick advances the idle animation. It reports whether the tracker is still
// uncalibrated; once calibrated it never moves the heading again.
func (t *Tracker) Tick() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.state.(uncalibrated)
	if !ok {
		return false
	}
	t.state = uncalibrated{idle: Normalize(st.idle + IdleStep)}
	return true
}

// Run ticks the idle animation until calibration or ctx is done.
func (t *Tracker) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = IdleInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !t.Tick() {
				return
			}
		}
	}
}

// Attach subscribes the tracker to src. A missing source or one without
// orientation support marks the tracker unsupported instead of failing.
func (t *Tracker) Attach(src sensor.Source) sensor.Unsubscribe {
	noop := func() {}
	if src == nil {
		t.MarkUnsupported()
		return noop
	}

	unsubscribe, err := src.Subscribe(func(raw model.RawOrientation) {
		t.ObserveRaw(raw)
	})
	if err != nil {
		if !errors.Is(err, sensor.ErrUnsupported) {
			log.Error().Err(err).Msg("orientation subscription failed")
		}
		t.MarkUnsupported()
		return noop
	}
	return unsubscribe
}

func (t *Tracker) MarkUnsupported() {
	t.mu.Lock()
	t.supported = false
	t.mu.Unlock()
}

func (t *Tracker) markSupported() {
	t.mu.Lock()
	t.supported = true
	t.mu.Unlock()
}

func (t *Tracker) Supported() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.supported
}

// SetTarget replaces the target bearing after a relocation.
func (t *Tracker) SetTarget(target model.Bearing) {
	t.mu.Lock()
	t.target = Normalize(float64(target))
	t.mu.Unlock()
}

func (t *Tracker) Heading() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.heading()
}

func (t *Tracker) Calibrated() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.state.(calibrated)
	return ok
}

// Aligned reports whether the heading is within tolerance of the target.
func (t *Tracker) Aligned() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return CircularDistance(t.state.heading(), t.target) <= t.tolerance
}

type Snapshot struct {
	Heading     float64       `json:"heading"`
	Target      model.Bearing `json:"target"`
	MarkerAngle float64       `json:"marker_angle"`
	Calibrated  bool          `json:"calibrated"`
	Aligned     bool          `json:"aligned"`
	Supported   bool          `json:"supported"`
	LastSample  *time.Time    `json:"last_sample,omitempty"`
}

func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	h := t.state.heading()
	snap := Snapshot{
		Heading:     h,
		Target:      model.Bearing(t.target),
		MarkerAngle: MarkerAngle(h, t.target),
		Aligned:     CircularDistance(h, t.target) <= t.tolerance,
		Supported:   t.supported,
	}
	if st, ok := t.state.(calibrated); ok {
		snap.Calibrated = true
		ts := st.last.Timestamp
		snap.LastSample = &ts
	}
	return snap
}
