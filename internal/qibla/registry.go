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

var ErrUnknownDevice = errors.New("qibla: device is not being tracked")

// SourceFactory picks the orientation source for a device.
type SourceFactory func(deviceID string) sensor.Source

// PushSources gives every device its own in-process source.
func PushSources(string) sensor.Source { return sensor.NewPushSource() }

type device struct {
	tracker     *Tracker
	source      sensor.Source
	unsubscribe sensor.Unsubscribe
	cancel      context.CancelFunc
}

// Registry owns one tracker and subscription per device for as long as the
// device's compass view is open.
type Registry struct {
	mu       sync.Mutex
	devices  map[string]*device
	sources  SourceFactory
	interval time.Duration
	opts     []Option
}

func NewRegistry(sources SourceFactory, interval time.Duration, opts ...Option) *Registry {
	if sources == nil {
		sources = PushSources
	}
	return &Registry{
		devices:  make(map[string]*device),
		sources:  sources,
		interval: interval,
		opts:     opts,
	}
}

// Start begins tracking deviceID from origin. Starting a tracked device only
// relocates it.
func (r *Registry) Start(ctx context.Context, deviceID string, origin model.GeoPoint) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d, ok := r.devices[deviceID]; ok {
		d.tracker.SetTarget(QiblaFrom(origin))
		return d.tracker.Snapshot()
	}

	tracker := NewTracker(QiblaFrom(origin), r.opts...)
	src := r.sources(deviceID)
	unsubscribe := tracker.Attach(src)

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	go tracker.Run(runCtx, r.interval)

	r.devices[deviceID] = &device{
		tracker:     tracker,
		source:      src,
		unsubscribe: unsubscribe,
		cancel:      cancel,
	}
	log.Info().Str("deviceID", deviceID).Bool("supported", tracker.Supported()).Msg("started heading tracker")
	return tracker.Snapshot()
}

func (r *Registry) Get(deviceID string) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.devices[deviceID]
	if !ok {
		return Snapshot{}, ErrUnknownDevice
	}
	return d.tracker.Snapshot(), nil
}

// Relocate points a tracked device at the Qibla from a new origin.
func (r *Registry) Relocate(deviceID string, origin model.GeoPoint) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.devices[deviceID]
	if !ok {
		return Snapshot{}, ErrUnknownDevice
	}
	d.tracker.SetTarget(QiblaFrom(origin))
	return d.tracker.Snapshot(), nil
}

// Push feeds one orientation event to a tracked device. A device whose own
// source could not subscribe counts as supported again once a usable sample
// arrives this way.
func (r *Registry) Push(deviceID string, raw model.RawOrientation) (Snapshot, error) {
	r.mu.Lock()
	d, ok := r.devices[deviceID]
	r.mu.Unlock()
	if !ok {
		return Snapshot{}, ErrUnknownDevice
	}

	if ps, ok := d.source.(*sensor.PushSource); ok {
		ps.Push(raw)
	} else if d.tracker.ObserveRaw(raw) && !d.tracker.Supported() {
		d.tracker.markSupported()
		log.Info().Str("deviceID", deviceID).Msg("heading tracker fed by pushed samples")
	}
	return d.tracker.Snapshot(), nil
}

func (r *Registry) Stop(deviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.devices[deviceID]
	if !ok {
		return ErrUnknownDevice
	}
	d.release()
	delete(r.devices, deviceID)
	log.Info().Str("deviceID", deviceID).Msg("stopped heading tracker")
	return nil
}

// Close releases every subscription.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, d := range r.devices {
		d.release()
		delete(r.devices, id)
	}
}

func (d *device) release() {
	d.cancel()
	d.unsubscribe()
}
