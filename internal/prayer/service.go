package prayer

import (
	"context"
	"time"
	_ "time/tzdata"

	"github.com/Nixie-Tech-LLC/sakina/internal/cache"
	"github.com/Nixie-Tech-LLC/sakina/internal/model"
)

// TimingsSource is the remote daily-timings fetch.
type TimingsSource interface {
	Timings(ctx context.Context, p model.GeoPoint, day time.Time) (model.PrayerTimeSet, error)
}

type Service struct {
	cache  *cache.Cache
	source TimingsSource
}

func NewService(c *cache.Cache, source TimingsSource) *Service {
	return &Service{cache: c, source: source}
}

// Today returns the timings for the calendar day at p, from the cache when
// this day and rounded location were fetched before. The day is taken from
// now as given; once the provider reports p's timezone and the wall clock
// there falls on another date, that date is fetched instead.
func (s *Service) Today(ctx context.Context, p model.GeoPoint, now time.Time) (*model.PrayerTimeSet, bool) {
	set, ok := s.fetch(ctx, p, now)
	if !ok {
		return nil, false
	}
	local := LocalNow(set, now)
	if sameDay(local, now) {
		return set, true
	}
	return s.fetch(ctx, p, local)
}

func (s *Service) fetch(ctx context.Context, p model.GeoPoint, day time.Time) (*model.PrayerTimeSet, bool) {
	set, ok := cache.Fetch(ctx, s.cache, cache.TimingsKey(p, day), func(ctx context.Context) (model.PrayerTimeSet, error) {
		return s.source.Timings(ctx, p, day)
	})
	if !ok {
		return nil, false
	}
	return &set, true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// LocalNow expresses now in the set's timezone when the provider reported
// one, so hour bucketing uses the wall clock at the prayer location.
func LocalNow(set *model.PrayerTimeSet, now time.Time) time.Time {
	if set == nil || set.Timezone == "" {
		return now
	}
	loc, err := time.LoadLocation(set.Timezone)
	if err != nil {
		return now
	}
	return now.In(loc)
}
