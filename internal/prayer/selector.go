// Package prayer fetches daily prayer timings and picks the upcoming prayer.
package prayer

import (
	"time"

	"github.com/Nixie-Tech-LLC/sakina/internal/model"
)

// NextIndex maps a clock hour to the upcoming prayer's index in
// model.PrayerNames. The bucket edges are fixed hours and do not look at the
// fetched timings.
func NextIndex(hour int) int {
	switch {
	case hour < 5:
		return 0 // Fajr
	case hour < 12:
		return 1 // Dhuhr
	case hour < 15:
		return 2 // Asr
	case hour < 18:
		return 3 // Maghrib
	case hour < 20:
		return 4 // Isha
	default:
		return 0 // Fajr, next day
	}
}

type StripItem struct {
	model.Prayer
	Display string `json:"display"` // "05:12"
	Period  string `json:"period"`  // "AM" or "PM"
	IsNext  bool   `json:"is_next"`
}

type Selection struct {
	Next  *model.Prayer `json:"next"`
	Strip []StripItem   `json:"strip"`
}

// Select marks the upcoming prayer for the hour of now. Without a set there
// is no next prayer and the strip is empty.
func Select(set *model.PrayerTimeSet, now time.Time) Selection {
	if set == nil {
		return Selection{Strip: []StripItem{}}
	}

	next := NextIndex(now.Hour())
	strip := make([]StripItem, len(set.Prayers))
	for i, p := range set.Prayers {
		display, period := Format12H(p.Time)
		strip[i] = StripItem{Prayer: p, Display: display, Period: period, IsNext: i == next}
	}

	nextPrayer := set.Prayers[next]
	return Selection{Next: &nextPrayer, Strip: strip}
}

// Greeting is the time-of-day label shown above the dashboard.
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "morning"
	case hour < 17:
		return "afternoon"
	default:
		return "evening"
	}
}
