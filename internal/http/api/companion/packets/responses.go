package packets

import (
	"github.com/Nixie-Tech-LLC/sakina/internal/model"
	"github.com/Nixie-Tech-LLC/sakina/internal/prayer"
)

type SurahStartPageResponse struct {
	Surah int `json:"surah"`
	Page  int `json:"page"`
}

type PrayersTodayResponse struct {
	Available bool                 `json:"available"`
	Timings   *model.PrayerTimeSet `json:"timings"`
	Next      *model.Prayer        `json:"next"`
	Strip     []prayer.StripItem   `json:"strip"`
	Greeting  string               `json:"greeting"`
}

type QiblaResponse struct {
	Origin  model.GeoPoint `json:"origin"`
	Bearing model.Bearing  `json:"bearing"`
}
