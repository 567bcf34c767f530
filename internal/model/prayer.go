package model

import "time"

// PrayerNames is the canonical order of the five daily prayers.
var PrayerNames = [5]string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"}

type Prayer struct {
	Name string `json:"name"` // "Fajr", "Dhuhr", ...
	Time string `json:"time"` // "05:12", 24h wall clock
}

// PrayerTimeSet is the authoritative set of timings for one day at one place.
type PrayerTimeSet struct {
	Date     time.Time `json:"date"`
	Location GeoPoint  `json:"location"`
	Timezone string    `json:"timezone,omitempty"` // IANA name reported by the provider
	Prayers  [5]Prayer `json:"prayers"`
}

type AdhanSettings struct {
	UserID  int    `db:"user_id" json:"-"`
	Voice   string `db:"voice"   json:"voice"` // makkah, madinah, aqsa, egypt
	Fajr    bool   `db:"fajr"    json:"fajr"`
	Dhuhr   bool   `db:"dhuhr"   json:"dhuhr"`
	Asr     bool   `db:"asr"     json:"asr"`
	Maghrib bool   `db:"maghrib" json:"maghrib"`
	Isha    bool   `db:"isha"    json:"isha"`
}

// DefaultAdhanSettings is what a user without a saved row gets.
func DefaultAdhanSettings(userID int) AdhanSettings {
	return AdhanSettings{
		UserID:  userID,
		Voice:   "makkah",
		Fajr:    true,
		Dhuhr:   true,
		Asr:     true,
		Maghrib: true,
		Isha:    true,
	}
}
