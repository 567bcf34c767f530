package quran

import (
	"fmt"

	"github.com/Nixie-Tech-LLC/sakina/internal/model"
)

// surahStartPages maps surah number to its first page in the Madani mushaf.
var surahStartPages = [115]int{
	0,
	1, 2, 50, 77, 106, 128, 151, 177, 187, 208,
	221, 235, 249, 255, 262, 267, 282, 293, 305, 312,
	322, 332, 342, 350, 359, 367, 377, 385, 396, 404,
	411, 415, 418, 428, 434, 440, 446, 453, 458, 467,
	477, 483, 489, 496, 499, 502, 507, 511, 515, 518,
	520, 523, 526, 528, 531, 534, 537, 542, 545, 549,
	551, 553, 554, 556, 558, 560, 562, 564, 566, 568,
	570, 572, 574, 575, 577, 578, 580, 582, 583, 585,
	586, 587, 587, 589, 590, 591, 591, 592, 593, 594,
	595, 595, 596, 596, 597, 597, 598, 598, 599, 599,
	600, 600, 601, 601, 601, 602, 602, 602, 603, 603,
	603, 604, 604, 604,
}

// SurahStartPage returns the first page of surah, or 1 for an unknown number.
func SurahStartPage(surah int) int {
	if surah < 1 || surah > 114 {
		return 1
	}
	return surahStartPages[surah]
}

var Reciters = []model.Reciter{
	{
		Identifier:  "alafasy",
		Name:        "مشاري العفاسي",
		EnglishName: "Mishary Rashid Alafasy",
		URLPrefix:   "https://download.quranicaudio.com/quran/mishaari_raashid_al_3afaasee/",
	},
}

// AdhanURLs are the call-to-prayer recordings by voice.
var AdhanURLs = map[string]string{
	"makkah":  "https://download.quranicaudio.com/adhan/makkah.mp3",
	"madinah": "https://download.quranicaudio.com/adhan/madina.mp3",
	"aqsa":    "https://www.islamcan.com/audio/adhan/azan3.mp3",
	"egypt":   "https://www.islamcan.com/audio/adhan/azan4.mp3",
}

// FindReciter looks a reciter up by identifier.
func FindReciter(id string) (model.Reciter, bool) {
	for _, r := range Reciters {
		if r.Identifier == id {
			return r, true
		}
	}
	return model.Reciter{}, false
}

// AudioURL is the full-surah recording, e.g. ".../002.mp3".
func AudioURL(r model.Reciter, surah int) string {
	return fmt.Sprintf("%s%03d.mp3", r.URLPrefix, surah)
}

// SurahTrack describes a full-surah recitation for the player.
func SurahTrack(r model.Reciter, s model.Surah) model.AudioTrack {
	number := s.Number
	name := r.EnglishName
	return model.AudioTrack{
		Title:       s.Name,
		Subtitle:    r.Name,
		SourceURL:   AudioURL(r, s.Number),
		SurahNumber: &number,
		ReciterName: &name,
	}
}
