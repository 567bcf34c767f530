package model

// AudioTrack describes what the playback client should load.
type AudioTrack struct {
	Title       string  `json:"title"`
	Subtitle    string  `json:"subtitle"`
	SourceURL   string  `json:"url"`
	SurahNumber *int    `json:"surah_number,omitempty"`
	ReciterName *string `json:"reciter_name,omitempty"`
}

type Reciter struct {
	Identifier  string `json:"identifier"`
	Name        string `json:"name"`
	EnglishName string `json:"english_name"`
	URLPrefix   string `json:"url_prefix"`
}

type PlaybackState struct {
	IsPlaying    bool        `json:"is_playing"`
	CurrentTrack *AudioTrack `json:"current_track"`
	Progress     float64     `json:"progress"` // 0..100
	Duration     float64     `json:"duration"`
	CurrentTime  float64     `json:"current_time"`
}

// Session is the per-user state shared across client views.
type Session struct {
	Location *UserLocation `json:"location"`
	Playback PlaybackState `json:"playback"`
}
