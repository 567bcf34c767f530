package packets

type BookmarkRequest struct {
	Page int `json:"page" binding:"required,min=1,max=604"`
}

type AdhanSettingsRequest struct {
	Voice   string `json:"voice" binding:"required,oneof=makkah madinah aqsa egypt"`
	Fajr    bool   `json:"fajr"`
	Dhuhr   bool   `json:"dhuhr"`
	Asr     bool   `json:"asr"`
	Maghrib bool   `json:"maghrib"`
	Isha    bool   `json:"isha"`
}

type SessionLocationRequest struct {
	Latitude  *float64 `json:"lat" binding:"required,min=-90,max=90"`
	Longitude *float64 `json:"lng" binding:"required,min=-180,max=180"`
	CityName  string   `json:"city_name"`
	IsAuto    bool     `json:"is_auto"`
}

type PlayTrackRequest struct {
	Title       string  `json:"title" binding:"required"`
	Subtitle    string  `json:"subtitle"`
	URL         string  `json:"url" binding:"required,url"`
	SurahNumber *int    `json:"surah_number"`
	ReciterName *string `json:"reciter_name"`
}

type ProgressRequest struct {
	CurrentTime float64 `json:"current_time" binding:"min=0"`
	Duration    float64 `json:"duration" binding:"min=0"`
}
