package packets

import "github.com/Nixie-Tech-LLC/sakina/internal/model"

type BookmarkResponse struct {
	Bookmark *model.Bookmark `json:"bookmark"`
}

type AdhanSettingsResponse struct {
	model.AdhanSettings
	AudioURL string `json:"audio_url"`
}
