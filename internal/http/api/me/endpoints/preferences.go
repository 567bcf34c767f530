package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/sakina/internal/db"
	"github.com/Nixie-Tech-LLC/sakina/internal/http/api"
	"github.com/Nixie-Tech-LLC/sakina/internal/http/api/me/packets"
	"github.com/Nixie-Tech-LLC/sakina/internal/model"
	"github.com/Nixie-Tech-LLC/sakina/internal/quran"
)

type PreferencesController struct {
	store db.Store
}

func newPreferencesController(store db.Store) *PreferencesController {
	return &PreferencesController{store: store}
}

// PreferencesModule mounts the reading bookmark and adhan settings (JWT required)
func PreferencesModule(store db.Store) api.Module {
	ctl := newPreferencesController(store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/me/bookmark", ctl.getBookmark)
		c.PUT("/me/bookmark", ctl.setBookmark)
		c.DELETE("/me/bookmark", ctl.clearBookmark)

		c.GET("/me/adhan", ctl.getAdhan)
		c.PUT("/me/adhan", ctl.saveAdhan)
	})
}

func adhanResponse(s model.AdhanSettings) packets.AdhanSettingsResponse {
	return packets.AdhanSettingsResponse{AdhanSettings: s, AudioURL: quran.AdhanURLs[s.Voice]}
}

// GET /api/me/bookmark
func (p *PreferencesController) getBookmark(_ *gin.Context, user *model.User) (any, *api.APIError) {
	b, err := p.store.GetBookmark(user.ID)
	if err != nil {
		return nil, api.NewError(http.StatusInternalServerError, "could not load bookmark")
	}
	return packets.BookmarkResponse{Bookmark: b}, nil
}

// PUT /api/me/bookmark
func (p *PreferencesController) setBookmark(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.BookmarkRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.NewError(http.StatusBadRequest, err.Error())
	}

	b, err := p.store.SetBookmark(user.ID, request.Page)
	if err != nil {
		return nil, api.NewError(http.StatusInternalServerError, "could not save bookmark")
	}
	log.Debug().Int("user_id", user.ID).Int("page", b.Page).Msg("bookmark moved")
	return packets.BookmarkResponse{Bookmark: &b}, nil
}

// DELETE /api/me/bookmark
func (p *PreferencesController) clearBookmark(_ *gin.Context, user *model.User) (any, *api.APIError) {
	if err := p.store.ClearBookmark(user.ID); err != nil {
		return nil, api.NewError(http.StatusInternalServerError, "could not clear bookmark")
	}
	return packets.BookmarkResponse{}, nil
}

// GET /api/me/adhan
func (p *PreferencesController) getAdhan(_ *gin.Context, user *model.User) (any, *api.APIError) {
	s, err := p.store.GetAdhanSettings(user.ID)
	if err != nil {
		return nil, api.NewError(http.StatusInternalServerError, "could not load adhan settings")
	}
	return adhanResponse(s), nil
}

// PUT /api/me/adhan
func (p *PreferencesController) saveAdhan(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.AdhanSettingsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.NewError(http.StatusBadRequest, err.Error())
	}

	s := model.AdhanSettings{
		UserID:  user.ID,
		Voice:   request.Voice,
		Fajr:    request.Fajr,
		Dhuhr:   request.Dhuhr,
		Asr:     request.Asr,
		Maghrib: request.Maghrib,
		Isha:    request.Isha,
	}
	if err := p.store.SaveAdhanSettings(s); err != nil {
		return nil, api.NewError(http.StatusInternalServerError, "could not save adhan settings")
	}
	return adhanResponse(s), nil
}
