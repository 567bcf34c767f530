package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/sakina/internal/http/api"
	"github.com/Nixie-Tech-LLC/sakina/internal/http/api/me/packets"
	"github.com/Nixie-Tech-LLC/sakina/internal/model"
	"github.com/Nixie-Tech-LLC/sakina/internal/session"
)

type SessionController struct {
	sessions *session.Manager
}

func newSessionController(sessions *session.Manager) *SessionController {
	return &SessionController{sessions: sessions}
}

// SessionModule mounts the shared location and player state (JWT required)
func SessionModule(sessions *session.Manager) api.Module {
	ctl := newSessionController(sessions)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/me/session", ctl.getSession)
		c.POST("/me/session/location", ctl.setLocation)
		c.POST("/me/session/play", ctl.playTrack)
		c.POST("/me/session/toggle", ctl.togglePlay)
		c.POST("/me/session/close", ctl.closePlayer)
		c.POST("/me/session/progress", ctl.progress)
	})
}

// GET /api/me/session
func (s *SessionController) getSession(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return s.sessions.Get(ctx.Request.Context(), user.ID), nil
}

// POST /api/me/session/location
func (s *SessionController) setLocation(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.SessionLocationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.NewError(http.StatusBadRequest, err.Error())
	}
	return s.sessions.Dispatch(ctx.Request.Context(), user.ID, session.SetLocation{
		Location: model.UserLocation{
			Point:    model.GeoPoint{Latitude: *request.Latitude, Longitude: *request.Longitude},
			CityName: request.CityName,
			IsAuto:   request.IsAuto,
		},
	}), nil
}

// POST /api/me/session/play
func (s *SessionController) playTrack(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.PlayTrackRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.NewError(http.StatusBadRequest, err.Error())
	}
	return s.sessions.Dispatch(ctx.Request.Context(), user.ID, session.PlayTrack{
		Track: model.AudioTrack{
			Title:       request.Title,
			Subtitle:    request.Subtitle,
			SourceURL:   request.URL,
			SurahNumber: request.SurahNumber,
			ReciterName: request.ReciterName,
		},
	}), nil
}

// POST /api/me/session/toggle
func (s *SessionController) togglePlay(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return s.sessions.Dispatch(ctx.Request.Context(), user.ID, session.TogglePlay{}), nil
}

// POST /api/me/session/close
func (s *SessionController) closePlayer(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	return s.sessions.Dispatch(ctx.Request.Context(), user.ID, session.ClosePlayer{}), nil
}

// POST /api/me/session/progress
func (s *SessionController) progress(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.ProgressRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.NewError(http.StatusBadRequest, err.Error())
	}
	return s.sessions.Dispatch(ctx.Request.Context(), user.ID, session.Progress{
		CurrentTime: request.CurrentTime,
		Duration:    request.Duration,
	}), nil
}
