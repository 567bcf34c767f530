package endpoints

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/sakina/internal/http/api"
	"github.com/Nixie-Tech-LLC/sakina/internal/model"
)

// WeatherSource reports current conditions; *weather.Client implements it.
type WeatherSource interface {
	Current(ctx context.Context, p model.GeoPoint) (model.Weather, error)
}

type WeatherController struct {
	source WeatherSource
}

// WeatherModule mounts the current-conditions endpoint
func WeatherModule(source WeatherSource) api.Module {
	ctl := &WeatherController{source: source}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/weather", ctl.current)
	})
}

// GET /api/weather?lat=..&lng=..
// An unreachable provider answers null rather than an error.
func (w *WeatherController) current(ctx *gin.Context) (any, *api.APIError) {
	point, apiErr := bindLocation(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	conditions, err := w.source.Current(ctx.Request.Context(), point)
	if err != nil {
		log.Warn().Err(err).Msg("weather unavailable")
		return nil, nil
	}
	return conditions, nil
}
