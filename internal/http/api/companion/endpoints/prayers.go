package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/sakina/internal/http/api"
	"github.com/Nixie-Tech-LLC/sakina/internal/http/api/companion/packets"
	"github.com/Nixie-Tech-LLC/sakina/internal/model"
	"github.com/Nixie-Tech-LLC/sakina/internal/prayer"
)

type PrayerController struct {
	prayers *prayer.Service
	now     func() time.Time
}

func newPrayerController(svc *prayer.Service, now func() time.Time) *PrayerController {
	if now == nil {
		now = time.Now
	}
	return &PrayerController{prayers: svc, now: now}
}

// PrayerModule mounts the public prayer timing endpoints
func PrayerModule(svc *prayer.Service, now func() time.Time) api.Module {
	ctl := newPrayerController(svc, now)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/prayers/today", ctl.today)
	})
}

func bindLocation(ctx *gin.Context) (model.GeoPoint, *api.APIError) {
	var q packets.LocationQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		return model.GeoPoint{}, api.NewError(http.StatusBadRequest, err.Error())
	}
	return model.GeoPoint{Latitude: *q.Latitude, Longitude: *q.Longitude}, nil
}

// GET /api/prayers/today?lat=..&lng=..[&tz=Asia/Tokyo]
// tz is the client's IANA zone and picks the calendar day; without it the
// provider's zone for the location decides. Without timings the response
// still carries the greeting and an empty strip.
func (p *PrayerController) today(ctx *gin.Context) (any, *api.APIError) {
	point, apiErr := bindLocation(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	now := p.now()
	if tz := ctx.Query("tz"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, api.NewError(http.StatusBadRequest, "unknown timezone "+tz)
		}
		now = now.In(loc)
	}
	set, ok := p.prayers.Today(ctx.Request.Context(), point, now)
	local := prayer.LocalNow(set, now)
	sel := prayer.Select(set, local)

	return packets.PrayersTodayResponse{
		Available: ok,
		Timings:   set,
		Next:      sel.Next,
		Strip:     sel.Strip,
		Greeting:  prayer.Greeting(local.Hour()),
	}, nil
}
