package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/sakina/internal/config"
	"github.com/Nixie-Tech-LLC/sakina/internal/db"
	"github.com/Nixie-Tech-LLC/sakina/internal/http/api"
	authapi "github.com/Nixie-Tech-LLC/sakina/internal/http/api/auth/endpoints"
	companionapi "github.com/Nixie-Tech-LLC/sakina/internal/http/api/companion/endpoints"
	meapi "github.com/Nixie-Tech-LLC/sakina/internal/http/api/me/endpoints"
	"github.com/Nixie-Tech-LLC/sakina/internal/prayer"
	"github.com/Nixie-Tech-LLC/sakina/internal/qibla"
	"github.com/Nixie-Tech-LLC/sakina/internal/quran"
	"github.com/Nixie-Tech-LLC/sakina/internal/session"
	"github.com/Nixie-Tech-LLC/sakina/internal/shell"
)

// Services are the dependencies the HTTP modules are built from.
type Services struct {
	Store    db.Store // nil without DATABASE_URL
	Quran    *quran.Service
	Prayers  *prayer.Service
	Devices  *qibla.Registry
	Sessions *session.Manager
	Shell    *shell.Shell
	Weather  companionapi.WeatherSource // nil disables /api/weather
}

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, svc Services) {
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	},
		companionapi.QuranModule(svc.Quran),
		companionapi.PrayerModule(svc.Prayers, nil),
		companionapi.QiblaModule(svc.Devices),
	)

	if svc.Weather != nil {
		api.MountGroup(r, api.GroupConfig{
			Prefix: "/api",
		},
			companionapi.WeatherModule(svc.Weather),
		)
	}

	if svc.Store != nil {
		api.MountGroup(r, api.GroupConfig{
			Prefix: "/api",
		},
			authapi.AuthPublicModule(cfg.JWTSecret, svc.Store),
		)

		api.MountGroup(r, api.GroupConfig{
			Prefix:    "/api",
			Auth:      true,
			SecretKey: cfg.JWTSecret,
			Users:     svc.Store,
		},
			authapi.AuthSessionModule(cfg.JWTSecret, svc.Store),
			meapi.PreferencesModule(svc.Store),
			meapi.SessionModule(svc.Sessions),
		)
	} else {
		log.Warn().Msg("DATABASE_URL not set, account endpoints disabled")
	}

	// everything else is the installable web client
	if svc.Shell != nil {
		r.NoRoute(svc.Shell.Handler())
	}
}
