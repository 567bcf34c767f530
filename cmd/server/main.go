package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/sakina/internal/cache"
	"github.com/Nixie-Tech-LLC/sakina/internal/config"
	"github.com/Nixie-Tech-LLC/sakina/internal/db"
	"github.com/Nixie-Tech-LLC/sakina/internal/prayer"
	"github.com/Nixie-Tech-LLC/sakina/internal/qibla"
	"github.com/Nixie-Tech-LLC/sakina/internal/quran"
	"github.com/Nixie-Tech-LLC/sakina/internal/remote"
	"github.com/Nixie-Tech-LLC/sakina/internal/sensor"
	"github.com/Nixie-Tech-LLC/sakina/internal/session"
	"github.com/Nixie-Tech-LLC/sakina/internal/weather"
)

const (
	remoteTimeout   = 10 * time.Second
	remoteRateLimit = 5 // requests per second, per provider
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	cfg.SetupLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store db.Store
	if cfg.DatabaseURL != "" {
		if err := db.Init(cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("db init")
		}
		if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("db migrate")
		}
		store = db.NewStore(db.DB)
	}

	offline := cache.New(InitCacheStore(ctx, cfg, store))

	quranSvc := quran.NewService(offline,
		quran.NewClient(remote.NewClient(remoteTimeout, remoteRateLimit), cfg.QuranAPIURL))
	prayerSvc := prayer.NewService(offline,
		prayer.NewClient(remote.NewClient(remoteTimeout, remoteRateLimit), cfg.PrayerAPIURL, cfg.PrayerMethod))

	sources := qibla.SourceFactory(qibla.PushSources)
	if cfg.MQTTBrokerURL != "" {
		client, err := sensor.Connect(cfg.MQTTBrokerURL, "sakina-"+uuid.NewString())
		if err != nil {
			log.Error().Err(err).Msg("MQTT unavailable, devices must push samples over HTTP")
		} else {
			defer client.Disconnect(250)
			sources = func(deviceID string) sensor.Source {
				return sensor.NewMQTTSource(client, deviceID)
			}
		}
	}
	devices := qibla.NewRegistry(sources, qibla.IdleInterval)
	defer devices.Close()

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	RegisterRoutes(r, cfg, Services{
		Store:    store,
		Quran:    quranSvc,
		Prayers:  prayerSvc,
		Devices:  devices,
		Sessions: session.NewManager(offline),
		Shell:    InitShell(ctx, cfg),
		Weather:  weather.NewClient(remote.NewClient(remoteTimeout, remoteRateLimit), cfg.WeatherAPIURL),
	})

	srv := &http.Server{Addr: cfg.ServerAddress, Handler: r}
	go func() {
		log.Info().Str("address", cfg.ServerAddress).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
