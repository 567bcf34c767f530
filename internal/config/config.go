package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	CacheMemory   = "memory"
	CacheRedis    = "redis"
	CachePostgres = "postgres"
)

// Config holds environment-based settings
type Config struct {
	Environment    string
	LogLevel       string
	ServerAddress  string
	JWTSecret      string
	DatabaseURL    string
	MigrationsPath string

	CacheBackend  string
	RedisAddress  string
	RedisUsername string
	RedisPassword string

	MQTTBrokerURL string

	QuranAPIURL   string
	PrayerAPIURL  string
	PrayerMethod  int
	WeatherAPIURL string

	ShellVersion    string
	ShellRoot       string
	ShellOrigin     string
	ShellCacheDir   string
	UseSpaces       bool
	SpacesEndpoint  string
	SpacesRegion    string
	SpacesBucket    string
	SpacesAccessKey string
	SpacesSecretKey string
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads configuration from environment variables, after loading an
// optional .env file from the working directory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Environment:    getenv("APP_ENV", "production"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		ServerAddress:  getenv("SERVER_ADDRESS", ":8080"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrationsPath: getenv("MIGRATIONS_PATH", "./migrations"),

		CacheBackend:  getenv("CACHE_BACKEND", CacheMemory),
		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),

		QuranAPIURL:   getenv("QURAN_API_URL", "https://api.alquran.cloud/v1"),
		PrayerAPIURL:  getenv("PRAYER_API_URL", "https://api.aladhan.com/v1"),
		WeatherAPIURL: getenv("WEATHER_API_URL", "https://api.open-meteo.com/v1"),

		ShellVersion:    getenv("SHELL_VERSION", "v2"),
		ShellRoot:       getenv("SHELL_ROOT", "./web"),
		ShellOrigin:     os.Getenv("SHELL_ORIGIN"),
		ShellCacheDir:   getenv("SHELL_CACHE_DIR", "./shell-cache"),
		UseSpaces:       os.Getenv("USE_SPACES") == "true",
		SpacesEndpoint:  os.Getenv("SPACES_ENDPOINT"),
		SpacesRegion:    os.Getenv("SPACES_REGION"),
		SpacesBucket:    os.Getenv("SPACES_BUCKET"),
		SpacesAccessKey: os.Getenv("SPACES_ACCESS_KEY"),
		SpacesSecretKey: os.Getenv("SPACES_SECRET_KEY"),
	}

	method, err := strconv.Atoi(getenv("PRAYER_METHOD", "3"))
	if err != nil {
		return nil, fmt.Errorf("PRAYER_METHOD must be an integer: %w", err)
	}
	cfg.PrayerMethod = method

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.CacheBackend {
	case CacheMemory:
	case CacheRedis:
		if c.RedisAddress == "" {
			return fmt.Errorf("REDIS_ADDRESS is required when CACHE_BACKEND=redis")
		}
	case CachePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when CACHE_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.CacheBackend)
	}
	if c.UseSpaces && (c.SpacesEndpoint == "" || c.SpacesBucket == "") {
		return fmt.Errorf("SPACES_ENDPOINT and SPACES_BUCKET are required when USE_SPACES=true")
	}
	return nil
}

// SetupLogging applies LOG_LEVEL and switches to console output in development.
func (c *Config) SetupLogging() {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if c.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
