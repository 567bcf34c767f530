package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/sakina/internal/cache"
	"github.com/Nixie-Tech-LLC/sakina/internal/config"
	"github.com/Nixie-Tech-LLC/sakina/internal/prayer"
	"github.com/Nixie-Tech-LLC/sakina/internal/qibla"
	"github.com/Nixie-Tech-LLC/sakina/internal/quran"
	"github.com/Nixie-Tech-LLC/sakina/internal/remote"
	"github.com/Nixie-Tech-LLC/sakina/internal/session"
	"github.com/Nixie-Tech-LLC/sakina/internal/weather"
)

func TestRegisterRoutesWithoutDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)

	web := t.TempDir()
	for name, body := range map[string]string{
		"index.html":    "<html>sakina</html>",
		"manifest.json": `{"name":"Sakina"}`,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(web, name), []byte(body), 0644))
	}

	cfg := &config.Config{
		JWTSecret:     "s3cret",
		ShellVersion:  "v2",
		ShellRoot:     web,
		ShellCacheDir: t.TempDir(),
	}
	offline := cache.New(cache.NewMemoryStore())
	api := remote.NewClient(time.Second, 1)
	devices := qibla.NewRegistry(qibla.PushSources, time.Hour)
	defer devices.Close()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	r := gin.New()
	RegisterRoutes(r, cfg, Services{
		Quran:    quran.NewService(offline, quran.NewClient(api, "http://127.0.0.1:1")),
		Prayers:  prayer.NewService(offline, prayer.NewClient(api, "http://127.0.0.1:1", prayer.DefaultMethod)),
		Devices:  devices,
		Sessions: session.NewManager(offline),
		Shell:    InitShell(ctx, cfg),
		Weather:  weather.NewClient(api, "http://127.0.0.1:1"),
	})

	get := func(target string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		return w
	}

	assert.Equal(t, http.StatusOK, get("/metrics").Code)
	assert.Equal(t, http.StatusOK, get("/api/qibla?lat=51.5&lng=-0.12").Code)

	w := get("/api/weather?lat=51.5&lng=-0.12")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())

	w = get("/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<html>sakina</html>", w.Body.String())

	// account routes are not mounted without a database
	assert.Equal(t, http.StatusNotFound, get("/api/me/session").Code)
}
