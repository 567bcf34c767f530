// Package shell serves the web client's static assets cache-first so the app
// stays usable offline.
package shell

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Nixie-Tech-LLC/sakina/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Manifest is the asset list fetched on Install.
var Manifest = []string{"/", "/index.html", "/manifest.json"}

const fallbackPage = "/index.html"

var responses = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "sakina_shell_responses_total",
	Help: "Asset shell responses by where they were served from.",
}, []string{"source"})

func init() {
	prometheus.MustRegister(responses)
}

type Shell struct {
	storage  storage.Storage
	origin   Fetcher
	version  string
	manifest []string
}

func New(st storage.Storage, origin Fetcher, version string) *Shell {
	return &Shell{
		storage:  st,
		origin:   origin,
		version:  version,
		manifest: Manifest,
	}
}

func (s *Shell) StaticStore() string  { return "sakina-cache-" + s.version }
func (s *Shell) DynamicStore() string { return "sakina-dynamic-" + s.version }

// Install fetches every manifest entry into the static store. A single
// failed entry fails the whole install.
func (s *Shell) Install(ctx context.Context) error {
	for _, p := range s.manifest {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p, nil)
		if err != nil {
			return err
		}
		resp, err := s.origin.Fetch(ctx, req)
		if err != nil {
			return fmt.Errorf("install %s: %w", p, err)
		}
		if resp.Status != http.StatusOK {
			return fmt.Errorf("install %s: origin returned %d", p, resp.Status)
		}
		if err := s.storage.Put(ctx, s.StaticStore(), p, resp); err != nil {
			return fmt.Errorf("install %s: %w", p, err)
		}
	}
	log.Info().Str("store", s.StaticStore()).Int("assets", len(s.manifest)).Msg("shell installed")
	return nil
}

// Activate removes every store left behind by other versions.
func (s *Shell) Activate(ctx context.Context) error {
	stores, err := s.storage.Stores(ctx)
	if err != nil {
		return err
	}
	for _, name := range stores {
		if name == s.StaticStore() || name == s.DynamicStore() {
			continue
		}
		if err := s.storage.Delete(ctx, name); err != nil {
			return fmt.Errorf("delete store %s: %w", name, err)
		}
		log.Info().Str("store", name).Msg("removed stale shell store")
	}
	return nil
}

// Serve answers r from the stores or the origin. It reports false for /api
// paths, which the shell leaves to the API routes.
func (s *Shell) Serve(ctx context.Context, r *http.Request) (*storage.Response, bool) {
	if strings.HasPrefix(r.URL.Path, "/api") {
		return nil, false
	}
	key := r.URL.RequestURI()

	if r.Method == http.MethodGet {
		if resp, ok := s.lookup(ctx, key); ok {
			return resp, true
		}
	}

	resp, err := s.origin.Fetch(ctx, r)
	if err == nil {
		if r.Method == http.MethodGet && resp.Status == http.StatusOK {
			if err := s.storage.Put(ctx, s.DynamicStore(), key, resp); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("failed to store dynamic asset")
			}
		}
		responses.WithLabelValues("network").Inc()
		return resp, true
	}

	log.Debug().Err(err).Str("path", key).Msg("origin unreachable")
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		if page, ok := s.get(ctx, s.StaticStore(), fallbackPage); ok {
			responses.WithLabelValues("fallback").Inc()
			return page, true
		}
	}
	responses.WithLabelValues("unavailable").Inc()
	return &storage.Response{
		Status: http.StatusGatewayTimeout,
		Header: http.Header{"Content-Type": []string{"text/plain; charset=utf-8"}},
		Body:   []byte("offline"),
	}, true
}

func (s *Shell) lookup(ctx context.Context, key string) (*storage.Response, bool) {
	if resp, ok := s.get(ctx, s.StaticStore(), key); ok {
		responses.WithLabelValues("static").Inc()
		return resp, true
	}
	if resp, ok := s.get(ctx, s.DynamicStore(), key); ok {
		responses.WithLabelValues("dynamic").Inc()
		return resp, true
	}
	return nil, false
}

// get treats storage errors as misses.
func (s *Shell) get(ctx context.Context, store, key string) (*storage.Response, bool) {
	resp, ok, err := s.storage.Get(ctx, store, key)
	if err != nil {
		log.Warn().Err(err).Str("store", store).Str("key", key).Msg("shell store read failed")
		return nil, false
	}
	return resp, ok
}

// Handler is meant for gin's NoRoute.
func (s *Shell) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, ok := s.Serve(c.Request.Context(), c.Request)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"code": http.StatusNotFound, "message": "not found"})
			return
		}
		for k, vs := range resp.Header {
			if k == "Content-Length" {
				continue
			}
			for _, v := range vs {
				c.Writer.Header().Add(k, v)
			}
		}
		c.Data(resp.Status, resp.Header.Get("Content-Type"), resp.Body)
	}
}
