// Package remote is the HTTP plumbing shared by the upstream API clients.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const userAgent = "Sakina/1.0"

// StatusError is returned for any non-2xx upstream response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Code)
}

type Client struct {
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient allows rps requests per second with a burst of the same size.
// The timeout covers the whole request, body included.
func NewClient(timeout time.Duration, rps float64) *Client {
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// GetJSON issues a GET and decodes the body into out.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	log.Debug().Str("url", url).Int("status", resp.StatusCode).Dur("took", time.Since(start)).Msg("upstream request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{URL: url, Code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
