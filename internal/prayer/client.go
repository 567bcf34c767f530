package prayer

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Nixie-Tech-LLC/sakina/internal/model"
	"github.com/Nixie-Tech-LLC/sakina/internal/remote"
)

// DefaultMethod is the aladhan calculation method (Muslim World League).
const DefaultMethod = 3

// Client talks to the aladhan timings API.
type Client struct {
	api     *remote.Client
	baseURL string
	method  int
}

func NewClient(api *remote.Client, baseURL string, method int) *Client {
	if method <= 0 {
		method = DefaultMethod
	}
	return &Client{api: api, baseURL: strings.TrimSuffix(baseURL, "/"), method: method}
}

type timingsResponse struct {
	Code int `json:"code"`
	Data struct {
		Timings map[string]string `json:"timings"`
		Meta    struct {
			Timezone string `json:"timezone"`
		} `json:"meta"`
	} `json:"data"`
}

// Timings fetches the five canonical timings for day at p.
func (c *Client) Timings(ctx context.Context, p model.GeoPoint, day time.Time) (model.PrayerTimeSet, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(p.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(p.Longitude, 'f', -1, 64))
	q.Set("method", strconv.Itoa(c.method))
	u := fmt.Sprintf("%s/timings/%d-%d-%d?%s", c.baseURL, day.Day(), int(day.Month()), day.Year(), q.Encode())

	var resp timingsResponse
	if err := c.api.GetJSON(ctx, u, &resp); err != nil {
		return model.PrayerTimeSet{}, err
	}

	set := model.PrayerTimeSet{
		Date:     time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
		Location: p,
		Timezone: resp.Data.Meta.Timezone,
	}
	for i, name := range model.PrayerNames {
		raw, ok := resp.Data.Timings[name]
		if !ok {
			return model.PrayerTimeSet{}, fmt.Errorf("timings response is missing %s", name)
		}
		clock, err := ParseClock(raw)
		if err != nil {
			return model.PrayerTimeSet{}, fmt.Errorf("%s: %w", name, err)
		}
		set.Prayers[i] = model.Prayer{Name: name, Time: clock}
	}
	return set, nil
}
