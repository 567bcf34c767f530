// Package weather fetches current conditions from open-meteo.
package weather

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/Nixie-Tech-LLC/sakina/internal/model"
	"github.com/Nixie-Tech-LLC/sakina/internal/remote"
)

const currentFields = "temperature_2m,relative_humidity_2m,is_day,weather_code,wind_speed_10m"

type Client struct {
	api     *remote.Client
	baseURL string
}

func NewClient(api *remote.Client, baseURL string) *Client {
	return &Client{api: api, baseURL: strings.TrimSuffix(baseURL, "/")}
}

type forecastResponse struct {
	Current *struct {
		Temperature float64 `json:"temperature_2m"`
		Humidity    float64 `json:"relative_humidity_2m"`
		IsDay       int     `json:"is_day"`
		Code        int     `json:"weather_code"`
		WindSpeed   float64 `json:"wind_speed_10m"`
	} `json:"current"`
}

// Current returns the conditions at p right now.
func (c *Client) Current(ctx context.Context, p model.GeoPoint) (model.Weather, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(p.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(p.Longitude, 'f', -1, 64))
	q.Set("current", currentFields)
	q.Set("timezone", "auto")

	var resp forecastResponse
	if err := c.api.GetJSON(ctx, c.baseURL+"/forecast?"+q.Encode(), &resp); err != nil {
		return model.Weather{}, err
	}
	if resp.Current == nil {
		return model.Weather{}, errors.New("forecast response has no current conditions")
	}

	cur := resp.Current
	text, icon := Describe(cur.Code)
	return model.Weather{
		Location:    p,
		Temperature: cur.Temperature,
		Humidity:    cur.Humidity,
		WindSpeed:   cur.WindSpeed,
		IsDay:       cur.IsDay == 1,
		Code:        cur.Code,
		Description: text,
		Icon:        icon,
	}, nil
}

// Describe maps a WMO weather code to an Arabic label and an icon name.
// Codes outside the known ranges read as mild.
func Describe(code int) (string, string) {
	switch {
	case code == 0:
		return "سماء صافية", "Sun"
	case code >= 1 && code <= 3:
		return "غائم جزئياً", "CloudSun"
	case code >= 45 && code <= 48:
		return "ضباب", "CloudFog"
	case code >= 51 && code <= 67:
		return "ممطر", "CloudRain"
	case code >= 71 && code <= 77:
		return "ثلج", "Snowflake"
	case code >= 95:
		return "عاصفة رعدية", "CloudLightning"
	default:
		return "معتدل", "Sun"
	}
}
