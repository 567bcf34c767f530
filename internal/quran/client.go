// Package quran serves the surah catalog, mushaf pages and recitation audio
// metadata.
package quran

import (
	"context"
	"fmt"
	"strings"

	"github.com/Nixie-Tech-LLC/sakina/internal/model"
	"github.com/Nixie-Tech-LLC/sakina/internal/remote"
)

const edition = "quran-uthmani"

// Client talks to the alquran.cloud API.
type Client struct {
	api     *remote.Client
	baseURL string
}

func NewClient(api *remote.Client, baseURL string) *Client {
	return &Client{api: api, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (c *Client) Surahs(ctx context.Context) ([]model.Surah, error) {
	var resp struct {
		Data []model.Surah `json:"data"`
	}
	if err := c.api.GetJSON(ctx, c.baseURL+"/surah", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) Page(ctx context.Context, page int) (model.QuranPage, error) {
	var resp struct {
		Data struct {
			Ayahs []model.Ayah `json:"ayahs"`
		} `json:"data"`
	}
	u := fmt.Sprintf("%s/page/%d/%s", c.baseURL, page, edition)
	if err := c.api.GetJSON(ctx, u, &resp); err != nil {
		return model.QuranPage{}, err
	}
	return model.QuranPage{Number: page, Ayahs: resp.Data.Ayahs}, nil
}
