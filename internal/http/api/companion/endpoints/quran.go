package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/sakina/internal/http/api"
	"github.com/Nixie-Tech-LLC/sakina/internal/http/api/companion/packets"
	"github.com/Nixie-Tech-LLC/sakina/internal/model"
	"github.com/Nixie-Tech-LLC/sakina/internal/quran"
)

type QuranController struct {
	quran *quran.Service
}

func newQuranController(svc *quran.Service) *QuranController {
	return &QuranController{quran: svc}
}

// QuranModule mounts the public mushaf and recitation endpoints
func QuranModule(svc *quran.Service) api.Module {
	ctl := newQuranController(svc)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/quran/surahs", ctl.listSurahs)
		c.PUBLIC_GET("/quran/surahs/:number/start-page", ctl.surahStartPage)
		c.PUBLIC_GET("/quran/pages/:page", ctl.getPage)
		c.PUBLIC_GET("/quran/reciters", ctl.listReciters)
		c.PUBLIC_GET("/quran/reciters/:id/surahs/:number", ctl.surahTrack)
	})
}

func surahParam(ctx *gin.Context) (int, *api.APIError) {
	n, err := strconv.Atoi(ctx.Param("number"))
	if err != nil || n < 1 || n > 114 {
		return 0, api.NewError(http.StatusBadRequest, "surah must be a number between 1 and 114")
	}
	return n, nil
}

// GET /api/quran/surahs
// An unreachable provider yields an empty list, not an error.
func (q *QuranController) listSurahs(ctx *gin.Context) (any, *api.APIError) {
	surahs, _ := q.quran.Catalog(ctx.Request.Context())
	return surahs, nil
}

// GET /api/quran/surahs/:number/start-page
func (q *QuranController) surahStartPage(ctx *gin.Context) (any, *api.APIError) {
	n, apiErr := surahParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	return packets.SurahStartPageResponse{Surah: n, Page: quran.SurahStartPage(n)}, nil
}

// GET /api/quran/pages/:page
func (q *QuranController) getPage(ctx *gin.Context) (any, *api.APIError) {
	n, err := strconv.Atoi(ctx.Param("page"))
	if err != nil {
		return nil, api.NewError(http.StatusBadRequest, "page must be a number")
	}
	if n < 1 || n > quran.Pages {
		return nil, api.NewError(http.StatusNotFound, "page out of range")
	}

	page, ok := q.quran.Page(ctx.Request.Context(), n)
	if !ok {
		return nil, api.NewError(http.StatusServiceUnavailable, "page unavailable")
	}
	return page, nil
}

// GET /api/quran/reciters
func (q *QuranController) listReciters(_ *gin.Context) (any, *api.APIError) {
	return quran.Reciters, nil
}

// GET /api/quran/reciters/:id/surahs/:number
func (q *QuranController) surahTrack(ctx *gin.Context) (any, *api.APIError) {
	reciter, ok := quran.FindReciter(ctx.Param("id"))
	if !ok {
		return nil, api.NewError(http.StatusNotFound, "unknown reciter")
	}
	n, apiErr := surahParam(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	surah := model.Surah{Number: n}
	if surahs, ok := q.quran.Catalog(ctx.Request.Context()); ok {
		for _, s := range surahs {
			if s.Number == n {
				surah = s
				break
			}
		}
	}
	return quran.SurahTrack(reciter, surah), nil
}
