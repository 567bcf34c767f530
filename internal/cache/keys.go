package cache

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Nixie-Tech-LLC/sakina/internal/model"
)

const (
	// CatalogKey holds the surah index for the lifetime of the install.
	CatalogKey = "surah_list_simple"

	pagePrefix    = "quran_page_"
	timingsPrefix = "prayers_"
	sessionPrefix = "session_"
)

// PageKey is the permanent key of one mushaf page.
func PageKey(page int) string {
	return pagePrefix + strconv.Itoa(page)
}

// TimingsKey buckets a location to two decimals (about 1 km) and scopes it to
// the day of month and zero-based month. The year is not part of the key.
func TimingsKey(p model.GeoPoint, day time.Time) string {
	return fmt.Sprintf("%s%s_%s_%d_%d",
		timingsPrefix,
		fixed2(p.Latitude),
		fixed2(p.Longitude),
		day.Day(),
		int(day.Month())-1,
	)
}

// fixed2 formats x with two decimals, rounding exact halves away from zero
// rather than to even, so 21.125 buckets as "21.13".
func fixed2(x float64) string {
	s := strconv.FormatFloat(math.Floor(math.Abs(x)*100+0.5)/100, 'f', 2, 64)
	if x < 0 {
		return "-" + s
	}
	return s
}

func SessionKey(userID int) string {
	return sessionPrefix + strconv.Itoa(userID)
}

func datasetOf(key string) string {
	switch {
	case key == CatalogKey:
		return "catalog"
	case strings.HasPrefix(key, pagePrefix):
		return "page"
	case strings.HasPrefix(key, timingsPrefix):
		return "timings"
	case strings.HasPrefix(key, sessionPrefix):
		return "session"
	default:
		return "other"
	}
}
