package quran

import (
	"context"

	"github.com/Nixie-Tech-LLC/sakina/internal/cache"
	"github.com/Nixie-Tech-LLC/sakina/internal/model"
)

// Pages is the page count of the Madani mushaf.
const Pages = 604

// Source is the remote catalog and page-text fetch.
type Source interface {
	Surahs(ctx context.Context) ([]model.Surah, error)
	Page(ctx context.Context, page int) (model.QuranPage, error)
}

type Service struct {
	cache  *cache.Cache
	source Source
}

func NewService(c *cache.Cache, source Source) *Service {
	return &Service{cache: c, source: source}
}

// Catalog returns the surah index. On failure the list is empty, never nil.
func (s *Service) Catalog(ctx context.Context) ([]model.Surah, bool) {
	surahs, ok := cache.Fetch(ctx, s.cache, cache.CatalogKey, s.source.Surahs)
	if !ok || surahs == nil {
		return []model.Surah{}, ok
	}
	return surahs, true
}

// Page returns one mushaf page. Pages outside 1..604 are absent without a
// network call.
func (s *Service) Page(ctx context.Context, page int) (*model.QuranPage, bool) {
	if page < 1 || page > Pages {
		return nil, false
	}
	p, ok := cache.Fetch(ctx, s.cache, cache.PageKey(page), func(ctx context.Context) (model.QuranPage, error) {
		return s.source.Page(ctx, page)
	})
	if !ok {
		return nil, false
	}
	return &p, true
}
