package quran

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/sakina/internal/cache"
	"github.com/Nixie-Tech-LLC/sakina/internal/model"
	"github.com/Nixie-Tech-LLC/sakina/internal/remote"
)

type fakeSource struct {
	surahCalls int
	pageCalls  map[int]int
	fail       bool
}

func (f *fakeSource) Surahs(context.Context) ([]model.Surah, error) {
	f.surahCalls++
	if f.fail {
		return nil, errors.New("offline")
	}
	return []model.Surah{{Number: 1, EnglishName: "Al-Faatiha", NumberOfAyahs: 7}}, nil
}

func (f *fakeSource) Page(_ context.Context, page int) (model.QuranPage, error) {
	if f.pageCalls == nil {
		f.pageCalls = map[int]int{}
	}
	f.pageCalls[page]++
	if f.fail {
		return model.QuranPage{}, errors.New("offline")
	}
	return model.QuranPage{Number: page, Ayahs: []model.Ayah{{Number: 1, Page: page, Text: "..."}}}, nil
}

func TestCatalog(t *testing.T) {
	src := &fakeSource{}
	svc := NewService(cache.New(cache.NewMemoryStore()), src)

	list, ok := svc.Catalog(context.Background())
	require.True(t, ok)
	assert.Len(t, list, 1)

	_, ok = svc.Catalog(context.Background())
	require.True(t, ok)
	assert.Equal(t, 1, src.surahCalls)
}

func TestCatalog_OfflineIsEmptyList(t *testing.T) {
	svc := NewService(cache.New(cache.NewMemoryStore()), &fakeSource{fail: true})
	list, ok := svc.Catalog(context.Background())
	assert.False(t, ok)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestPage(t *testing.T) {
	src := &fakeSource{}
	svc := NewService(cache.New(cache.NewMemoryStore()), src)
	ctx := context.Background()

	p, ok := svc.Page(ctx, 50)
	require.True(t, ok)
	assert.Equal(t, 50, p.Number)

	svc.Page(ctx, 50)
	assert.Equal(t, 1, src.pageCalls[50])

	for _, bad := range []int{0, -1, 605} {
		p, ok := svc.Page(ctx, bad)
		assert.False(t, ok)
		assert.Nil(t, p)
	}
	assert.Len(t, src.pageCalls, 1, "out of range pages never reach the network")
}

func TestClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/surah":
			w.Write([]byte(`{"code":200,"data":[{"number":1,"name":"سُورَةُ ٱلْفَاتِحَةِ","englishName":"Al-Faatiha","numberOfAyahs":7,"revelationType":"Meccan"}]}`))
		case "/v1/page/1/quran-uthmani":
			w.Write([]byte(`{"code":200,"data":{"number":1,"ayahs":[{"number":1,"text":"بِسْمِ","numberInSurah":1,"juz":1,"page":1,"surah":{"number":1,"englishName":"Al-Faatiha"}}]}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(remote.NewClient(time.Second, 100), srv.URL+"/v1")
	ctx := context.Background()

	surahs, err := c.Surahs(ctx)
	require.NoError(t, err)
	require.Len(t, surahs, 1)
	assert.Equal(t, "Meccan", surahs[0].RevelationType)

	page, err := c.Page(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	require.Len(t, page.Ayahs, 1)
	assert.Equal(t, "Al-Faatiha", page.Ayahs[0].Surah.EnglishName)

	_, err = c.Page(ctx, 2)
	assert.Error(t, err)
}
