package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animehub/internal/anilist"
	"animehub/internal/api/handler"
	"animehub/internal/catalog"
)

type stubFetcher struct {
	home         *anilist.HomeData
	search       *anilist.MediaPage
	studio       *anilist.StudioDetail
	studioParams anilist.StudioParams
	homeCalls    int
	fail         bool
}

func (f *stubFetcher) Home(ctx context.Context, trendingPage, popularPage, upcomingPage int) (*anilist.HomeData, error) {
	f.homeCalls++
	if f.fail {
		return nil, errors.New("upstream down")
	}
	return f.home, nil
}

func (f *stubFetcher) Search(ctx context.Context, text string, page int) (*anilist.MediaPage, error) {
	if f.fail {
		return nil, errors.New("upstream down")
	}
	return f.search, nil
}

func (f *stubFetcher) Filter(ctx context.Context, p anilist.FilterParams) (*anilist.MediaPage, error) {
	if f.fail {
		return nil, errors.New("upstream down")
	}
	return f.search, nil
}

func (f *stubFetcher) AnimeDetail(ctx context.Context, id int) (*anilist.MediaDetail, error) {
	return nil, errors.New("upstream down")
}

func (f *stubFetcher) CharacterDetail(ctx context.Context, id int) (*anilist.CharacterDetail, error) {
	return nil, errors.New("upstream down")
}

func (f *stubFetcher) StudioDetail(ctx context.Context, p anilist.StudioParams) (*anilist.StudioDetail, error) {
	f.studioParams = p
	if f.studio == nil {
		return nil, errors.New("upstream down")
	}
	return f.studio, nil
}

func setupCatalogRouter(fetcher *stubFetcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewCatalogHandler(catalog.NewService(fetcher))
	h.RegisterRoutes(r.Group("/api/v1/catalog"))
	return r
}

func TestCatalogHomeCachesPageTriple(t *testing.T) {
	fetcher := &stubFetcher{home: &anilist.HomeData{
		Trending: anilist.MediaPage{Media: []anilist.Media{{ID: 1}}},
	}}
	router := setupCatalogRouter(fetcher)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/home?trending_page=1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 1, fetcher.homeCalls)
}

func TestCatalogHomeUpstreamFailureIs200Empty(t *testing.T) {
	fetcher := &stubFetcher{fail: true}
	router := setupCatalogRouter(fetcher)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/home", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var data anilist.HomeData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
	assert.Empty(t, data.Trending.Media)
}

func TestCatalogSearchFailureIsEmptyPage(t *testing.T) {
	fetcher := &stubFetcher{fail: true}
	router := setupCatalogRouter(fetcher)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/search?q=bebop", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var page anilist.MediaPage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Empty(t, page.Media)
}

func TestCatalogStudioForwardsSort(t *testing.T) {
	fetcher := &stubFetcher{studio: &anilist.StudioDetail{ID: 11, Name: "Madhouse"}}
	router := setupCatalogRouter(fetcher)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/studio/11?page=2&sort=SCORE_DESC", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 11, fetcher.studioParams.ID)
	assert.Equal(t, 2, fetcher.studioParams.Page)
	assert.Equal(t, anilist.SortScore, fetcher.studioParams.Sort)
}

func TestCatalogStudioDropsUnknownSort(t *testing.T) {
	fetcher := &stubFetcher{studio: &anilist.StudioDetail{ID: 11, Name: "Madhouse"}}
	router := setupCatalogRouter(fetcher)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/studio/11?sort=SHOE_SIZE_ASC", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, fetcher.studioParams.Sort)
}

func TestCatalogDetailInvalidID(t *testing.T) {
	router := setupCatalogRouter(&stubFetcher{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/anime/not-a-number", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
