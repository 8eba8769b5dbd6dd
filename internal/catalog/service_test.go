package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animehub/internal/anilist"
)

type fakeFetcher struct {
	homeCalls   int
	searchCalls int
	fail        bool
}

func (f *fakeFetcher) Home(ctx context.Context, t, p, u int) (*anilist.HomeData, error) {
	f.homeCalls++
	if f.fail {
		return nil, errors.New("network down")
	}
	return &anilist.HomeData{
		Trending: anilist.MediaPage{
			PageInfo: anilist.PageInfo{HasNextPage: true},
			Media:    []anilist.Media{{ID: t * 100}},
		},
	}, nil
}

func (f *fakeFetcher) Search(ctx context.Context, text string, page int) (*anilist.MediaPage, error) {
	f.searchCalls++
	if f.fail {
		return nil, errors.New("network down")
	}
	return &anilist.MediaPage{Media: []anilist.Media{{ID: 1}}}, nil
}

func (f *fakeFetcher) Filter(ctx context.Context, p anilist.FilterParams) (*anilist.MediaPage, error) {
	if f.fail {
		return nil, errors.New("network down")
	}
	return &anilist.MediaPage{Media: []anilist.Media{{ID: 2}}}, nil
}

func (f *fakeFetcher) AnimeDetail(ctx context.Context, id int) (*anilist.MediaDetail, error) {
	if f.fail {
		return nil, errors.New("network down")
	}
	return &anilist.MediaDetail{Media: anilist.Media{ID: id}}, nil
}

func (f *fakeFetcher) CharacterDetail(ctx context.Context, id int) (*anilist.CharacterDetail, error) {
	if f.fail {
		return nil, errors.New("network down")
	}
	return &anilist.CharacterDetail{ID: id}, nil
}

func (f *fakeFetcher) StudioDetail(ctx context.Context, p anilist.StudioParams) (*anilist.StudioDetail, error) {
	if f.fail {
		return nil, errors.New("network down")
	}
	return &anilist.StudioDetail{ID: p.ID}, nil
}

func TestHomeCachesByPageTriple(t *testing.T) {
	f := &fakeFetcher{}
	svc := NewService(f)
	ctx := context.Background()

	first := svc.Home(ctx, 1, 1, 1)
	require.NotNil(t, first)
	assert.Equal(t, 1, f.homeCalls)

	// Same triple: served from cache
	second := svc.Home(ctx, 1, 1, 1)
	assert.Same(t, first, second)
	assert.Equal(t, 1, f.homeCalls)

	// Different triple: a fresh fetch
	third := svc.Home(ctx, 2, 1, 1)
	require.NotNil(t, third)
	assert.Equal(t, 2, f.homeCalls)
}

func TestHomeFailureReturnsNil(t *testing.T) {
	f := &fakeFetcher{fail: true}
	svc := NewService(f)

	assert.Nil(t, svc.Home(context.Background(), 1, 1, 1))

	// Failures are not cached
	f.fail = false
	assert.NotNil(t, svc.Home(context.Background(), 1, 1, 1))
	assert.Equal(t, 2, f.homeCalls)
}

func TestSearchIsNeverCached(t *testing.T) {
	f := &fakeFetcher{}
	svc := NewService(f)
	ctx := context.Background()

	svc.Search(ctx, "naruto", 1)
	svc.Search(ctx, "naruto", 1)
	assert.Equal(t, 2, f.searchCalls)
}

func TestSearchFailureReturnsEmptyPage(t *testing.T) {
	svc := NewService(&fakeFetcher{fail: true})

	page := svc.Search(context.Background(), "naruto", 1)
	require.NotNil(t, page)
	assert.Empty(t, page.Media)
	assert.False(t, page.PageInfo.HasNextPage)
}

func TestDetailFailuresReturnNil(t *testing.T) {
	svc := NewService(&fakeFetcher{fail: true})
	ctx := context.Background()

	assert.Nil(t, svc.Filter(ctx, anilist.FilterParams{Page: 1}))
	assert.Nil(t, svc.AnimeDetail(ctx, 1))
	assert.Nil(t, svc.CharacterDetail(ctx, 1))
	assert.Nil(t, svc.StudioDetail(ctx, anilist.StudioParams{ID: 1}))
}

func TestLRUCacheEvictsOldest(t *testing.T) {
	c := newLRUCache(2)

	a := &anilist.HomeData{}
	b := &anilist.HomeData{}
	d := &anilist.HomeData{}

	c.Add("a", a)
	c.Add("b", b)

	// Touch "a" so "b" becomes the eviction candidate
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Add("d", d)
	assert.Equal(t, 2, c.Len())

	_, ok = c.Get("b")
	assert.False(t, ok)
	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Same(t, a, got)
}
