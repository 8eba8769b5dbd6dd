package browse

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"animehub/internal/anilist"
	"animehub/internal/watchstatus"
)

func mediaRange(from, to int) []anilist.Media {
	var out []anilist.Media
	for id := from; id <= to; id++ {
		out = append(out, anilist.Media{ID: id, Title: anilist.MediaTitle{English: fmt.Sprintf("anime-%d", id)}})
	}
	return out
}

type fakeCatalog struct {
	mu          sync.Mutex
	homeCalls   int
	searchCalls int
	filterCalls int

	homeFn   func(trendingPage, popularPage, upcomingPage int) *anilist.HomeData
	searchFn func(text string, page int) *anilist.MediaPage
	filterFn func(p anilist.FilterParams) *anilist.MediaPage
	detailFn func(id int) *anilist.MediaDetail
}

func (c *fakeCatalog) Home(ctx context.Context, t, p, u int) *anilist.HomeData {
	c.mu.Lock()
	c.homeCalls++
	c.mu.Unlock()
	if c.homeFn == nil {
		return nil
	}
	return c.homeFn(t, p, u)
}

func (c *fakeCatalog) Search(ctx context.Context, text string, page int) *anilist.MediaPage {
	c.mu.Lock()
	c.searchCalls++
	c.mu.Unlock()
	if c.searchFn == nil {
		return &anilist.MediaPage{}
	}
	return c.searchFn(text, page)
}

func (c *fakeCatalog) Filter(ctx context.Context, p anilist.FilterParams) *anilist.MediaPage {
	c.mu.Lock()
	c.filterCalls++
	c.mu.Unlock()
	if c.filterFn == nil {
		return nil
	}
	return c.filterFn(p)
}

func (c *fakeCatalog) AnimeDetail(ctx context.Context, id int) *anilist.MediaDetail {
	if c.detailFn == nil {
		return nil
	}
	return c.detailFn(id)
}

func (c *fakeCatalog) calls() (home, search, filter int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.homeCalls, c.searchCalls, c.filterCalls
}

type fakeUsers struct {
	userID  string
	loading bool
}

func (u *fakeUsers) CurrentUserID() (string, bool) { return u.userID, u.userID != "" }
func (u *fakeUsers) IsLoading() bool               { return u.loading }

type fakeStore struct {
	mu        sync.Mutex
	records   map[int]BookmarkRecord
	order     []int
	setCalls  int
	listCalls int
	fail      bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[int]BookmarkRecord{}}
}

func (s *fakeStore) Status(ctx context.Context, animeID int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return "", errors.New("store down")
	}
	if rec, ok := s.records[animeID]; ok {
		return rec.Status, nil
	}
	return "", nil
}

func (s *fakeStore) SetStatus(ctx context.Context, anime anilist.Media, status string) (*BookmarkRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCalls++
	if s.fail {
		return nil, errors.New("store down")
	}
	if _, ok := s.records[anime.ID]; !ok {
		s.order = append(s.order, anime.ID)
	}
	rec := BookmarkRecord{
		AnimeID:    anime.ID,
		AnimeTitle: anime.Title.Display(),
		Status:     status,
		CreatedAt:  time.Now(),
	}
	s.records[anime.ID] = rec
	return &rec, nil
}

func (s *fakeStore) Remove(ctx context.Context, animeID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("store down")
	}
	delete(s.records, animeID)
	return nil
}

func (s *fakeStore) ListAll(ctx context.Context) ([]BookmarkRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	if s.fail {
		return nil, errors.New("store down")
	}
	var out []BookmarkRecord
	for i := len(s.order) - 1; i >= 0; i-- {
		if rec, ok := s.records[s.order[i]]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Failure(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, msg)
}

func TestSectionMergeKeepsFirstArrival(t *testing.T) {
	s := newSection(SectionTrending)

	gen, page, ok := s.BeginLoad()
	require.True(t, ok)
	assert.Equal(t, 1, page)
	first := []anilist.Media{{ID: 1, Format: "TV"}, {ID: 2}, {ID: 3}}
	require.True(t, s.Apply(gen, first, true))

	gen, page, ok = s.BeginLoad()
	require.True(t, ok)
	assert.Equal(t, 2, page)
	// id 1 reappears with a different shape; the earlier entry must win
	overlap := []anilist.Media{{ID: 3}, {ID: 1, Format: "MOVIE"}, {ID: 4}}
	require.True(t, s.Apply(gen, overlap, false))

	items := s.Items()
	require.Len(t, items, 4)
	assert.Equal(t, []int{1, 2, 3, 4}, []int{items[0].ID, items[1].ID, items[2].ID, items[3].ID})
	assert.Equal(t, "TV", items[0].Format)
	assert.False(t, s.HasNext())
}

func TestSectionFailStepsCursorBack(t *testing.T) {
	s := newSection(SectionSearch)

	gen, _, _ := s.BeginLoad()
	require.True(t, s.Apply(gen, mediaRange(1, 3), true))

	gen, page, _ := s.BeginLoad()
	assert.Equal(t, 2, page)
	s.Fail(gen)

	assert.Equal(t, 1, s.Page())
	assert.Equal(t, StateLoaded, s.State())
	assert.Equal(t, 3, s.Len())

	// The retried load fetches the same page again
	_, page, _ = s.BeginLoad()
	assert.Equal(t, 2, page)
}

func TestLoadMoreAccumulatesMinusDuplicates(t *testing.T) {
	catalog := &fakeCatalog{
		homeFn: func(trendingPage, _, _ int) *anilist.HomeData {
			// Page 2 overlaps page 1 by two ids
			start := (trendingPage-1)*24 + 1
			if trendingPage > 1 {
				start -= 2
			}
			return &anilist.HomeData{
				Trending: anilist.MediaPage{
					PageInfo: anilist.PageInfo{HasNextPage: true},
					Media:    mediaRange(start, start+23),
				},
				Popular:  anilist.MediaPage{Media: mediaRange(1000, 1023)},
				Upcoming: anilist.MediaPage{Media: mediaRange(2000, 2023)},
			}
		},
	}
	f := NewFeed(catalog, nil, nil, nil)
	ctx := context.Background()

	f.LoadHome(ctx)
	assert.Len(t, f.Trending(), 24)
	page, hasNext, state := f.Section(SectionTrending)
	assert.Equal(t, 1, page)
	assert.True(t, hasNext)
	assert.Equal(t, StateLoaded, state)

	f.LoadMore(ctx, SectionTrending)
	items := f.Trending()
	assert.Len(t, items, 46) // 48 minus the two duplicate ids

	seen := map[int]bool{}
	for _, m := range items {
		assert.False(t, seen[m.ID], "duplicate id %d", m.ID)
		seen[m.ID] = true
	}

	// Popular and upcoming stayed at page 1
	page, _, _ = f.Section(SectionPopular)
	assert.Equal(t, 1, page)
}

func TestLoadMoreIsNoopWhileLoading(t *testing.T) {
	release := make(chan struct{})
	catalog := &fakeCatalog{}
	catalog.homeFn = func(trendingPage, _, _ int) *anilist.HomeData {
		if trendingPage > 1 {
			<-release
		}
		return &anilist.HomeData{
			Trending: anilist.MediaPage{PageInfo: anilist.PageInfo{HasNextPage: true}, Media: mediaRange(1, 24)},
		}
	}
	f := NewFeed(catalog, nil, nil, nil)
	ctx := context.Background()

	f.LoadHome(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		f.LoadMore(ctx, SectionTrending)
	}()

	// Wait for the in-flight load, then attempt a second one
	require.Eventually(t, func() bool {
		_, _, state := f.Section(SectionTrending)
		return state == StateLoading
	}, time.Second, time.Millisecond)

	f.LoadMore(ctx, SectionTrending)
	close(release)
	wg.Wait()

	home, _, _ := catalog.calls()
	assert.Equal(t, 2, home) // initial load plus exactly one load-more
}

func TestConcurrentLoadHomeBeginsNothingWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	catalog := &fakeCatalog{}
	catalog.homeFn = func(_, _, _ int) *anilist.HomeData {
		<-release
		return &anilist.HomeData{
			Trending: anilist.MediaPage{Media: mediaRange(1, 24)},
			Popular:  anilist.MediaPage{Media: mediaRange(100, 123)},
			Upcoming: anilist.MediaPage{Media: mediaRange(200, 223)},
		}
	}
	f := NewFeed(catalog, nil, nil, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		f.LoadHome(ctx)
	}()

	require.Eventually(t, func() bool {
		_, _, state := f.Section(SectionTrending)
		return state == StateLoading
	}, time.Second, time.Millisecond)

	// The second trigger must not begin any section or issue a fetch;
	// either every pending section loads together or none does
	f.LoadHome(ctx)
	close(release)
	wg.Wait()

	home, _, _ := catalog.calls()
	assert.Equal(t, 1, home)
	for _, name := range []SectionName{SectionTrending, SectionPopular, SectionUpcoming} {
		_, _, state := f.Section(name)
		assert.Equal(t, StateLoaded, state, "section %s left mid-load", name)
	}
}

func TestStaleFilterResponseIsDiscarded(t *testing.T) {
	actionPage2 := make(chan struct{})
	comedyDone := make(chan struct{})

	catalog := &fakeCatalog{}
	catalog.filterFn = func(p anilist.FilterParams) *anilist.MediaPage {
		switch {
		case p.Genre == "Action" && p.Page == 1:
			return &anilist.MediaPage{PageInfo: anilist.PageInfo{HasNextPage: true}, Media: mediaRange(1, 24)}
		case p.Genre == "Action" && p.Page == 2:
			// Resolve only after the Comedy fetch has been applied
			<-actionPage2
			return &anilist.MediaPage{Media: mediaRange(25, 48)}
		case p.Genre == "Comedy":
			defer close(comedyDone)
			return &anilist.MediaPage{Media: mediaRange(9000, 9005)}
		}
		return nil
	}

	f := NewFeed(catalog, nil, nil, nil)
	ctx := context.Background()

	f.SetFilter(ctx, anilist.FilterParams{Genre: "Action", Sort: anilist.SortPopularity})
	require.Len(t, f.FilterResults(), 24)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		f.LoadMore(ctx, SectionFiltered)
	}()

	require.Eventually(t, func() bool {
		_, _, state := f.Section(SectionFiltered)
		return state == StateLoading
	}, time.Second, time.Millisecond)

	// Parameter change while the old load-more is still in flight
	f.SetFilter(ctx, anilist.FilterParams{Genre: "Comedy", Sort: anilist.SortPopularity})
	<-comedyDone
	close(actionPage2)
	wg.Wait()

	items := f.FilterResults()
	require.Len(t, items, 6)
	for _, m := range items {
		assert.GreaterOrEqual(t, m.ID, 9000, "stale Action item leaked into Comedy results")
	}
}

func TestSearchModeSwitchRestoresHomeWithoutRefetch(t *testing.T) {
	catalog := &fakeCatalog{
		homeFn: func(_, _, _ int) *anilist.HomeData {
			return &anilist.HomeData{
				Trending: anilist.MediaPage{PageInfo: anilist.PageInfo{HasNextPage: true}, Media: mediaRange(1, 24)},
				Popular:  anilist.MediaPage{Media: mediaRange(100, 123)},
			}
		},
		searchFn: func(text string, page int) *anilist.MediaPage {
			return &anilist.MediaPage{Media: mediaRange(500, 510)}
		},
	}
	f := NewFeed(catalog, nil, nil, nil)
	ctx := context.Background()

	f.LoadHome(ctx)
	require.Len(t, f.Trending(), 24)

	f.SetSearch(ctx, "Naruto")
	assert.Equal(t, ModeSearch, f.Mode())
	assert.Len(t, f.SearchResults(), 11)

	home, search, _ := catalog.calls()
	assert.Equal(t, 1, home)
	assert.Equal(t, 1, search)

	// Clearing the search restores accumulated home state with no refetch
	f.SetSearch(ctx, "")
	assert.Equal(t, ModeHome, f.Mode())
	assert.Len(t, f.Trending(), 24)
	assert.Len(t, f.Popular(), 24)

	home, search, _ = catalog.calls()
	assert.Equal(t, 1, home)
	assert.Equal(t, 1, search)

	// Re-entering the same query keeps the accumulated results too
	f.SetSearch(ctx, "Naruto")
	_, search, _ = catalog.calls()
	assert.Equal(t, 1, search)
	assert.Len(t, f.SearchResults(), 11)
}

func TestSearchParameterChangeResetsSection(t *testing.T) {
	catalog := &fakeCatalog{
		searchFn: func(text string, page int) *anilist.MediaPage {
			if text == "Naruto" {
				return &anilist.MediaPage{Media: mediaRange(1, 5)}
			}
			return &anilist.MediaPage{Media: mediaRange(50, 52)}
		},
	}
	f := NewFeed(catalog, nil, nil, nil)
	ctx := context.Background()

	f.SetSearch(ctx, "Naruto")
	assert.Len(t, f.SearchResults(), 5)

	f.SetSearch(ctx, "Bleach")
	items := f.SearchResults()
	require.Len(t, items, 3)
	assert.Equal(t, 50, items[0].ID)
	page, _, _ := f.Section(SectionSearch)
	assert.Equal(t, 1, page)
}

func TestSignedOutBookmarkRejectedLocally(t *testing.T) {
	store := newFakeStore()
	f := NewFeed(&fakeCatalog{}, store, &fakeUsers{}, nil)

	_, err := f.SetBookmark(context.Background(), anilist.Media{ID: 1}, watchstatus.Watching)
	assert.ErrorIs(t, err, ErrSignInRequired)
	assert.Equal(t, 0, store.setCalls)

	err = f.RemoveBookmark(context.Background(), 1, "x")
	assert.ErrorIs(t, err, ErrSignInRequired)
}

func TestLoadingSessionDefersBookmarks(t *testing.T) {
	store := newFakeStore()
	f := NewFeed(&fakeCatalog{}, store, &fakeUsers{userID: "u1", loading: true}, nil)

	_, err := f.SetBookmark(context.Background(), anilist.Media{ID: 1}, watchstatus.Watching)
	assert.ErrorIs(t, err, ErrSignInRequired)
	assert.Equal(t, 0, store.setCalls)
}

func TestBookmarkMutationsNotify(t *testing.T) {
	store := newFakeStore()
	notify := &recordingNotifier{}
	f := NewFeed(&fakeCatalog{}, store, &fakeUsers{userID: "u1"}, notify)
	ctx := context.Background()

	anime := anilist.Media{ID: 20, Title: anilist.MediaTitle{English: "Naruto"}}
	rec, err := f.SetBookmark(ctx, anime, watchstatus.Watching)
	require.NoError(t, err)
	assert.Equal(t, watchstatus.Watching, rec.Status)
	assert.Len(t, notify.successes, 1)

	store.fail = true
	_, err = f.SetBookmark(ctx, anime, watchstatus.Completed)
	require.Error(t, err)
	assert.Len(t, notify.failures, 1)
}

func TestDetailReconcilesBookmarkStatus(t *testing.T) {
	catalog := &fakeCatalog{
		detailFn: func(id int) *anilist.MediaDetail {
			return &anilist.MediaDetail{Media: anilist.Media{ID: id}}
		},
	}
	store := newFakeStore()
	f := NewFeed(catalog, store, &fakeUsers{userID: "u1"}, nil)
	ctx := context.Background()

	// Never bookmarked: absent status, detail still present
	view := f.AnimeDetail(ctx, 7)
	require.NotNil(t, view.Detail)
	assert.Equal(t, "", view.Status)

	_, err := f.SetBookmark(ctx, anilist.Media{ID: 7}, watchstatus.PlanToWatch)
	require.NoError(t, err)

	view = f.AnimeDetail(ctx, 7)
	assert.Equal(t, watchstatus.PlanToWatch, view.Status)
}

func TestRecentlyBookmarkedFetchesOncePerUser(t *testing.T) {
	store := newFakeStore()
	users := &fakeUsers{userID: "u1"}
	f := NewFeed(&fakeCatalog{}, store, users, nil)
	ctx := context.Background()

	for id := 1; id <= 8; id++ {
		_, err := f.SetBookmark(ctx, anilist.Media{ID: id}, watchstatus.Watching)
		require.NoError(t, err)
	}
	store.listCalls = 0

	shelf := f.RecentlyBookmarked(ctx)
	assert.Len(t, shelf, 6)
	assert.Equal(t, 8, shelf[0].AnimeID) // newest first

	f.RecentlyBookmarked(ctx)
	assert.Equal(t, 1, store.listCalls)

	// A different session-user refetches
	users.userID = "u2"
	f.RecentlyBookmarked(ctx)
	assert.Equal(t, 2, store.listCalls)
}

func TestRecentlyBookmarkedSignedOut(t *testing.T) {
	f := NewFeed(&fakeCatalog{}, newFakeStore(), &fakeUsers{}, nil)
	assert.Nil(t, f.RecentlyBookmarked(context.Background()))
}

func TestHomeFetchFailureLeavesSectionsEmpty(t *testing.T) {
	catalog := &fakeCatalog{}
	f := NewFeed(catalog, nil, nil, nil)
	ctx := context.Background()

	f.LoadHome(ctx)
	assert.Empty(t, f.Trending())
	_, _, state := f.Section(SectionTrending)
	assert.Equal(t, StateIdle, state)

	// No automatic retry; the user re-triggers and page 1 is fetched again
	f.LoadHome(ctx)
	home, _, _ := catalog.calls()
	assert.Equal(t, 2, home)
}
