package browse

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"animehub/internal/anilist"
)

// ErrSignInRequired is returned when a signed-out user attempts a bookmark
// mutation. The operation is rejected locally, before any backend call;
// callers route to login and remember the origin for the post-login return.
var ErrSignInRequired = errors.New("sign in required")

const shelfSize = 6

// Catalog is the slice of the catalog service the orchestrator consumes.
// Methods return nil (or an empty page) on failure, never an error.
type Catalog interface {
	Home(ctx context.Context, trendingPage, popularPage, upcomingPage int) *anilist.HomeData
	Search(ctx context.Context, text string, page int) *anilist.MediaPage
	Filter(ctx context.Context, p anilist.FilterParams) *anilist.MediaPage
	AnimeDetail(ctx context.Context, id int) *anilist.MediaDetail
}

// BookmarkRecord is the client-side view of one stored bookmark.
type BookmarkRecord struct {
	AnimeID     int       `json:"anime_id"`
	AnimeTitle  string    `json:"anime_title"`
	AnimeImage  string    `json:"anime_image"`
	AnimeScore  *int      `json:"anime_score"`
	AnimeFormat string    `json:"anime_format"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookmarkStore is the user-scoped bookmark adapter. Status returns ""
// with a nil error for the absent case; absent and transport failure are
// observably different.
type BookmarkStore interface {
	Status(ctx context.Context, animeID int) (string, error)
	SetStatus(ctx context.Context, anime anilist.Media, status string) (*BookmarkRecord, error)
	Remove(ctx context.Context, animeID int) error
	ListAll(ctx context.Context) ([]BookmarkRecord, error)
}

// UserSource exposes the current auth session to the orchestrator.
// IsLoading=true means "unknown"; user-dependent fetches are deferred.
type UserSource interface {
	CurrentUserID() (string, bool)
	IsLoading() bool
}

// Notifier receives the transient outcome notifications every mutating
// bookmark call produces.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Failure(string) {}

// Mode says which sections are visible: exactly one of home, search, or
// filter at a time.
type Mode int

const (
	ModeHome Mode = iota
	ModeSearch
	ModeFilter
)

// Feed is the per-view orchestrator: it decides which query to run, tracks
// pagination per section, merges arriving pages without duplicates, and
// cross-references bookmark status for the signed-in user.
type Feed struct {
	mu sync.Mutex

	catalog Catalog
	store   BookmarkStore
	users   UserSource
	notify  Notifier

	trending *Section
	popular  *Section
	upcoming *Section
	search   *Section
	filtered *Section

	mode       Mode
	searchText string
	filter     anilist.FilterParams

	shelf     []BookmarkRecord
	shelfUser string
	shelfOK   bool
}

// NewFeed builds an orchestrator over its injected collaborators. store,
// users, and notify may be nil for a signed-out, notification-less feed.
func NewFeed(catalog Catalog, store BookmarkStore, users UserSource, notify Notifier) *Feed {
	if notify == nil {
		notify = nopNotifier{}
	}
	return &Feed{
		catalog:  catalog,
		store:    store,
		users:    users,
		notify:   notify,
		trending: newSection(SectionTrending),
		popular:  newSection(SectionPopular),
		upcoming: newSection(SectionUpcoming),
		search:   newSection(SectionSearch),
		filtered: newSection(SectionFiltered),
	}
}

// Mode returns the active visibility mode.
func (f *Feed) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

// Trending returns the accumulated trending items.
func (f *Feed) Trending() []anilist.Media { return f.sectionItems(f.trending) }

// Popular returns the accumulated popular items.
func (f *Feed) Popular() []anilist.Media { return f.sectionItems(f.popular) }

// Upcoming returns the accumulated upcoming items.
func (f *Feed) Upcoming() []anilist.Media { return f.sectionItems(f.upcoming) }

// SearchResults returns the accumulated search items.
func (f *Feed) SearchResults() []anilist.Media { return f.sectionItems(f.search) }

// FilterResults returns the accumulated filtered items.
func (f *Feed) FilterResults() []anilist.Media { return f.sectionItems(f.filtered) }

func (f *Feed) sectionItems(s *Section) []anilist.Media {
	f.mu.Lock()
	defer f.mu.Unlock()
	return s.Items()
}

// Section exposes one section's cursor state for rendering.
func (f *Feed) Section(name SectionName) (page int, hasNext bool, state State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.section(name)
	return s.Page(), s.HasNext(), s.State()
}

func (f *Feed) section(name SectionName) *Section {
	switch name {
	case SectionTrending:
		return f.trending
	case SectionPopular:
		return f.popular
	case SectionUpcoming:
		return f.upcoming
	case SectionSearch:
		return f.search
	default:
		return f.filtered
	}
}

// LoadHome fetches the next page for every idle home section. The first
// call loads page 1 of trending, popular, and upcoming in one request.
func (f *Feed) LoadHome(ctx context.Context) {
	f.mu.Lock()
	type pending struct {
		s    *Section
		gen  uint64
		page int
	}
	var empty []*Section
	pages := map[SectionName]int{}
	for _, s := range []*Section{f.trending, f.popular, f.upcoming} {
		if s.Len() > 0 {
			pages[s.Name()] = s.Page()
			continue
		}
		if s.State() == StateLoading {
			// One shared fetch is already in flight; begin nothing
			f.mu.Unlock()
			return
		}
		empty = append(empty, s)
	}
	var loads []pending
	for _, s := range empty {
		gen, page, _ := s.BeginLoad()
		loads = append(loads, pending{s, gen, page})
		pages[s.Name()] = page
	}
	f.mu.Unlock()

	if len(loads) == 0 {
		return
	}

	data := f.catalog.Home(ctx, pages[SectionTrending], pages[SectionPopular], pages[SectionUpcoming])

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range loads {
		if data == nil {
			p.s.Fail(p.gen)
			continue
		}
		page := homePage(data, p.s.Name())
		p.s.Apply(p.gen, page.Media, page.PageInfo.HasNextPage)
	}
}

// LoadMore fetches the next page for one section. It is a no-op while that
// section is already loading, and in search/filter modes only their own
// section advances.
func (f *Feed) LoadMore(ctx context.Context, name SectionName) {
	switch name {
	case SectionTrending, SectionPopular, SectionUpcoming:
		f.loadMoreHome(ctx, name)
	case SectionSearch:
		f.loadMoreSearch(ctx)
	case SectionFiltered:
		f.loadMoreFilter(ctx)
	}
}

func (f *Feed) loadMoreHome(ctx context.Context, name SectionName) {
	f.mu.Lock()
	if f.mode != ModeHome {
		f.mu.Unlock()
		return
	}
	target := f.section(name)
	gen, _, ok := target.BeginLoad()
	if !ok {
		f.mu.Unlock()
		return
	}
	trendingPage := maxPage(f.trending)
	popularPage := maxPage(f.popular)
	upcomingPage := maxPage(f.upcoming)
	f.mu.Unlock()

	data := f.catalog.Home(ctx, trendingPage, popularPage, upcomingPage)

	f.mu.Lock()
	defer f.mu.Unlock()
	if data == nil {
		target.Fail(gen)
		return
	}
	page := homePage(data, name)
	target.Apply(gen, page.Media, page.PageInfo.HasNextPage)
}

func maxPage(s *Section) int {
	if s.Page() < 1 {
		return 1
	}
	return s.Page()
}

func homePage(data *anilist.HomeData, name SectionName) anilist.MediaPage {
	switch name {
	case SectionTrending:
		return data.Trending
	case SectionPopular:
		return data.Popular
	default:
		return data.Upcoming
	}
}

// SetSearch enters search mode for the given text. A changed text resets
// the search section and fetches page 1; empty text leaves search mode and
// restores the home sections as accumulated, without refetch.
func (f *Feed) SetSearch(ctx context.Context, text string) {
	f.mu.Lock()
	if text == "" {
		f.mode = ModeHome
		f.mu.Unlock()
		return
	}
	changed := text != f.searchText
	f.searchText = text
	f.mode = ModeSearch
	if changed {
		f.search.Reset()
	}
	if !changed && f.search.Len() > 0 {
		// Returning to an unchanged query keeps the accumulated results
		f.mu.Unlock()
		return
	}
	gen, page, ok := f.search.BeginLoad()
	f.mu.Unlock()
	if !ok {
		return
	}

	result := f.catalog.Search(ctx, text, page)

	f.mu.Lock()
	defer f.mu.Unlock()
	if result == nil {
		f.search.Fail(gen)
		return
	}
	f.search.Apply(gen, result.Media, result.PageInfo.HasNextPage)
}

func (f *Feed) loadMoreSearch(ctx context.Context) {
	f.mu.Lock()
	if f.mode != ModeSearch || !f.search.HasNext() {
		f.mu.Unlock()
		return
	}
	text := f.searchText
	gen, page, ok := f.search.BeginLoad()
	f.mu.Unlock()
	if !ok {
		return
	}

	result := f.catalog.Search(ctx, text, page)

	f.mu.Lock()
	defer f.mu.Unlock()
	if result == nil {
		f.search.Fail(gen)
		return
	}
	f.search.Apply(gen, result.Media, result.PageInfo.HasNextPage)
}

// SetFilter enters filter mode with the given parameters. Changed
// parameters reset the filtered section and fetch page 1.
func (f *Feed) SetFilter(ctx context.Context, p anilist.FilterParams) {
	f.mu.Lock()
	p.Page = 0
	changed := p != f.filter
	f.filter = p
	f.mode = ModeFilter
	if changed {
		f.filtered.Reset()
	}
	if !changed && f.filtered.Len() > 0 {
		f.mu.Unlock()
		return
	}
	gen, page, ok := f.filtered.BeginLoad()
	f.mu.Unlock()
	if !ok {
		return
	}

	params := p
	params.Page = page
	result := f.catalog.Filter(ctx, params)

	f.mu.Lock()
	defer f.mu.Unlock()
	if result == nil {
		f.filtered.Fail(gen)
		return
	}
	f.filtered.Apply(gen, result.Media, result.PageInfo.HasNextPage)
}

func (f *Feed) loadMoreFilter(ctx context.Context) {
	f.mu.Lock()
	if f.mode != ModeFilter || !f.filtered.HasNext() {
		f.mu.Unlock()
		return
	}
	params := f.filter
	gen, page, ok := f.filtered.BeginLoad()
	f.mu.Unlock()
	if !ok {
		return
	}

	params.Page = page
	result := f.catalog.Filter(ctx, params)

	f.mu.Lock()
	defer f.mu.Unlock()
	if result == nil {
		f.filtered.Fail(gen)
		return
	}
	f.filtered.Apply(gen, result.Media, result.PageInfo.HasNextPage)
}

// ClearMode returns to the home sections. Their accumulated state is
// restored as-is; nothing is refetched while parameters are unchanged.
func (f *Feed) ClearMode() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mode = ModeHome
}

// DetailView pairs an anime detail with the signed-in user's bookmark
// status for it. Status is "" when absent or signed out, so the view
// renders an unfilled bookmark control.
type DetailView struct {
	Detail *anilist.MediaDetail
	Status string
}

// AnimeDetail fetches the detail and the bookmark status concurrently and
// reconciles both before returning.
func (f *Feed) AnimeDetail(ctx context.Context, id int) DetailView {
	var (
		view DetailView
		wg   sync.WaitGroup
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		view.Detail = f.catalog.AnimeDetail(ctx, id)
	}()

	if _, ok := f.signedInUser(); ok && f.store != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, err := f.store.Status(ctx, id)
			if err == nil {
				view.Status = status
			}
		}()
	}

	wg.Wait()
	return view
}

// SetBookmark upserts the user's status for one anime. Signed-out callers
// are rejected locally with ErrSignInRequired.
func (f *Feed) SetBookmark(ctx context.Context, anime anilist.Media, status string) (*BookmarkRecord, error) {
	if _, ok := f.signedInUser(); !ok {
		return nil, ErrSignInRequired
	}

	rec, err := f.store.SetStatus(ctx, anime, status)
	if err != nil {
		f.notify.Failure(fmt.Sprintf("Could not update bookmark for %q", anime.Title.Display()))
		return nil, err
	}

	f.notify.Success(fmt.Sprintf("Bookmarked %q as %s", anime.Title.Display(), status))
	f.invalidateShelf()
	return rec, nil
}

// RemoveBookmark deletes the user's bookmark for one anime; removing an
// absent bookmark is not an error.
func (f *Feed) RemoveBookmark(ctx context.Context, animeID int, title string) error {
	if _, ok := f.signedInUser(); !ok {
		return ErrSignInRequired
	}

	if err := f.store.Remove(ctx, animeID); err != nil {
		f.notify.Failure(fmt.Sprintf("Could not remove bookmark for %q", title))
		return err
	}

	f.notify.Success(fmt.Sprintf("Removed bookmark for %q", title))
	f.invalidateShelf()
	return nil
}

// RecentlyBookmarked returns the home shelf: the user's bookmark list,
// fetched once per session-user and truncated to a fixed display count.
func (f *Feed) RecentlyBookmarked(ctx context.Context) []BookmarkRecord {
	user, ok := f.signedInUser()
	if !ok || f.store == nil {
		return nil
	}

	f.mu.Lock()
	if f.shelfOK && f.shelfUser == user {
		shelf := f.shelf
		f.mu.Unlock()
		return shelf
	}
	f.mu.Unlock()

	all, err := f.store.ListAll(ctx)
	if err != nil {
		return nil
	}
	if len(all) > shelfSize {
		all = all[:shelfSize]
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.shelf = all
	f.shelfUser = user
	f.shelfOK = true
	return all
}

func (f *Feed) invalidateShelf() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shelfOK = false
}

func (f *Feed) signedInUser() (string, bool) {
	if f.users == nil || f.users.IsLoading() {
		return "", false
	}
	return f.users.CurrentUserID()
}
