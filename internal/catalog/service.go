package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"animehub/internal/anilist"
)

const defaultHomeCacheSize = 32

// Fetcher is the slice of the AniList client the catalog service consumes.
type Fetcher interface {
	Home(ctx context.Context, trendingPage, popularPage, upcomingPage int) (*anilist.HomeData, error)
	Search(ctx context.Context, text string, page int) (*anilist.MediaPage, error)
	Filter(ctx context.Context, p anilist.FilterParams) (*anilist.MediaPage, error)
	AnimeDetail(ctx context.Context, id int) (*anilist.MediaDetail, error)
	CharacterDetail(ctx context.Context, id int) (*anilist.CharacterDetail, error)
	StudioDetail(ctx context.Context, p anilist.StudioParams) (*anilist.StudioDetail, error)
}

// Service wraps the AniList client with the failure contract every view
// relies on: fetch errors are logged and converted to empty results, never
// returned. Callers must treat "no data" as a normal, displayable state.
//
// Home responses are cached in-process in a bounded LRU keyed by the page
// triple, and optionally in Redis with a TTL when a client is configured.
// Search is never cached.
type Service struct {
	fetcher Fetcher
	home    *lruCache
	rdb     *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithRedis enables the shared Redis response cache for home triples.
func WithRedis(rdb *redis.Client, ttl time.Duration) Option {
	return func(s *Service) {
		s.rdb = rdb
		s.ttl = ttl
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithHomeCacheSize bounds the in-process home cache.
func WithHomeCacheSize(n int) Option {
	return func(s *Service) {
		s.home = newLRUCache(n)
	}
}

// NewService creates a catalog service over the given fetcher.
func NewService(fetcher Fetcher, opts ...Option) *Service {
	s := &Service{
		fetcher: fetcher,
		home:    newLRUCache(defaultHomeCacheSize),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func homeCacheKey(trendingPage, popularPage, upcomingPage int) string {
	return fmt.Sprintf("catalog:home:%d-%d-%d", trendingPage, popularPage, upcomingPage)
}

// Home returns the three home sections for the page triple, or nil when the
// upstream fetch fails. Repeated calls for the same triple hit the cache.
func (s *Service) Home(ctx context.Context, trendingPage, popularPage, upcomingPage int) *anilist.HomeData {
	key := homeCacheKey(trendingPage, popularPage, upcomingPage)

	if data, ok := s.home.Get(key); ok {
		return data
	}

	if data := s.redisGet(ctx, key); data != nil {
		s.home.Add(key, data)
		return data
	}

	data, err := s.fetcher.Home(ctx, trendingPage, popularPage, upcomingPage)
	if err != nil {
		s.logger.Error("home fetch failed", "error", err,
			"trending_page", trendingPage, "popular_page", popularPage, "upcoming_page", upcomingPage)
		return nil
	}

	s.home.Add(key, data)
	s.redisSet(ctx, key, data)
	return data
}

// Search returns one live page of search results. On failure it returns an
// empty page so callers can render "no results" directly.
func (s *Service) Search(ctx context.Context, text string, page int) *anilist.MediaPage {
	result, err := s.fetcher.Search(ctx, text, page)
	if err != nil {
		s.logger.Error("search failed", "error", err, "query", text, "page", page)
		return &anilist.MediaPage{Media: []anilist.Media{}}
	}
	return result
}

// Filter returns one page of the advanced-filter view, or nil on failure.
func (s *Service) Filter(ctx context.Context, p anilist.FilterParams) *anilist.MediaPage {
	result, err := s.fetcher.Filter(ctx, p)
	if err != nil {
		s.logger.Error("filter fetch failed", "error", err, "genre", p.Genre, "page", p.Page)
		return nil
	}
	return result
}

// AnimeDetail returns one anime with its nested sequences, or nil on failure.
func (s *Service) AnimeDetail(ctx context.Context, id int) *anilist.MediaDetail {
	result, err := s.fetcher.AnimeDetail(ctx, id)
	if err != nil {
		s.logger.Error("anime detail fetch failed", "error", err, "id", id)
		return nil
	}
	return result
}

// CharacterDetail returns one character, or nil on failure.
func (s *Service) CharacterDetail(ctx context.Context, id int) *anilist.CharacterDetail {
	result, err := s.fetcher.CharacterDetail(ctx, id)
	if err != nil {
		s.logger.Error("character detail fetch failed", "error", err, "id", id)
		return nil
	}
	return result
}

// StudioDetail returns one studio with one catalog page, or nil on failure.
func (s *Service) StudioDetail(ctx context.Context, p anilist.StudioParams) *anilist.StudioDetail {
	result, err := s.fetcher.StudioDetail(ctx, p)
	if err != nil {
		s.logger.Error("studio detail fetch failed", "error", err, "id", p.ID, "page", p.Page)
		return nil
	}
	return result
}

func (s *Service) redisGet(ctx context.Context, key string) *anilist.HomeData {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debug("redis get failed", "error", err, "key", key)
		}
		return nil
	}
	var data anilist.HomeData
	if err := json.Unmarshal(raw, &data); err != nil {
		s.logger.Debug("redis entry corrupt", "error", err, "key", key)
		return nil
	}
	return &data
}

func (s *Service) redisSet(ctx context.Context, key string, data *anilist.HomeData) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.logger.Debug("redis set failed", "error", err, "key", key)
	}
}
