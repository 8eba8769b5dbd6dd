package service

import (
	"context"
	"errors"

	"animehub/internal/api/models"
	"animehub/internal/api/repository"
	"animehub/internal/watchstatus"
)

var ErrInvalidStatus = errors.New("invalid watch status")

// AnimeSnapshot is the denormalized anime data stored alongside a bookmark.
type AnimeSnapshot struct {
	AnimeID int
	Title   string
	Image   string
	Score   *int
	Format  string
}

// BookmarkService owns the per-user watch status records. SetStatus is a
// native upsert by (user, anime): a second call for the same pair
// overwrites the status instead of creating a duplicate row.
type BookmarkService interface {
	SetStatus(ctx context.Context, userID string, anime AnimeSnapshot, status string) (*models.Bookmark, error)
	GetStatus(ctx context.Context, userID string, animeID int) (*models.Bookmark, error)
	Remove(ctx context.Context, userID string, animeID int) error
	ListAll(ctx context.Context, userID string) ([]models.Bookmark, error)
}

type bookmarkService struct {
	repo repository.BookmarkRepository
}

func NewBookmarkService(repo repository.BookmarkRepository) BookmarkService {
	return &bookmarkService{repo: repo}
}

func (s *bookmarkService) SetStatus(ctx context.Context, userID string, anime AnimeSnapshot, status string) (*models.Bookmark, error) {
	if !watchstatus.Valid(status) {
		return nil, ErrInvalidStatus
	}

	bookmark := &models.Bookmark{
		UserID:      userID,
		AnimeID:     anime.AnimeID,
		AnimeTitle:  anime.Title,
		AnimeImage:  anime.Image,
		AnimeScore:  anime.Score,
		AnimeFormat: anime.Format,
		Status:      status,
	}

	if err := s.repo.Upsert(ctx, bookmark); err != nil {
		return nil, err
	}

	// Read back so callers see the stored row, created_at included
	return s.repo.Find(ctx, userID, anime.AnimeID)
}

// GetStatus returns the bookmark, or (nil, nil) when the pair has none.
func (s *bookmarkService) GetStatus(ctx context.Context, userID string, animeID int) (*models.Bookmark, error) {
	return s.repo.Find(ctx, userID, animeID)
}

// Remove deletes the pair's bookmark; removing an absent one succeeds.
func (s *bookmarkService) Remove(ctx context.Context, userID string, animeID int) error {
	return s.repo.Delete(ctx, userID, animeID)
}

// ListAll returns the user's bookmarks, newest first.
func (s *bookmarkService) ListAll(ctx context.Context, userID string) ([]models.Bookmark, error) {
	return s.repo.ListByUser(ctx, userID)
}
