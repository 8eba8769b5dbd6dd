package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"animehub/internal/api/models"
)

// BookmarkRepository defines the interface for bookmark storage. Upsert
// relies on the (user_id, anime_id) unique constraint, so a repeated write
// for the same pair overwrites the row instead of creating a duplicate.
type BookmarkRepository interface {
	Upsert(ctx context.Context, bookmark *models.Bookmark) error
	Find(ctx context.Context, userID string, animeID int) (*models.Bookmark, error)
	Delete(ctx context.Context, userID string, animeID int) error
	ListByUser(ctx context.Context, userID string) ([]models.Bookmark, error)
}

type bookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository creates a BookmarkRepository backed by GORM.
func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

// Upsert inserts the bookmark or, when the (user_id, anime_id) row already
// exists, overwrites its status and refreshes the denormalized snapshot.
// A single native upsert avoids the check-then-act race.
func (r *bookmarkRepository) Upsert(ctx context.Context, bookmark *models.Bookmark) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "anime_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"anime_title", "anime_image", "anime_score", "anime_format", "status", "updated_at",
		}),
	}).Create(bookmark).Error
	if err != nil {
		return fmt.Errorf("upsert bookmark: %w", err)
	}
	return nil
}

// Find returns the bookmark for the pair, or (nil, nil) when absent.
// Absence is a normal result, distinct from a storage failure.
func (r *bookmarkRepository) Find(ctx context.Context, userID string, animeID int) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND anime_id = ?", userID, animeID).
		First(&bookmark).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find bookmark: %w", err)
	}
	return &bookmark, nil
}

// Delete removes the pair's row if present. Deleting an absent bookmark is
// not an error.
func (r *bookmarkRepository) Delete(ctx context.Context, userID string, animeID int) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND anime_id = ?", userID, animeID).
		Delete(&models.Bookmark{})
	if result.Error != nil {
		return fmt.Errorf("delete bookmark: %w", result.Error)
	}
	return nil
}

// ListByUser returns all of a user's bookmarks, newest first.
func (r *bookmarkRepository) ListByUser(ctx context.Context, userID string) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookmarks).Error; err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return bookmarks, nil
}
