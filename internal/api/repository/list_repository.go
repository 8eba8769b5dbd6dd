package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"animehub/internal/api/models"
)

// ListRepository defines the interface for named anime lists.
type ListRepository interface {
	Create(ctx context.Context, list *models.AnimeList) error
	FindByID(ctx context.Context, id int64) (*models.AnimeList, error)
	ListByUser(ctx context.Context, userID string) ([]models.AnimeList, error)
	AddItem(ctx context.Context, item *models.ListItem) error
	RemoveItem(ctx context.Context, listID int64, animeID int) error
}

type listRepository struct {
	db *gorm.DB
}

// NewListRepository creates a ListRepository backed by GORM.
func NewListRepository(db *gorm.DB) ListRepository {
	return &listRepository{db: db}
}

func (r *listRepository) Create(ctx context.Context, list *models.AnimeList) error {
	if err := r.db.WithContext(ctx).Create(list).Error; err != nil {
		return fmt.Errorf("create list: %w", err)
	}
	return nil
}

// FindByID returns the list with its items, or (nil, nil) when absent.
func (r *listRepository) FindByID(ctx context.Context, id int64) (*models.AnimeList, error) {
	var list models.AnimeList
	err := r.db.WithContext(ctx).Preload("Items").First(&list, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find list: %w", err)
	}
	return &list, nil
}

func (r *listRepository) ListByUser(ctx context.Context, userID string) ([]models.AnimeList, error) {
	var lists []models.AnimeList
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	return lists, nil
}

func (r *listRepository) AddItem(ctx context.Context, item *models.ListItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("add list item: %w", err)
	}
	return nil
}

// RemoveItem is idempotent; removing an absent item is not an error.
func (r *listRepository) RemoveItem(ctx context.Context, listID int64, animeID int) error {
	result := r.db.WithContext(ctx).
		Where("list_id = ? AND anime_id = ?", listID, animeID).
		Delete(&models.ListItem{})
	if result.Error != nil {
		return fmt.Errorf("remove list item: %w", result.Error)
	}
	return nil
}
