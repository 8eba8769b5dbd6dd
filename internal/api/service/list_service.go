package service

import (
	"context"
	"errors"

	"animehub/internal/api/models"
	"animehub/internal/api/repository"
)

var (
	ErrListNotFound  = errors.New("list not found")
	ErrNotListOwner  = errors.New("list belongs to another user")
	ErrAlreadyInList = errors.New("anime already in list")
)

// ListService owns user-defined named lists and their member rows.
type ListService interface {
	Create(ctx context.Context, userID, name, description string) (*models.AnimeList, error)
	ListByUser(ctx context.Context, userID string) ([]models.AnimeList, error)
	AddItem(ctx context.Context, userID string, listID int64, anime AnimeSnapshot) (*models.ListItem, error)
	RemoveItem(ctx context.Context, userID string, listID int64, animeID int) error
}

type listService struct {
	repo repository.ListRepository
}

func NewListService(repo repository.ListRepository) ListService {
	return &listService{repo: repo}
}

func (s *listService) Create(ctx context.Context, userID, name, description string) (*models.AnimeList, error) {
	list := &models.AnimeList{
		UserID:      userID,
		Name:        name,
		Description: description,
	}
	if err := s.repo.Create(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *listService) ListByUser(ctx context.Context, userID string) ([]models.AnimeList, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *listService) AddItem(ctx context.Context, userID string, listID int64, anime AnimeSnapshot) (*models.ListItem, error) {
	list, err := s.repo.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, ErrListNotFound
	}
	if list.UserID != userID {
		return nil, ErrNotListOwner
	}
	// FindByID preloads the items, so the duplicate check is in-memory; the
	// (list_id, anime_id) unique index still backstops concurrent adds
	for i := range list.Items {
		if list.Items[i].AnimeID == anime.AnimeID {
			return nil, ErrAlreadyInList
		}
	}

	item := &models.ListItem{
		ListID:      listID,
		UserID:      userID,
		AnimeID:     anime.AnimeID,
		AnimeTitle:  anime.Title,
		AnimeImage:  anime.Image,
		AnimeScore:  anime.Score,
		AnimeFormat: anime.Format,
	}
	if err := s.repo.AddItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem is idempotent once ownership is verified.
func (s *listService) RemoveItem(ctx context.Context, userID string, listID int64, animeID int) error {
	list, err := s.repo.FindByID(ctx, listID)
	if err != nil {
		return err
	}
	if list == nil {
		return ErrListNotFound
	}
	if list.UserID != userID {
		return ErrNotListOwner
	}
	return s.repo.RemoveItem(ctx, listID, animeID)
}
