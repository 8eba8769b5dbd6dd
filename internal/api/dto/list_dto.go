package dto

import (
	"time"

	"animehub/internal/api/models"
)

// CreateListRequest: payload to create a named list
type CreateListRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
}

// AddListItemRequest: payload to add an anime to a list
type AddListItemRequest struct {
	AnimeID     int    `json:"anime_id" binding:"required"`
	AnimeTitle  string `json:"anime_title"`
	AnimeImage  string `json:"anime_image"`
	AnimeScore  *int   `json:"anime_score,omitempty"`
	AnimeFormat string `json:"anime_format"`
}

// ListItemResponse: one anime member of a list
type ListItemResponse struct {
	ID          int64     `json:"id"`
	AnimeID     int       `json:"anime_id"`
	AnimeTitle  string    `json:"anime_title"`
	AnimeImage  string    `json:"anime_image"`
	AnimeScore  *int      `json:"anime_score,omitempty"`
	AnimeFormat string    `json:"anime_format"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListResponse: a named list with its items
type ListResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	CreatedAt   time.Time          `json:"created_at"`
	Items       []ListItemResponse `json:"items"`
}

// ListsResponse: all of a user's lists
type ListsResponse struct {
	Lists []ListResponse `json:"lists"`
	Total int            `json:"total"`
}

// ToListItemResponse converts a list item model to its response DTO.
func ToListItemResponse(item *models.ListItem) ListItemResponse {
	return ListItemResponse{
		ID:          item.ID,
		AnimeID:     item.AnimeID,
		AnimeTitle:  item.AnimeTitle,
		AnimeImage:  item.AnimeImage,
		AnimeScore:  item.AnimeScore,
		AnimeFormat: item.AnimeFormat,
		CreatedAt:   item.CreatedAt,
	}
}

// ToListResponse converts a list model with its items.
func ToListResponse(list *models.AnimeList) ListResponse {
	items := make([]ListItemResponse, 0, len(list.Items))
	for i := range list.Items {
		items = append(items, ToListItemResponse(&list.Items[i]))
	}
	return ListResponse{
		ID:          list.ID,
		Name:        list.Name,
		Description: list.Description,
		CreatedAt:   list.CreatedAt,
		Items:       items,
	}
}

// ToListsResponse converts a slice of list models.
func ToListsResponse(lists []models.AnimeList) ListsResponse {
	out := make([]ListResponse, 0, len(lists))
	for i := range lists {
		out = append(out, ToListResponse(&lists[i]))
	}
	return ListsResponse{Lists: out, Total: len(out)}
}
