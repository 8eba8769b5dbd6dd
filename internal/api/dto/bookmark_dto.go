package dto

import (
	"time"

	"animehub/internal/api/models"
)

// SetBookmarkRequest: payload to create or overwrite a watch status
type SetBookmarkRequest struct {
	AnimeID     int    `json:"anime_id" binding:"required"`
	Status      string `json:"status" binding:"required"`
	AnimeTitle  string `json:"anime_title"`
	AnimeImage  string `json:"anime_image"`
	AnimeScore  *int   `json:"anime_score,omitempty"`
	AnimeFormat string `json:"anime_format"`
}

// BookmarkResponse: one stored watch status with its anime snapshot
type BookmarkResponse struct {
	ID          int64     `json:"id"`
	AnimeID     int       `json:"anime_id"`
	Status      string    `json:"status"`
	AnimeTitle  string    `json:"anime_title"`
	AnimeImage  string    `json:"anime_image"`
	AnimeScore  *int      `json:"anime_score,omitempty"`
	AnimeFormat string    `json:"anime_format"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookmarkStatusResponse: status lookup result; status is empty when the
// anime has no bookmark
type BookmarkStatusResponse struct {
	AnimeID int    `json:"anime_id"`
	Status  string `json:"status"`
}

// BookmarkListResponse: all of a user's bookmarks, newest first
type BookmarkListResponse struct {
	Items []BookmarkResponse `json:"items"`
	Total int                `json:"total"`
}

// ToBookmarkResponse converts a bookmark model to its response DTO.
func ToBookmarkResponse(b *models.Bookmark) BookmarkResponse {
	return BookmarkResponse{
		ID:          b.ID,
		AnimeID:     b.AnimeID,
		Status:      b.Status,
		AnimeTitle:  b.AnimeTitle,
		AnimeImage:  b.AnimeImage,
		AnimeScore:  b.AnimeScore,
		AnimeFormat: b.AnimeFormat,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ToBookmarkListResponse converts a slice of bookmark models.
func ToBookmarkListResponse(bookmarks []models.Bookmark) BookmarkListResponse {
	items := make([]BookmarkResponse, 0, len(bookmarks))
	for i := range bookmarks {
		items = append(items, ToBookmarkResponse(&bookmarks[i]))
	}
	return BookmarkListResponse{Items: items, Total: len(items)}
}
