package models

import "time"

// Bookmark is one user's watch status for one anime, with a denormalized
// snapshot of the anime taken at bookmark time. At most one row exists per
// (user_id, anime_id); writes go through a native upsert on that constraint.
type Bookmark struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      string    `json:"user_id" gorm:"uniqueIndex:idx_bookmarks_user_anime;not null"`
	AnimeID     int       `json:"anime_id" gorm:"uniqueIndex:idx_bookmarks_user_anime;not null"`
	AnimeTitle  string    `json:"anime_title"`
	AnimeImage  string    `json:"anime_image"`
	AnimeScore  *int      `json:"anime_score,omitempty"`
	AnimeFormat string    `json:"anime_format"`
	Status      string    `json:"status" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
