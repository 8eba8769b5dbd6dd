package models

import "time"

// AnimeList is a user-defined named list.
type AnimeList struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      string     `json:"user_id" gorm:"index;not null"`
	Name        string     `json:"name" gorm:"not null"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	Items       []ListItem `json:"items,omitempty" gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE"`
}

func (AnimeList) TableName() string {
	return "anime_lists"
}

// ListItem is one anime member of a list, with the same denormalized
// snapshot as a bookmark.
type ListItem struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ListID      int64     `json:"list_id" gorm:"uniqueIndex:idx_list_items_list_anime;not null"`
	UserID      string    `json:"user_id" gorm:"index;not null"`
	AnimeID     int       `json:"anime_id" gorm:"uniqueIndex:idx_list_items_list_anime;not null"`
	AnimeTitle  string    `json:"anime_title"`
	AnimeImage  string    `json:"anime_image"`
	AnimeScore  *int      `json:"anime_score,omitempty"`
	AnimeFormat string    `json:"anime_format"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (ListItem) TableName() string {
	return "list_items"
}
