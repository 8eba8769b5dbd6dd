package models

import "time"

// Profile carries a user's public display data. ID equals the user id.
type Profile struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar_url"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}
