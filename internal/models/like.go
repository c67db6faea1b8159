package models

import "time"

// Like ties one user to one post; (user_id, post_id) is unique
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_post_like"`
	PostID    uint      `json:"post_id" gorm:"not null;index;uniqueIndex:idx_user_post_like"`
	CreatedAt time.Time `json:"created_at"`

	User *User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Post *Post `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
