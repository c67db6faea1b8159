package models

import "time"

// Post is a piece of content owned by its author
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Author    *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Title     string    `json:"title" gorm:"size:200;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	CommentsCount int64 `json:"comments_count" gorm:"->;-:migration"`
	LikesCount    int64 `json:"likes_count" gorm:"->;-:migration"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"required,min=1"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content *string `json:"content,omitempty" validate:"omitempty,min=1"`
}
