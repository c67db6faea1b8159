package models

import "time"

type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Handle      string    `json:"handle" gorm:"size:150;not null;uniqueIndex"`
	Email       string    `json:"email" gorm:"size:254"`
	Bio         string    `json:"bio" gorm:"size:255"`
	FirebaseUID *string   `json:"-" gorm:"size:128;uniqueIndex"` // Link to Firebase User UID, NULL for JWT-only accounts
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserProfile is a user with follow counters relative to a viewer
type UserProfile struct {
	User
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
	IsFollowing    bool  `json:"is_following"`
}

type CreateUserRequest struct {
	Handle      string `json:"handle" validate:"required,handle"`
	Email       string `json:"email" validate:"omitempty,email"`
	Bio         string `json:"bio" validate:"max=255"`
	FirebaseUID string `json:"firebase_uid" validate:"omitempty,max=128"`
}

type UpdateUserRequest struct {
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Bio   *string `json:"bio,omitempty" validate:"omitempty,max=255"`
}
