package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
)

// Store bundles the relational repositories that share one *gorm.DB, so a
// service can run several of them inside a single transaction.
type Store struct {
	db            *gorm.DB
	Users         UserRepository
	Follows       FollowRepository
	Posts         PostRepository
	Comments      CommentRepository
	Likes         LikeRepository
	Notifications NotificationRepository
}

// NewStore creates a Store backed by PostgreSQL (or any gorm dialect)
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Users:         NewPostgresUserRepository(db),
		Follows:       NewPostgresFollowRepository(db),
		Posts:         NewPostgresPostRepository(db),
		Comments:      NewPostgresCommentRepository(db),
		Likes:         NewPostgresLikeRepository(db),
		Notifications: NewPostgresNotificationRepository(db),
	}
}

// Transaction runs fn with a Store bound to one database transaction.
// Returning an error from fn rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// AutoMigrate creates or updates the relational schema
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Notification{},
	)
}

// translate maps gorm failures onto typed application errors
func translate(err error, resource string, id interface{}) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return models.NewInternalError(fmt.Errorf("%s: %w", resource, err))
}
