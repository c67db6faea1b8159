package repositories

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) (bool, error)
	DeleteLike(ctx context.Context, postID, userID uint) (bool, error)
	HasUserLikedPost(ctx context.Context, postID, userID uint) (bool, error)
	GetLikesCountByPostID(ctx context.Context, postID uint) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts the like unless (user_id, post_id) already exists.
// It reports false when the unique index absorbed the insert.
func (r *PostgresLikeRepository) CreateLike(ctx context.Context, like *models.Like) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(like)
	if res.Error != nil {
		return false, translate(res.Error, "like", like.PostID)
	}
	return res.RowsAffected > 0, nil
}

// DeleteLike removes the like and reports whether one existed
func (r *PostgresLikeRepository) DeleteLike(ctx context.Context, postID, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return false, translate(res.Error, "like", postID)
	}
	return res.RowsAffected > 0, nil
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *PostgresLikeRepository) HasUserLikedPost(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, translate(err, "like", postID)
	}
	return count > 0, nil
}

func (r *PostgresLikeRepository) GetLikesCountByPostID(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, translate(err, "like", postID)
}
