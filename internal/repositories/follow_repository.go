package repositories

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow data operations.
// Followers and following are two read directions over the same follows table.
type FollowRepository interface {
	CreateFollow(ctx context.Context, follow *models.Follow) (bool, error)
	DeleteFollow(ctx context.Context, followerID, followingID uint) (bool, error)
	IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
	GetFollowers(ctx context.Context, userID uint) ([]models.User, error)
	GetFollowing(ctx context.Context, userID uint) ([]models.User, error)
	GetFollowersCount(ctx context.Context, userID uint) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint) (int64, error)
	GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts the edge if absent. It reports false when the
// (follower_id, following_id) unique index already held the edge.
func (r *PostgresFollowRepository) CreateFollow(ctx context.Context, follow *models.Follow) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(follow)
	if res.Error != nil {
		return false, translate(res.Error, "follow", follow.FollowingID)
	}
	return res.RowsAffected > 0, nil
}

// DeleteFollow removes the edge and reports whether one existed
func (r *PostgresFollowRepository) DeleteFollow(ctx context.Context, followerID, followingID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return false, translate(res.Error, "follow", followingID)
	}
	return res.RowsAffected > 0, nil
}

func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, translate(err, "follow", followingID)
	}
	return count > 0, nil
}

func (r *PostgresFollowRepository) GetFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	db := r.db.WithContext(ctx)
	err := db.Where("id IN (?)",
		db.Model(&models.Follow{}).Select("follower_id").Where("following_id = ?", userID),
	).Order("id ASC").Find(&users).Error
	return users, translate(err, "follow", userID)
}

func (r *PostgresFollowRepository) GetFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	db := r.db.WithContext(ctx)
	err := db.Where("id IN (?)",
		db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", userID),
	).Order("id ASC").Find(&users).Error
	return users, translate(err, "follow", userID)
}

func (r *PostgresFollowRepository) GetFollowersCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, translate(err, "follow", userID)
}

func (r *PostgresFollowRepository) GetFollowingCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, translate(err, "follow", userID)
}

func (r *PostgresFollowRepository) GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Order("following_id ASC").
		Pluck("following_id", &ids).Error
	return ids, translate(err, "follow", userID)
}
