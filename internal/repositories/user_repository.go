package repositories

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (bool, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]models.User, int64, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id uint) error
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser inserts the user unless the handle or firebase uid is taken.
// It reports false, without error, when a unique constraint swallowed the insert.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(user)
	if res.Error != nil {
		return false, translate(res.Error, "user", user.Handle)
	}
	return res.RowsAffected > 0, nil
}

// GetUserByID retrieves a user by ID
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "user", id)
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a user by Firebase UID
func (r *PostgresUserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, translate(err, "user", firebaseUID)
	}
	return &user, nil
}

// ListUsers returns one page of users ordered by id, plus the total count
func (r *PostgresUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	var (
		users []models.User
		total int64
	)
	base := r.db.WithContext(ctx).Model(&models.User{}).Session(&gorm.Session{})
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "user", nil)
	}
	if err := base.Order("id ASC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, translate(err, "user", nil)
	}
	return users, total, nil
}

// UpdateUser persists the mutable profile fields
func (r *PostgresUserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Model(user).Select("email", "bio", "updated_at").Updates(user).Error
	return translate(err, "user", user.ID)
}

// DeleteUser deletes a user; posts, comments, likes, edges and notifications cascade
func (r *PostgresUserRepository) DeleteUser(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return translate(res.Error, "user", id)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("user", id)
	}
	return nil
}
