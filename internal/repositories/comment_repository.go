package repositories

import (
	"context"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
)

// CommentFilter narrows a comment listing; zero fields match everything
type CommentFilter struct {
	PostID   uint
	AuthorID uint
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	ListComments(ctx context.Context, filter CommentFilter, limit, offset int) ([]models.Comment, int64, error)
	UpdateComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return translate(err, "comment", comment.PostID)
	}
	return nil
}

// GetCommentByID retrieves a comment and its author
func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Author").First(&comment, id).Error; err != nil {
		return nil, translate(err, "comment", id)
	}
	return &comment, nil
}

// ListComments returns comments oldest first, the way a thread reads
func (r *PostgresCommentRepository) ListComments(ctx context.Context, filter CommentFilter, limit, offset int) ([]models.Comment, int64, error) {
	var (
		comments []models.Comment
		total    int64
	)
	base := r.db.WithContext(ctx).Model(&models.Comment{})
	if filter.PostID != 0 {
		base = base.Where("post_id = ?", filter.PostID)
	}
	if filter.AuthorID != 0 {
		base = base.Where("author_id = ?", filter.AuthorID)
	}
	base = base.Session(&gorm.Session{})

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "comment", nil)
	}
	err := base.Preload("Author").
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, translate(err, "comment", nil)
	}
	return comments, total, nil
}

// UpdateComment replaces the content of a comment
func (r *PostgresCommentRepository) UpdateComment(ctx context.Context, comment *models.Comment) error {
	comment.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", comment.ID).Updates(map[string]interface{}{
		"content":    comment.Content,
		"updated_at": comment.UpdatedAt,
	})
	if res.Error != nil {
		return translate(res.Error, "comment", comment.ID)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("comment", comment.ID)
	}
	return nil
}

// DeleteComment deletes a comment by ID
func (r *PostgresCommentRepository) DeleteComment(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return translate(res.Error, "comment", id)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("comment", id)
	}
	return nil
}
