package repositories

import (
	"context"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
)

// PostFilter narrows a post listing
type PostFilter struct {
	AuthorID uint   // zero means any author
	Search   string // case-insensitive match on title or content
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	ListPosts(ctx context.Context, filter PostFilter, limit, offset int) ([]models.Post, int64, error)
	GetFeed(ctx context.Context, followerID uint, limit, offset int) ([]models.Post, int64, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

const postWithCounts = "posts.*, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count, " +
	"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS likes_count"

// newestFirst is the stable ordering used by every post listing; id breaks
// created_at ties so adjacent pages never skip or repeat a row.
const newestFirst = "posts.created_at DESC, posts.id DESC"

// CreatePost creates a new post
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return translate(err, "post", post.Title)
	}
	return nil
}

// GetPostByID retrieves a post with its author and counters
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Select(postWithCounts).
		Preload("Author").
		First(&post, id).Error
	if err != nil {
		return nil, translate(err, "post", id)
	}
	return &post, nil
}

// ListPosts retrieves posts newest first with pagination
func (r *PostgresPostRepository) ListPosts(ctx context.Context, filter PostFilter, limit, offset int) ([]models.Post, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Post{})
	if filter.AuthorID != 0 {
		base = base.Where("posts.author_id = ?", filter.AuthorID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where("LOWER(posts.title) LIKE LOWER(?) OR LOWER(posts.content) LIKE LOWER(?)", pattern, pattern)
	}
	return r.page(base.Session(&gorm.Session{}), limit, offset)
}

// GetFeed retrieves posts authored by anyone followerID follows
func (r *PostgresPostRepository) GetFeed(ctx context.Context, followerID uint, limit, offset int) ([]models.Post, int64, error) {
	db := r.db.WithContext(ctx)
	base := db.Model(&models.Post{}).Where("posts.author_id IN (?)",
		db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", followerID),
	).Session(&gorm.Session{})
	return r.page(base, limit, offset)
}

func (r *PostgresPostRepository) page(base *gorm.DB, limit, offset int) ([]models.Post, int64, error) {
	var (
		posts []models.Post
		total int64
	)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "post", nil)
	}
	if total == 0 {
		return []models.Post{}, 0, nil
	}
	err := base.Select(postWithCounts).
		Preload("Author").
		Order(newestFirst).
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, translate(err, "post", nil)
	}
	return posts, total, nil
}

// UpdatePost updates title and content of an existing post
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", post.ID).Updates(map[string]interface{}{
		"title":      post.Title,
		"content":    post.Content,
		"updated_at": post.UpdatedAt,
	})
	if res.Error != nil {
		return translate(res.Error, "post", post.ID)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("post", post.ID)
	}
	return nil
}

// DeletePost deletes a post by ID; comments and likes cascade
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return translate(res.Error, "post", id)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("post", id)
	}
	return nil
}
