package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/anonto42/nano-social/backend/internal/metrics"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
)

// ContentService owns posts, comments and likes. Comments and likes on
// someone else's post notify the post author in the same transaction.
type ContentService struct {
	store         *repositories.Store
	notifications *NotificationService
	journal       journal
	now           func() time.Time
}

// NewContentService returns a new ContentService.
func NewContentService(
	store *repositories.Store,
	notifications *NotificationService,
	activities repositories.ActivityRepository,
	logger *slog.Logger,
) *ContentService {
	return &ContentService{
		store:         store,
		notifications: notifications,
		journal:       newJournal(activities, logger),
		now:           utcNow,
	}
}

// CreatePost publishes a new post authored by actorID
func (s *ContentService) CreatePost(ctx context.Context, actorID uint, req models.CreatePostRequest) (*models.Post, error) {
	if actorID == 0 {
		return nil, models.NewUnauthenticatedError()
	}
	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Content) == "" {
		return nil, models.NewValidationError("title and content are required")
	}
	now := s.now()
	post := &models.Post{
		AuthorID:  actorID,
		Title:     title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	metrics.ContentCreated.WithLabelValues(models.ActivityPost).Inc()
	s.journal.record(ctx, actorID, models.ActivityPost, "post", post.ID, now)
	return s.store.Posts.GetPostByID(ctx, post.ID)
}

// GetPost returns a post with its author and counters
func (s *ContentService) GetPost(ctx context.Context, postID uint) (*models.Post, error) {
	return s.store.Posts.GetPostByID(ctx, postID)
}

// ListPosts returns posts newest first, optionally filtered by author or search text
func (s *ContentService) ListPosts(ctx context.Context, filter repositories.PostFilter, req PageRequest) (Page[models.Post], error) {
	filter.Search = strings.TrimSpace(filter.Search)
	posts, total, err := s.store.Posts.ListPosts(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return Page[models.Post]{}, err
	}
	return newPage(posts, req, total), nil
}

// UpdatePost edits a post; only its author may do so
func (s *ContentService) UpdatePost(ctx context.Context, actorID, postID uint, req models.UpdatePostRequest) (*models.Post, error) {
	if actorID == 0 {
		return nil, models.NewUnauthenticatedError()
	}
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		post, err := tx.Posts.GetPostByID(ctx, postID)
		if err != nil {
			return err
		}
		if post.AuthorID != actorID {
			return models.NewForbiddenError("You can only edit your own posts")
		}
		if req.Title != nil {
			if post.Title = strings.TrimSpace(*req.Title); post.Title == "" {
				return models.NewValidationError("title cannot be empty")
			}
		}
		if req.Content != nil {
			if strings.TrimSpace(*req.Content) == "" {
				return models.NewValidationError("content cannot be empty")
			}
			post.Content = *req.Content
		}
		return tx.Posts.UpdatePost(ctx, post)
	})
	if err != nil {
		return nil, err
	}
	return s.store.Posts.GetPostByID(ctx, postID)
}

// DeletePost removes a post together with its comments, likes and every
// notification pointing at the post or its comments
func (s *ContentService) DeletePost(ctx context.Context, actorID, postID uint) error {
	if actorID == 0 {
		return models.NewUnauthenticatedError()
	}
	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		post, err := tx.Posts.GetPostByID(ctx, postID)
		if err != nil {
			return err
		}
		if post.AuthorID != actorID {
			return models.NewForbiddenError("You can only delete your own posts")
		}
		if err := tx.Notifications.DeleteForPostComments(ctx, postID); err != nil {
			return err
		}
		if err := tx.Notifications.DeleteByTargets(ctx, models.TargetPost, []uint{postID}); err != nil {
			return err
		}
		return tx.Posts.DeletePost(ctx, postID)
	})
}

// CreateComment adds a comment to a post and notifies the post author
func (s *ContentService) CreateComment(ctx context.Context, actorID, postID uint, req models.CreateCommentRequest) (*models.Comment, error) {
	if actorID == 0 {
		return nil, models.NewUnauthenticatedError()
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, models.NewValidationError("content is required")
	}

	var (
		comment      *models.Comment
		notification *models.Notification
	)
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		post, err := tx.Posts.GetPostByID(ctx, postID)
		if err != nil {
			return err
		}
		now := s.now()
		comment = &models.Comment{
			PostID:    post.ID,
			AuthorID:  actorID,
			Content:   req.Content,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Comments.CreateComment(ctx, comment); err != nil {
			return err
		}
		notification, err = s.notifications.Notify(ctx, tx, post.AuthorID, actorID,
			models.VerbCommentedOnPost, models.CommentTarget(comment))
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.ContentCreated.WithLabelValues(models.ActivityComment).Inc()
	s.notifications.Deliver(ctx, notification)
	s.journal.record(ctx, actorID, models.ActivityComment, "comment", comment.ID, comment.CreatedAt)
	return s.store.Comments.GetCommentByID(ctx, comment.ID)
}

// GetComment returns a comment with its author
func (s *ContentService) GetComment(ctx context.Context, commentID uint) (*models.Comment, error) {
	return s.store.Comments.GetCommentByID(ctx, commentID)
}

// ListComments returns comments oldest first, optionally filtered by post or author
func (s *ContentService) ListComments(ctx context.Context, filter repositories.CommentFilter, req PageRequest) (Page[models.Comment], error) {
	if filter.PostID != 0 {
		if _, err := s.store.Posts.GetPostByID(ctx, filter.PostID); err != nil {
			return Page[models.Comment]{}, err
		}
	}
	comments, total, err := s.store.Comments.ListComments(ctx, filter, req.Limit(), req.Offset())
	if err != nil {
		return Page[models.Comment]{}, err
	}
	return newPage(comments, req, total), nil
}

// UpdateComment edits a comment; only its author may do so
func (s *ContentService) UpdateComment(ctx context.Context, actorID, commentID uint, req models.UpdateCommentRequest) (*models.Comment, error) {
	if actorID == 0 {
		return nil, models.NewUnauthenticatedError()
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, models.NewValidationError("content is required")
	}
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		comment, err := tx.Comments.GetCommentByID(ctx, commentID)
		if err != nil {
			return err
		}
		if comment.AuthorID != actorID {
			return models.NewForbiddenError("You can only edit your own comments")
		}
		comment.Content = req.Content
		return tx.Comments.UpdateComment(ctx, comment)
	})
	if err != nil {
		return nil, err
	}
	return s.store.Comments.GetCommentByID(ctx, commentID)
}

// DeleteComment removes a comment and the notifications pointing at it
func (s *ContentService) DeleteComment(ctx context.Context, actorID, commentID uint) error {
	if actorID == 0 {
		return models.NewUnauthenticatedError()
	}
	return s.store.Transaction(ctx, func(tx *repositories.Store) error {
		comment, err := tx.Comments.GetCommentByID(ctx, commentID)
		if err != nil {
			return err
		}
		if comment.AuthorID != actorID {
			return models.NewForbiddenError("You can only delete your own comments")
		}
		if err := tx.Notifications.DeleteByTargets(ctx, models.TargetComment, []uint{commentID}); err != nil {
			return err
		}
		return tx.Comments.DeleteComment(ctx, commentID)
	})
}

// Like records that actor likes a post and notifies the post author
func (s *ContentService) Like(ctx context.Context, actorID, postID uint) (*models.Like, error) {
	if actorID == 0 {
		return nil, models.NewUnauthenticatedError()
	}

	var (
		like         *models.Like
		notification *models.Notification
	)
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		post, err := tx.Posts.GetPostByID(ctx, postID)
		if err != nil {
			return err
		}
		like = &models.Like{UserID: actorID, PostID: post.ID, CreatedAt: s.now()}
		created, err := tx.Likes.CreateLike(ctx, like)
		if err != nil {
			return err
		}
		if !created {
			return models.NewAlreadyLikedError(postID)
		}
		notification, err = s.notifications.Notify(ctx, tx, post.AuthorID, actorID,
			models.VerbLikedPost, models.PostTarget(post))
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.LikeEvents.WithLabelValues(models.ActivityLike).Inc()
	s.notifications.Deliver(ctx, notification)
	s.journal.record(ctx, actorID, models.ActivityLike, "post", postID, like.CreatedAt)
	return like, nil
}

// Unlike removes the actor's like from a post
func (s *ContentService) Unlike(ctx context.Context, actorID, postID uint) error {
	if actorID == 0 {
		return models.NewUnauthenticatedError()
	}
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if _, err := tx.Posts.GetPostByID(ctx, postID); err != nil {
			return err
		}
		deleted, err := tx.Likes.DeleteLike(ctx, postID, actorID)
		if err != nil {
			return err
		}
		if !deleted {
			return models.NewNotLikedError(postID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.LikeEvents.WithLabelValues(models.ActivityUnlike).Inc()
	s.journal.record(ctx, actorID, models.ActivityUnlike, "post", postID, s.now())
	return nil
}
