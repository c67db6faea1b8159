package services

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
)

// FeedService assembles a user's home feed from the accounts they follow.
type FeedService struct {
	store *repositories.Store
}

// NewFeedService returns a new FeedService.
func NewFeedService(store *repositories.Store) *FeedService {
	return &FeedService{store: store}
}

// Feed returns posts by followed authors, newest first. Following nobody, or
// asking for a page past the end, yields an empty page rather than an error.
func (s *FeedService) Feed(ctx context.Context, userID uint, req PageRequest) (Page[models.Post], error) {
	if userID == 0 {
		return Page[models.Post]{}, models.NewUnauthenticatedError()
	}
	posts, total, err := s.store.Posts.GetFeed(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		return Page[models.Post]{}, err
	}
	return newPage(posts, req, total), nil
}
