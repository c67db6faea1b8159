package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/anonto42/nano-social/backend/internal/metrics"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
)

// RelationshipService maintains the directed follow graph. Followers and
// following are both read from the one follows table, so they cannot drift.
type RelationshipService struct {
	store   *repositories.Store
	journal journal
	now     func() time.Time
}

// NewRelationshipService returns a new RelationshipService.
func NewRelationshipService(store *repositories.Store, activities repositories.ActivityRepository, logger *slog.Logger) *RelationshipService {
	return &RelationshipService{
		store:   store,
		journal: newJournal(activities, logger),
		now:     utcNow,
	}
}

// Follow makes actor follow target
func (s *RelationshipService) Follow(ctx context.Context, actorID, targetID uint) (*models.User, error) {
	if actorID == 0 {
		return nil, models.NewUnauthenticatedError()
	}
	if actorID == targetID {
		return nil, models.NewInvalidOperationError("You cannot follow yourself")
	}

	var target *models.User
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		if target, err = tx.Users.GetUserByID(ctx, targetID); err != nil {
			return err
		}
		created, err := tx.Follows.CreateFollow(ctx, &models.Follow{
			FollowerID:  actorID,
			FollowingID: targetID,
			CreatedAt:   s.now(),
		})
		if err != nil {
			return err
		}
		if !created {
			return models.NewAlreadyFollowingError(target.Handle)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.FollowEvents.WithLabelValues(models.ActivityFollow).Inc()
	s.journal.record(ctx, actorID, models.ActivityFollow, "user", targetID, s.now())
	return target, nil
}

// Unfollow removes the actor -> target edge. A self edge never exists, so
// unfollowing yourself reports NotFollowing like any other missing edge.
func (s *RelationshipService) Unfollow(ctx context.Context, actorID, targetID uint) (*models.User, error) {
	if actorID == 0 {
		return nil, models.NewUnauthenticatedError()
	}

	var target *models.User
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		if target, err = tx.Users.GetUserByID(ctx, targetID); err != nil {
			return err
		}
		deleted, err := tx.Follows.DeleteFollow(ctx, actorID, targetID)
		if err != nil {
			return err
		}
		if !deleted {
			return models.NewNotFollowingError(target.Handle)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.FollowEvents.WithLabelValues(models.ActivityUnfollow).Inc()
	s.journal.record(ctx, actorID, models.ActivityUnfollow, "user", targetID, s.now())
	return target, nil
}

// FollowersOf returns every user following userID
func (s *RelationshipService) FollowersOf(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.store.Users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.store.Follows.GetFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// FollowingOf returns every user that userID follows
func (s *RelationshipService) FollowingOf(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.store.Users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	users, err := s.store.Follows.GetFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// ActivityOf returns a user's recent journal entries, newest first
func (s *RelationshipService) ActivityOf(ctx context.Context, userID uint, req PageRequest) ([]models.Activity, error) {
	if _, err := s.store.Users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.journal.activities.GetActivitiesByActorID(ctx, userID, int64(req.Offset()), int64(req.Limit()))
}
