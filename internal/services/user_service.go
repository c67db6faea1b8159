package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
)

// UserService is the user directory: registration, lookup and profile upkeep.
type UserService struct {
	store *repositories.Store
}

// NewUserService returns a new UserService.
func NewUserService(store *repositories.Store) *UserService {
	return &UserService{store: store}
}

// Register creates a user. Handle and firebase uid uniqueness is enforced by
// the insert itself; a collision yields AlreadyExists.
func (s *UserService) Register(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	handle := strings.TrimSpace(req.Handle)
	if handle == "" {
		return nil, models.NewValidationError("handle is required")
	}
	user := &models.User{
		Handle: handle,
		Email:  strings.TrimSpace(req.Email),
		Bio:    req.Bio,
	}
	if uid := strings.TrimSpace(req.FirebaseUID); uid != "" {
		user.FirebaseUID = &uid
	}

	created, err := s.store.Users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, models.NewAlreadyExistsError(fmt.Sprintf("A user with handle %s or the same identity already exists", handle))
	}
	return user, nil
}

// Get returns a profile with follow counters; IsFollowing is relative to viewerID
func (s *UserService) Get(ctx context.Context, viewerID, userID uint) (*models.UserProfile, error) {
	user, err := s.store.Users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := &models.UserProfile{User: *user}
	if profile.FollowersCount, err = s.store.Follows.GetFollowersCount(ctx, userID); err != nil {
		return nil, err
	}
	if profile.FollowingCount, err = s.store.Follows.GetFollowingCount(ctx, userID); err != nil {
		return nil, err
	}
	if viewerID != 0 && viewerID != userID {
		if profile.IsFollowing, err = s.store.Follows.IsFollowing(ctx, viewerID, userID); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

// List returns users ordered by id
func (s *UserService) List(ctx context.Context, req PageRequest) (Page[models.User], error) {
	users, total, err := s.store.Users.ListUsers(ctx, req.Limit(), req.Offset())
	if err != nil {
		return Page[models.User]{}, err
	}
	return newPage(users, req, total), nil
}

// UpdateProfile changes the actor's own email and bio
func (s *UserService) UpdateProfile(ctx context.Context, actorID uint, req models.UpdateUserRequest) (*models.User, error) {
	if actorID == 0 {
		return nil, models.NewUnauthenticatedError()
	}
	user, err := s.store.Users.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if req.Email != nil {
		user.Email = strings.TrimSpace(*req.Email)
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if err := s.store.Users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the actor's own account and everything it owns
func (s *UserService) Delete(ctx context.Context, actorID uint) error {
	if actorID == 0 {
		return models.NewUnauthenticatedError()
	}
	return s.store.Users.DeleteUser(ctx, actorID)
}

// ResolveFirebaseUID maps a verified Firebase identity onto a local user
func (s *UserService) ResolveFirebaseUID(ctx context.Context, uid string) (*models.User, error) {
	if uid == "" {
		return nil, models.NewUnauthenticatedError()
	}
	return s.store.Users.GetUserByFirebaseUID(ctx, uid)
}
