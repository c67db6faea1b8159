package services

import (
	"log/slog"

	"github.com/anonto42/nano-social/backend/internal/repositories"
)

// Services bundles every domain service over one Store
type Services struct {
	Users         *UserService
	Relationships *RelationshipService
	Content       *ContentService
	Feed          *FeedService
	Notifications *NotificationService
}

// New wires the services together. activities and publisher may be nil, in
// which case journaling and realtime delivery are skipped.
func New(store *repositories.Store, activities repositories.ActivityRepository, publisher Publisher, logger *slog.Logger) *Services {
	notifications := NewNotificationService(store, publisher, logger)
	return &Services{
		Users:         NewUserService(store),
		Relationships: NewRelationshipService(store, activities, logger),
		Content:       NewContentService(store, notifications, activities, logger),
		Feed:          NewFeedService(store),
		Notifications: notifications,
	}
}
