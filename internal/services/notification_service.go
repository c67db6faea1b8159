package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/anonto42/nano-social/backend/internal/metrics"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
)

// NotificationService writes notifications for content events and manages
// their read state.
type NotificationService struct {
	store     *repositories.Store
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewNotificationService returns a new NotificationService. A nil publisher
// disables realtime delivery.
func NewNotificationService(store *repositories.Store, publisher Publisher, logger *slog.Logger) *NotificationService {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationService{store: store, publisher: publisher, logger: logger, now: utcNow}
}

// Notify records that actor did verb to target, addressed to recipient.
// It is the only way notifications are created and must run inside the
// caller's transaction. Nothing is written when actor and recipient are the
// same user; the returned notification is nil in that case.
func (s *NotificationService) Notify(ctx context.Context, tx *repositories.Store, recipientID, actorID uint, verb string, target models.Target) (*models.Notification, error) {
	if recipientID == actorID {
		return nil, nil
	}
	if err := target.Validate(); err != nil {
		return nil, models.NewInternalError(err)
	}
	n := &models.Notification{
		RecipientID: recipientID,
		ActorID:     actorID,
		Verb:        verb,
		Unread:      true,
		CreatedAt:   s.now(),
	}
	n.SetTarget(target)
	if err := tx.Notifications.CreateNotification(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Deliver runs the post-commit side effects of a notification. It never
// fails: the notification row is already durable.
func (s *NotificationService) Deliver(ctx context.Context, n *models.Notification) {
	if n == nil {
		return
	}
	metrics.NotificationsCreated.WithLabelValues(n.Verb).Inc()
	if err := s.publisher.PublishNotification(ctx, n); err != nil {
		metrics.SideEffectFailures.WithLabelValues("publisher").Inc()
		s.logger.WarnContext(ctx, "failed to publish notification",
			slog.String("component", "fanout"),
			slog.Uint64("notification_id", uint64(n.ID)),
			slog.Uint64("recipient_id", uint64(n.RecipientID)),
			slog.Any("error", err),
		)
		return
	}
	s.logger.DebugContext(ctx, "notification delivered",
		slog.String("component", "fanout"),
		slog.Uint64("notification_id", uint64(n.ID)),
		slog.String("verb", n.Verb),
	)
}

// ListFor returns the user's notifications, newest first
func (s *NotificationService) ListFor(ctx context.Context, userID uint, req PageRequest) (Page[models.Notification], error) {
	if userID == 0 {
		return Page[models.Notification]{}, models.NewUnauthenticatedError()
	}
	items, total, err := s.store.Notifications.GetByRecipientID(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		return Page[models.Notification]{}, err
	}
	return newPage(items, req, total), nil
}

// UnreadCount returns how many of the user's notifications are unread
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	if userID == 0 {
		return 0, models.NewUnauthenticatedError()
	}
	return s.store.Notifications.GetUnreadCount(ctx, userID)
}

// MarkRead clears the unread flag. Only the recipient may do so, and marking
// an already read notification succeeds.
func (s *NotificationService) MarkRead(ctx context.Context, requesterID, notificationID uint) (*models.Notification, error) {
	if requesterID == 0 {
		return nil, models.NewUnauthenticatedError()
	}
	n, err := s.store.Notifications.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n.RecipientID != requesterID {
		return nil, models.NewForbiddenError("You can only mark your own notifications as read")
	}
	if n.Unread {
		if err := s.store.Notifications.MarkAsRead(ctx, n.ID); err != nil {
			return nil, err
		}
		n.Unread = false
	}
	return n, nil
}

// MarkAllRead clears every unread flag of the user and returns how many changed
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	if userID == 0 {
		return 0, models.NewUnauthenticatedError()
	}
	return s.store.Notifications.MarkAllAsRead(ctx, userID)
}
