package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/anonto42/nano-social/backend/internal/metrics"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
)

// Publisher pushes a committed notification to live subscribers
type Publisher interface {
	PublishNotification(ctx context.Context, n *models.Notification) error
}

type nopPublisher struct{}

func (nopPublisher) PublishNotification(context.Context, *models.Notification) error { return nil }

func utcNow() time.Time {
	return time.Now().UTC()
}

// journal writes activity entries after a transaction has committed.
// Failures are logged and counted; the relational write already succeeded.
type journal struct {
	activities repositories.ActivityRepository
	logger     *slog.Logger
}

func newJournal(activities repositories.ActivityRepository, logger *slog.Logger) journal {
	if activities == nil {
		activities = repositories.NopActivityRepository{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return journal{activities: activities, logger: logger}
}

func (j journal) record(ctx context.Context, actorID uint, verb, subjectType string, subjectID uint, at time.Time) {
	err := j.activities.RecordActivity(ctx, &models.Activity{
		ActorID:     actorID,
		Verb:        verb,
		SubjectType: subjectType,
		SubjectID:   subjectID,
		CreatedAt:   at,
	})
	if err != nil {
		metrics.SideEffectFailures.WithLabelValues("journal").Inc()
		j.logger.WarnContext(ctx, "failed to record activity",
			slog.String("component", "journal"),
			slog.String("verb", verb),
			slog.Uint64("actor_id", uint64(actorID)),
			slog.Any("error", err),
		)
	}
}
