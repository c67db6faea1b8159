// Package publisher pushes freshly created notifications to Redis so that
// connected clients can be told about them without polling.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

// UserChannel is the Redis channel carrying a user's notifications
func UserChannel(userID uint) string {
	return fmt.Sprintf("notifications:user:%d", userID)
}

// Event is the JSON payload published for each notification
type Event struct {
	ID         uint              `json:"id"`
	ActorID    uint              `json:"actor_id"`
	Verb       string            `json:"verb"`
	TargetType models.TargetKind `json:"target_type"`
	TargetID   uint              `json:"target_id"`
	Unread     bool              `json:"unread"`
	Timestamp  string            `json:"timestamp"`
}

// RedisPublisher publishes notification events into per-user Redis channels
type RedisPublisher struct {
	rdb *redis.Client
}

// NewRedisPublisher creates a publisher; a nil client turns every call into a no-op
func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

// PublishNotification sends n to its recipient's channel
func (p *RedisPublisher) PublishNotification(ctx context.Context, n *models.Notification) error {
	if p.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(Event{
		ID:         n.ID,
		ActorID:    n.ActorID,
		Verb:       n.Verb,
		TargetType: n.TargetKind,
		TargetID:   n.TargetID,
		Unread:     n.Unread,
		Timestamp:  n.CreatedAt.UTC().Format("2006-01-02T15:04:05.000000Z07:00"),
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	return p.rdb.Publish(ctx, UserChannel(n.RecipientID), payload).Err()
}
