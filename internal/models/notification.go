package models

import (
	"fmt"
	"time"
)

const (
	VerbCommentedOnPost = "commented on your post"
	VerbLikedPost       = "liked your post"
)

// TargetKind names the entity a notification points at
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// Target is the tagged reference from a notification to a post or a comment
type Target struct {
	Kind TargetKind
	ID   uint
}

func PostTarget(post *Post) Target {
	return Target{Kind: TargetPost, ID: post.ID}
}

func CommentTarget(comment *Comment) Target {
	return Target{Kind: TargetComment, ID: comment.ID}
}

// Validate rejects unknown kinds and unsaved entities
func (t Target) Validate() error {
	switch t.Kind {
	case TargetPost, TargetComment:
	default:
		return fmt.Errorf("unknown notification target kind %q", t.Kind)
	}
	if t.ID == 0 {
		return fmt.Errorf("notification target %s has no id", t.Kind)
	}
	return nil
}

// Notification represents a user notification
type Notification struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	RecipientID uint       `json:"recipient_id" gorm:"not null;index"`
	Recipient   *User      `json:"-" gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE"`
	ActorID     uint       `json:"actor_id" gorm:"not null;index"`
	Actor       *User      `json:"actor,omitempty" gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE"`
	Verb        string     `json:"verb" gorm:"size:255;not null"`
	TargetKind  TargetKind `json:"target_type" gorm:"size:20;not null;index:idx_notification_target"`
	TargetID    uint       `json:"target_id" gorm:"not null;index:idx_notification_target"`
	Unread      bool       `json:"unread" gorm:"not null;default:true;index"`
	CreatedAt   time.Time  `json:"timestamp" gorm:"index"`
}

func (n *Notification) Target() Target {
	return Target{Kind: n.TargetKind, ID: n.TargetID}
}

func (n *Notification) SetTarget(t Target) {
	n.TargetKind = t.Kind
	n.TargetID = t.ID
}
