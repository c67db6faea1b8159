package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ActivityFollow   = "follow"
	ActivityUnfollow = "unfollow"
	ActivityPost     = "post"
	ActivityComment  = "comment"
	ActivityLike     = "like"
	ActivityUnlike   = "unlike"
)

// Activity is one entry of the append-only activity journal stored in MongoDB
type Activity struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ActorID     uint               `json:"actor_id" bson:"actor_id"`
	Verb        string             `json:"verb" bson:"verb"`
	SubjectType string             `json:"subject_type" bson:"subject_type"` // user, post, comment
	SubjectID   uint               `json:"subject_id" bson:"subject_id"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}
