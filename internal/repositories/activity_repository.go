package repositories

import (
	"context"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityCollection is the MongoDB collection holding the activity journal
const ActivityCollection = "activities"

// ActivityRepository defines the interface for the append-only activity journal
type ActivityRepository interface {
	RecordActivity(ctx context.Context, activity *models.Activity) error
	GetActivitiesByActorID(ctx context.Context, actorID uint, skip, limit int64) ([]models.Activity, error)
}

// MongoActivityRepository implements ActivityRepository for MongoDB
type MongoActivityRepository struct {
	collection *mongo.Collection
}

// NewMongoActivityRepository creates a new MongoActivityRepository
func NewMongoActivityRepository(db *mongo.Database) *MongoActivityRepository {
	return &MongoActivityRepository{collection: db.Collection(ActivityCollection)}
}

// RecordActivity appends one entry to the journal
func (r *MongoActivityRepository) RecordActivity(ctx context.Context, activity *models.Activity) error {
	activity.ID = primitive.NewObjectID()
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}
	if _, err := r.collection.InsertOne(ctx, activity); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetActivitiesByActorID retrieves an actor's journal newest first
func (r *MongoActivityRepository) GetActivitiesByActorID(ctx context.Context, actorID uint, skip, limit int64) ([]models.Activity, error) {
	findOptions := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"actor_id": actorID}, findOptions)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	defer cursor.Close(ctx)

	activities := []models.Activity{}
	if err = cursor.All(ctx, &activities); err != nil {
		return nil, models.NewInternalError(err)
	}
	return activities, nil
}

// NopActivityRepository discards writes and reads back nothing.
// It stands in when MONGO_URI is not configured.
type NopActivityRepository struct{}

func (NopActivityRepository) RecordActivity(context.Context, *models.Activity) error { return nil }

func (NopActivityRepository) GetActivitiesByActorID(context.Context, uint, int64, int64) ([]models.Activity, error) {
	return []models.Activity{}, nil
}
