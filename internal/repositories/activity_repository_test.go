package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoTestDatabase connects to MONGO_URI or skips the test
func mongoTestDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set, skipping MongoDB journal test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database("socialgraph_test_" + time.Now().Format("20060102150405"))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

func TestMongoActivityRepository_RecordAndList(t *testing.T) {
	repo := NewMongoActivityRepository(mongoTestDatabase(t))
	ctx := context.Background()

	for i, verb := range []string{models.ActivityFollow, models.ActivityPost, models.ActivityLike} {
		require.NoError(t, repo.RecordActivity(ctx, &models.Activity{
			ActorID:     7,
			Verb:        verb,
			SubjectType: "post",
			SubjectID:   uint(i + 1),
			CreatedAt:   baseTime.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.RecordActivity(ctx, &models.Activity{ActorID: 8, Verb: models.ActivityPost}))

	activities, err := repo.GetActivitiesByActorID(ctx, 7, 0, 10)
	require.NoError(t, err)
	require.Len(t, activities, 3)
	assert.Equal(t, models.ActivityLike, activities[0].Verb)
	assert.Equal(t, models.ActivityFollow, activities[2].Verb)
	assert.False(t, activities[0].ID.IsZero())

	activities, err = repo.GetActivitiesByActorID(ctx, 7, 1, 1)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, models.ActivityPost, activities[0].Verb)
}

func TestNopActivityRepository(t *testing.T) {
	var repo ActivityRepository = NopActivityRepository{}
	require.NoError(t, repo.RecordActivity(context.Background(), &models.Activity{ActorID: 1}))
	activities, err := repo.GetActivitiesByActorID(context.Background(), 1, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, activities)
}
