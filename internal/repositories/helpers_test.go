package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database with foreign keys on.
// One connection keeps the whole test on the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

func createUser(t *testing.T, store *Store, handle string) *models.User {
	t.Helper()
	user := &models.User{Handle: handle, Email: handle + "@example.com"}
	created, err := store.Users.CreateUser(context.Background(), user)
	require.NoError(t, err)
	require.True(t, created)
	return user
}

var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func createPost(t *testing.T, store *Store, author *models.User, n int) *models.Post {
	t.Helper()
	at := baseTime.Add(time.Duration(n) * time.Minute)
	post := &models.Post{
		AuthorID:  author.ID,
		Title:     fmt.Sprintf("post %d", n),
		Content:   fmt.Sprintf("content of post %d", n),
		CreatedAt: at,
		UpdatedAt: at,
	}
	require.NoError(t, store.Posts.CreatePost(context.Background(), post))
	return post
}

func follow(t *testing.T, store *Store, follower, following *models.User) {
	t.Helper()
	created, err := store.Follows.CreateFollow(context.Background(), &models.Follow{
		FollowerID:  follower.ID,
		FollowingID: following.ID,
	})
	require.NoError(t, err)
	require.True(t, created)
}
