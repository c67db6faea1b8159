package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_GetPostByIDLoadsAuthorAndCounts(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	post := createPost(t, store, alice, 1)

	require.NoError(t, store.Comments.CreateComment(ctx, &models.Comment{PostID: post.ID, AuthorID: bob.ID, Content: "one"}))
	require.NoError(t, store.Comments.CreateComment(ctx, &models.Comment{PostID: post.ID, AuthorID: alice.ID, Content: "two"}))
	_, err := store.Likes.CreateLike(ctx, &models.Like{UserID: bob.ID, PostID: post.ID})
	require.NoError(t, err)

	got, err := store.Posts.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Author)
	assert.Equal(t, "alice", got.Author.Handle)
	assert.Equal(t, int64(2), got.CommentsCount)
	assert.Equal(t, int64(1), got.LikesCount)

	_, err = store.Posts.GetPostByID(ctx, 9999)
	assert.True(t, models.IsKind(err, models.KindNotFound))
}

func TestPostRepository_ListPostsFilters(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	p1 := createPost(t, store, alice, 1)
	p2 := createPost(t, store, bob, 2)
	p3 := &models.Post{AuthorID: bob.ID, Title: "Gophers", Content: "all about GOLANG", CreatedAt: baseTime.Add(3 * time.Minute), UpdatedAt: baseTime}
	require.NoError(t, store.Posts.CreatePost(ctx, p3))

	posts, total, err := store.Posts.ListPosts(ctx, PostFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []uint{p3.ID, p2.ID, p1.ID}, postIDs(posts))

	posts, total, err = store.Posts.ListPosts(ctx, PostFilter{AuthorID: bob.ID}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []uint{p3.ID, p2.ID}, postIDs(posts))

	posts, total, err = store.Posts.ListPosts(ctx, PostFilter{Search: "golang"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []uint{p3.ID}, postIDs(posts))

	posts, total, err = store.Posts.ListPosts(ctx, PostFilter{Search: "nothing matches"}, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, posts)
}

func TestPostRepository_GetFeedOnlyFollowedAuthors(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()

	a := createUser(t, store, "a")
	b := createUser(t, store, "b")
	c := createUser(t, store, "c")
	d := createUser(t, store, "d")
	follow(t, store, a, b)
	follow(t, store, a, c)

	p1 := createPost(t, store, b, 1)
	p2 := createPost(t, store, b, 2)
	p3 := createPost(t, store, c, 3)
	createPost(t, store, d, 4)
	createPost(t, store, a, 5)

	posts, total, err := store.Posts.GetFeed(ctx, a.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []uint{p3.ID, p2.ID, p1.ID}, postIDs(posts))

	posts, total, err = store.Posts.GetFeed(ctx, d.ID, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, posts)
}

func TestPostRepository_GetFeedBreaksTimestampTiesByID(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()

	a := createUser(t, store, "a")
	b := createUser(t, store, "b")
	follow(t, store, a, b)

	var want []uint
	for i := 0; i < 4; i++ {
		p := &models.Post{AuthorID: b.ID, Title: "same time", Content: "x", CreatedAt: baseTime, UpdatedAt: baseTime}
		require.NoError(t, store.Posts.CreatePost(ctx, p))
		want = append([]uint{p.ID}, want...)
	}

	first, _, err := store.Posts.GetFeed(ctx, a.ID, 2, 0)
	require.NoError(t, err)
	second, _, err := store.Posts.GetFeed(ctx, a.ID, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, want, append(postIDs(first), postIDs(second)...))
}

func TestPostRepository_UpdateAndDeleteCascade(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	post := createPost(t, store, alice, 1)
	require.NoError(t, store.Comments.CreateComment(ctx, &models.Comment{PostID: post.ID, AuthorID: bob.ID, Content: "c"}))
	_, err := store.Likes.CreateLike(ctx, &models.Like{UserID: bob.ID, PostID: post.ID})
	require.NoError(t, err)

	post.Title = "edited"
	require.NoError(t, store.Posts.UpdatePost(ctx, post))
	got, err := store.Posts.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Title)

	require.NoError(t, store.Posts.DeletePost(ctx, post.ID))
	assert.True(t, models.IsKind(store.Posts.DeletePost(ctx, post.ID), models.KindNotFound))

	var comments, likes int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	require.NoError(t, db.Model(&models.Like{}).Count(&likes).Error)
	assert.Zero(t, comments)
	assert.Zero(t, likes)
}

func postIDs(posts []models.Post) []uint {
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}
