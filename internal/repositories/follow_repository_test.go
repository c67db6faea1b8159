package repositories

import (
	"context"
	"testing"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_BothDirectionsReadOneEdge(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	carol := createUser(t, store, "carol")

	follow(t, store, alice, bob)
	follow(t, store, carol, bob)

	followers, err := store.Follows.GetFollowers(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	assert.Equal(t, alice.ID, followers[0].ID)
	assert.Equal(t, carol.ID, followers[1].ID)

	following, err := store.Follows.GetFollowing(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, bob.ID, following[0].ID)

	ids, err := store.Follows.GetFollowingIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{bob.ID}, ids)

	count, err := store.Follows.GetFollowersCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = store.Follows.GetFollowingCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFollowRepository_CreateFollowIsIdempotentOnConflict(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	follow(t, store, alice, bob)

	created, err := store.Follows.CreateFollow(ctx, &models.Follow{FollowerID: alice.ID, FollowingID: bob.ID})
	require.NoError(t, err)
	assert.False(t, created)

	var edges int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&edges).Error)
	assert.Equal(t, int64(1), edges)
}

func TestFollowRepository_RejectsSelfEdge(t *testing.T) {
	store := NewStore(newTestDB(t))
	alice := createUser(t, store, "alice")

	_, err := store.Follows.CreateFollow(context.Background(), &models.Follow{FollowerID: alice.ID, FollowingID: alice.ID})
	assert.Error(t, err)
}

func TestFollowRepository_DeleteFollow(t *testing.T) {
	store := NewStore(newTestDB(t))
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")
	follow(t, store, alice, bob)

	deleted, err := store.Follows.DeleteFollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.Follows.DeleteFollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	ok, err := store.Follows.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
