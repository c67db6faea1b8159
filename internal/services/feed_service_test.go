package services

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedIDs(posts []models.Post) []uint {
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

func TestFeed_FollowedAuthorsNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "a")
	b := f.user(t, "b")
	c := f.user(t, "c")
	d := f.user(t, "d")
	f.follow(t, a, b)
	f.follow(t, a, c)

	p1 := f.post(t, b, "p1")
	p2 := f.post(t, b, "p2")
	p3 := f.post(t, c, "p3")
	p4 := f.post(t, d, "p4")

	page, err := f.svc.Feed.Feed(ctx, a.ID, NewPageRequest(1, 0))
	require.NoError(t, err)
	assert.Equal(t, []uint{p3.ID, p2.ID, p1.ID}, feedIDs(page.Items))
	assert.NotContains(t, feedIDs(page.Items), p4.ID)
	assert.Equal(t, DefaultPageSize, page.Meta.ItemsPerPage)
	require.NotNil(t, page.Items[0].Author)
	assert.Equal(t, "c", page.Items[0].Author.Handle)
}

func TestFeed_EmptyCases(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.user(t, "a")
	b := f.user(t, "b")

	page, err := f.svc.Feed.Feed(ctx, a.ID, NewPageRequest(1, 10))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.Meta.TotalItems)

	f.follow(t, a, b)
	f.post(t, b, "only")
	page, err = f.svc.Feed.Feed(ctx, a.ID, NewPageRequest(5, 10))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(1), page.Meta.TotalItems)
	assert.False(t, page.Meta.HasNextPage)

	_, err = f.svc.Feed.Feed(ctx, 0, NewPageRequest(1, 10))
	assert.True(t, models.IsKind(err, models.KindUnauthenticated))
}

func TestFeed_PageSizeIsClampedAndPagesDoNotOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reader := f.user(t, "reader")
	b := f.user(t, "b")
	c := f.user(t, "c")
	f.follow(t, reader, b)
	f.follow(t, reader, c)

	for i := 0; i < 120; i++ {
		author := b
		if i%2 == 1 {
			author = c
		}
		f.post(t, author, fmt.Sprintf("post %d", i))
	}

	first, err := f.svc.Feed.Feed(ctx, reader.ID, NewPageRequest(1, 500))
	require.NoError(t, err)
	assert.Len(t, first.Items, MaxPageSize)
	assert.Equal(t, MaxPageSize, first.Meta.ItemsPerPage)
	assert.Equal(t, int64(120), first.Meta.TotalItems)
	assert.Equal(t, 2, first.Meta.TotalPages)
	assert.True(t, first.Meta.HasNextPage)

	second, err := f.svc.Feed.Feed(ctx, reader.ID, NewPageRequest(2, 500))
	require.NoError(t, err)
	assert.Len(t, second.Items, 20)

	seen := make(map[uint]bool)
	for _, p := range first.Items {
		seen[p.ID] = true
	}
	for _, p := range second.Items {
		assert.False(t, seen[p.ID], "post %d on both pages", p.ID)
	}
}

func TestFeed_SmallSetWithOversizedPage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reader := f.user(t, "reader")
	b := f.user(t, "b")
	f.follow(t, reader, b)
	for i := 0; i < 25; i++ {
		f.post(t, b, fmt.Sprintf("post %d", i))
	}

	first, err := f.svc.Feed.Feed(ctx, reader.ID, NewPageRequest(1, 500))
	require.NoError(t, err)
	assert.Len(t, first.Items, 25)
	assert.Equal(t, 100, first.Meta.ItemsPerPage)

	second, err := f.svc.Feed.Feed(ctx, reader.ID, NewPageRequest(2, 500))
	require.NoError(t, err)
	assert.Empty(t, second.Items)

	byTen, err := f.svc.Feed.Feed(ctx, reader.ID, NewPageRequest(1, 10))
	require.NoError(t, err)
	next, err := f.svc.Feed.Feed(ctx, reader.ID, NewPageRequest(2, 10))
	require.NoError(t, err)
	for _, id := range feedIDs(next.Items) {
		assert.NotContains(t, feedIDs(byTen.Items), id)
	}
}

func TestFeed_HugePageIsEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reader := f.user(t, "reader")
	b := f.user(t, "b")
	f.follow(t, reader, b)
	for i := 0; i < 3; i++ {
		f.post(t, b, fmt.Sprintf("post %d", i))
	}

	page, err := f.svc.Feed.Feed(ctx, reader.ID, NewPageRequest(math.MaxInt/10+2, 10))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(3), page.Meta.TotalItems)
	assert.Equal(t, MaxPage, page.Meta.CurrentPage)
	assert.False(t, page.Meta.HasNextPage)
}
