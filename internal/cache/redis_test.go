package cache

import (
	"context"
	"testing"
	"time"

	"pulse/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(rdb)
	t.Cleanup(func() {
		SetClient(nil)
		_ = rdb.Close()
	})
	return mr
}

func TestAsideCachesFetchResult(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *models.Post) func() error {
		return func() error {
			fetches++
			*dest = models.Post{ID: 7, Title: "cached"}
			return nil
		}
	}

	var first models.Post
	require.NoError(t, Aside(ctx, PostKey(7), &first, PostTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "cached", first.Title)

	// Second call is served from the cache.
	var second models.Post
	require.NoError(t, Aside(ctx, PostKey(7), &second, PostTTL, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "cached", second.Title)
}

func TestAsidePropagatesFetchError(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	var post models.Post
	err := Aside(ctx, PostKey(1), &post, PostTTL, func() error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, mr.Exists(PostKey(1)))
}

func TestAsideDropsCorruptEntry(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()
	require.NoError(t, mr.Set(PostKey(3), "{not json"))

	var post models.Post
	err := Aside(ctx, PostKey(3), &post, PostTTL, func() error {
		post = models.Post{ID: 3, Title: "fresh"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", post.Title)
}

func TestAsideWithoutClient(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var post models.Post
	err := Aside(ctx, PostKey(1), &post, time.Minute, func() error {
		post = models.Post{ID: 1, Title: "direct"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", post.Title)
}

func TestInvalidatePost(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()
	require.NoError(t, mr.Set(PostKey(5), "{}"))
	require.NoError(t, mr.Set(PostsListKey, "[]"))
	require.NoError(t, mr.Set(UserKey(5), "{}"))

	InvalidatePost(ctx, 5)

	assert.False(t, mr.Exists(PostKey(5)))
	assert.False(t, mr.Exists(PostsListKey))
	assert.True(t, mr.Exists(UserKey(5)))
}
