package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestAside_MissThenHit(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	var got []string
	fetch := func() error {
		fetches++
		got = []string{"a", "b"}
		return nil
	}

	require.NoError(t, Aside(ctx, "posts:test", &got, time.Minute, fetch))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, []string{"a", "b"}, got)

	// Second call must be served from the cache.
	var again []string
	require.NoError(t, Aside(ctx, "posts:test", &again, time.Minute, func() error {
		fetches++
		return nil
	}))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, []string{"a", "b"}, again)
}

func TestAside_FetchErrorPropagates(t *testing.T) {
	setupMiniredis(t)

	wantErr := errors.New("db down")
	var dest []string
	err := Aside(context.Background(), "posts:err", &dest, time.Minute, func() error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestAside_NoClientFallsThrough(t *testing.T) {
	SetClient(nil)

	fetches := 0
	var dest int
	require.NoError(t, Aside(context.Background(), "k", &dest, time.Minute, func() error {
		fetches++
		dest = 42
		return nil
	}))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, 42, dest)
}

func TestInvalidatePublicPosts(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PublicPostsKey, []string{"x"}, time.Minute))
	require.NoError(t, SetJSON(ctx, PublicPostsTag("go"), []string{"y"}, time.Minute))

	InvalidatePublicPosts(ctx)

	assert.False(t, mr.Exists(PublicPostsKey))
	assert.False(t, mr.Exists(PublicPostsTag("go")))
}
