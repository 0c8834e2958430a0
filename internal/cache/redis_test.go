package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	XP       int64  `json:"xp"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	var missing profile
	found, err := GetJSON(ctx, UserKey(1), &missing)
	require.NoError(t, err)
	assert.False(t, found)

	stored := profile{ID: 1, Username: "hero", XP: 150}
	require.NoError(t, SetJSON(ctx, UserKey(1), stored, UserTTL))

	var loaded profile
	found, err = GetJSON(ctx, UserKey(1), &loaded)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, stored, loaded)
}

func TestAsideFetchesOnceThenHitsCache(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *profile) func() error {
		return func() error {
			calls++
			*dest = profile{ID: 7, Username: "adept", XP: 300}
			return nil
		}
	}

	var first profile
	require.NoError(t, Aside(ctx, UserKey(7), &first, UserTTL, fetch(&first)))
	assert.Equal(t, 1, calls)

	var second profile
	require.NoError(t, Aside(ctx, UserKey(7), &second, UserTTL, fetch(&second)))
	assert.Equal(t, 1, calls, "second read should be served from cache")
	assert.Equal(t, first, second)
}

func TestInvalidateUserForcesRefetch(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(3), profile{ID: 3, Username: "stale"}, UserTTL))
	InvalidateUser(ctx, 3)

	var p profile
	found, err := GetJSON(ctx, UserKey(3), &p)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAsideTTLExpiry(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, RankTableKey(), []profile{{ID: 1}}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var out []profile
	found, err := GetJSON(ctx, RankTableKey(), &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNilClientDegradesToNoop(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(9), profile{ID: 9}, UserTTL))
	var p profile
	found, err := GetJSON(ctx, UserKey(9), &p)
	require.NoError(t, err)
	assert.False(t, found)

	calls := 0
	require.NoError(t, Aside(ctx, UserKey(9), &p, UserTTL, func() error {
		calls++
		p = profile{ID: 9, Username: "direct"}
		return nil
	}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "direct", p.Username)
}
