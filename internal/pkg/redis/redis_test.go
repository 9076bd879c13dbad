package redis

import (
	"KolAnalytics/internal/api/config"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	prev := Rdb
	require.NoError(t, InitRedis(config.RedisConfig{Addr: mr.Addr()}))
	t.Cleanup(func() {
		_ = Rdb.Close()
		Rdb = prev
	})
	return mr
}

func TestInitRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	prev := Rdb
	err := InitRedis(config.RedisConfig{Addr: addr, DialTimeoutSeconds: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), addr)
	assert.Same(t, prev, Rdb, "a failed init keeps the previous client")
}

func TestTryLockAndUnLock(t *testing.T) {
	mr := useMiniredis(t)
	ctx := context.Background()

	ok, err := TryLock(ctx, "lock:job:test", "owner-a", time.Minute, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = TryLock(ctx, "lock:job:test", "owner-b", time.Minute, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	UnLock(ctx, "lock:job:test", "owner-b")
	assert.True(t, mr.Exists("lock:job:test"), "only the holder can release the lock")

	UnLock(ctx, "lock:job:test", "owner-a")
	assert.False(t, mr.Exists("lock:job:test"))
}

func TestDeleteByPattern(t *testing.T) {
	mr := useMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetWithExpiration(ctx, "dashboard:summary:1", "a", time.Minute))
	require.NoError(t, SetWithExpiration(ctx, "dashboard:summary:2", "b", time.Minute))
	require.NoError(t, SetWithExpiration(ctx, "auth:blacklist:x", 1, time.Minute))

	require.NoError(t, DeleteByPattern(ctx, "dashboard:summary:*"))
	assert.False(t, mr.Exists("dashboard:summary:1"))
	assert.False(t, mr.Exists("dashboard:summary:2"))
	assert.True(t, mr.Exists("auth:blacklist:x"))

	value, err := GetValue(ctx, "auth:blacklist:x")
	require.NoError(t, err)
	assert.Equal(t, "1", value)
}
