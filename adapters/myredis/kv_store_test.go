package myredis

import (
	"context"
	"testing"

	"myclient/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrefix = "myclient"

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	return miniredis.RunT(t)
}

func newTestStore(t *testing.T, mr *miniredis.Miniredis) *kvStore {
	t.Helper()
	client, err := NewRedisUniversalClient("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewKVStore(client, testPrefix).(*kvStore)
}

func TestNewKVStore_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "adapters.myredis.kv_store.go: redis client is required", func() {
		NewKVStore(nil, testPrefix)
	})
	mr := setupTestRedis(t)
	client, err := NewRedisUniversalClient("redis://" + mr.Addr())
	require.NoError(t, err)
	defer client.Close()
	assert.PanicsWithValue(t, "adapters.myredis.kv_store.go: prefix is required", func() {
		NewKVStore(client, "")
	})
}

func TestKVStore_SetGet(t *testing.T) {
	ctx := context.Background()
	mr := setupTestRedis(t)
	store := newTestStore(t, mr)

	require.NoError(t, store.Set(ctx, "token", "abc.def"))

	got, ok, err := store.Get(ctx, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc.def", got)

	raw, err := mr.Get(testPrefix + ":token")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", raw)
	assert.Zero(t, mr.TTL(testPrefix+":token"))
}

func TestKVStore_GetAbsent(t *testing.T) {
	mr := setupTestRedis(t)
	store := newTestStore(t, mr)

	got, ok, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestKVStore_Delete(t *testing.T) {
	ctx := context.Background()
	mr := setupTestRedis(t)
	store := newTestStore(t, mr)

	require.NoError(t, mr.Set(testPrefix+":user", `{"username":"alice"}`))
	require.NoError(t, store.Delete(ctx, "user"))
	assert.False(t, mr.Exists(testPrefix+":user"))
	require.NoError(t, store.Delete(ctx, "user"))
}

func TestKVStore_ServerDown(t *testing.T) {
	ctx := context.Background()
	mr := setupTestRedis(t)
	store := newTestStore(t, mr)
	mr.Close()

	_, _, err := store.Get(ctx, "token")
	require.Error(t, err)
	assert.Equal(t, service.ErrInternalServerError, service.ToAPIErrorCode(err))

	err = store.Set(ctx, "token", "x")
	require.Error(t, err)
	assert.Equal(t, service.ErrInternalServerError, service.ToAPIErrorCode(err))

	err = store.Delete(ctx, "token")
	require.Error(t, err)
}

func TestKVStore_WithStorage(t *testing.T) {
	ctx := context.Background()
	mr := setupTestRedis(t)
	store := newTestStore(t, mr)
	storage := service.NewStorage(store, nopLogger())

	require.NoError(t, storage.Set(ctx, "theme", "dark"))
	require.NoError(t, storage.Set(ctx, "user", map[string]string{"username": "bob"}))

	theme, err := storage.Get(ctx, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)

	user, err := storage.Get(ctx, "user")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"username": "bob"}, user)
}

func nopLogger() log.Logger { return log.NewNopLogger() }
