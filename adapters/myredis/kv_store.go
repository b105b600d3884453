package myredis

import (
	"context"
	"errors"
	"fmt"

	"myclient/helpers"
	"myclient/interfaces"
	"myclient/service"

	"github.com/go-redis/redis/v8"
)

// kvStore keeps client state (token, user, theme) in Redis under "<prefix>:<key>", so several
// client processes on one machine or a team share one session.
type kvStore struct {
	client redis.UniversalClient
	prefix string
}

// NewKVStore creates the Redis implementation of interfaces.KVStore. Panics on nil client or empty prefix.
func NewKVStore(client redis.UniversalClient, prefix string) interfaces.KVStore {
	return &kvStore{
		client: helpers.NilPanic(client, "adapters.myredis.kv_store.go: redis client is required"),
		prefix: helpers.StrPanic(prefix, "adapters.myredis.kv_store.go: prefix is required"),
	}
}

func (r *kvStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.generateKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, service.NewInternalServerError("Redis read key error", fmt.Errorf("can't read key '%s' from redis, err: %w", key, err))
	}
	return value, true, nil
}

func (r *kvStore) Set(ctx context.Context, key string, value string) error {
	err := r.client.Set(ctx, r.generateKey(key), value, 0).Err()
	if err != nil {
		return service.NewInternalServerError("Redis write key error", fmt.Errorf("can't write key '%s' to redis, err: %w", key, err))
	}
	return nil
}

func (r *kvStore) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, r.generateKey(key)).Err()
	if err != nil {
		return service.NewInternalServerError("Redis delete key error", fmt.Errorf("can't delete key '%s' from redis, err: %w", key, err))
	}
	return nil
}

func (r *kvStore) generateKey(key string) string {
	return r.prefix + ":" + key
}
