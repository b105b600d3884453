package interfaces

import "context"

// KVStore is the durable client-side key/value store the storage adapter writes text values to.
// Implemented by adapters/filestore (default), adapters/myredis and adapters/memory.
//
//go:generate moq -stub -out mock/kv_store.go -pkg mock . KVStore
type KVStore interface {
	// Get returns the raw text stored under key.
	// Returns:
	// 1) (value, true, nil) when the key exists;
	// 2) ("", false, nil) when the key is absent (absence is not an error);
	// 3) ("", false, err) when the backing store cannot be read.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
