package service

import (
	"context"
	"sync"

	"myclient/interfaces/mock"
)

// newKVMock returns a KVStoreMock backed by an in-memory map, and the map for direct inspection.
func newKVMock() (*mock.KVStoreMock, map[string]string) {
	var mu sync.Mutex
	data := map[string]string{}
	kv := &mock.KVStoreMock{
		GetFunc: func(ctx context.Context, key string) (string, bool, error) {
			mu.Lock()
			defer mu.Unlock()
			v, ok := data[key]
			return v, ok, nil
		},
		SetFunc: func(ctx context.Context, key string, value string) error {
			mu.Lock()
			defer mu.Unlock()
			data[key] = value
			return nil
		},
		DeleteFunc: func(ctx context.Context, key string) error {
			mu.Lock()
			defer mu.Unlock()
			delete(data, key)
			return nil
		},
	}
	return kv, data
}
