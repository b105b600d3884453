package ui

import (
	"myclient/adapters/memory"
	"myclient/service"

	"github.com/go-kit/log"
)

func newTestStorage() (*service.Storage, *memory.KVStore) {
	kv := memory.New()
	return service.NewStorage(kv, log.NewNopLogger()), kv
}
