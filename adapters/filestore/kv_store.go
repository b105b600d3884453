package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"myclient/helpers"
	"myclient/interfaces"
	"myclient/service"
)

// DefaultFileName is the store file created under the user config dir when no path is configured.
const DefaultFileName = "store.json"

// kvStore keeps client state in one JSON object file, {"key": "text", ...}. The file survives restarts the way
// browser localStorage does. Every write rewrites the whole file through a temp file and rename.
type kvStore struct {
	path string
	mu   sync.RWMutex
}

// NewKVStore creates the file implementation of interfaces.KVStore at path. Panics on empty path.
// The file and its directory are created on first write.
func NewKVStore(path string) interfaces.KVStore {
	return &kvStore{path: helpers.StrPanic(path, "adapters.filestore.kv_store.go: path is required")}
}

// DefaultPath returns <user config dir>/myclient/store.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "myclient", DefaultFileName), nil
}

func (s *kvStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

func (s *kvStore) Set(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

func (s *kvStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.save(values)
}

// load reads the file; a missing or empty file is an empty store.
func (s *kvStore) load() (map[string]string, error) {
	values := map[string]string{}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, service.NewInternalServerError("Store read error", fmt.Errorf("can't read store file '%s', err: %w", s.path, err))
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, service.NewInternalServerError("Store file is corrupt", fmt.Errorf("can't decode store file '%s', err: %w", s.path, err))
	}
	return values, nil
}

func (s *kvStore) save(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return service.NewInternalServerError("Store write error", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return service.NewInternalServerError("Store write error", fmt.Errorf("can't create store dir '%s', err: %w", dir, err))
	}

	tmp, err := os.CreateTemp(dir, ".store-*.json")
	if err != nil {
		return service.NewInternalServerError("Store write error", fmt.Errorf("can't create temp file in '%s', err: %w", dir, err))
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return service.NewInternalServerError("Store write error", fmt.Errorf("can't write temp file '%s', err: %w", tmpName, err))
	}
	if err := tmp.Close(); err != nil {
		return service.NewInternalServerError("Store write error", fmt.Errorf("can't close temp file '%s', err: %w", tmpName, err))
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return service.NewInternalServerError("Store write error", fmt.Errorf("can't replace store file '%s', err: %w", s.path, err))
	}
	return nil
}
