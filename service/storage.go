package service

import (
	"context"
	"encoding/json"
	"fmt"

	"myclient/helpers"
	"myclient/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Storage is the JSON-aware layer over the durable key/value store. Strings are stored as raw text,
// every other value is JSON-encoded; reads decode JSON and fall back to the raw text.
//
// Used by Session (token, user) and ui.Theme (theme). Built once in cmd/main over the configured KVStore.
type Storage struct {
	kv     interfaces.KVStore
	logger log.Logger
}

// NewStorage creates a Storage over kv. Panics on nil kv or logger.
func NewStorage(kv interfaces.KVStore, logger log.Logger) *Storage {
	return &Storage{
		kv:     helpers.NilPanic(kv, "service.storage.go: kv store is required"),
		logger: log.WithPrefix(helpers.NilPanic(logger, "service.storage.go: logger is required"), "component", "Storage"),
	}
}

// Get returns the value stored under key: the JSON-decoded value when the text is valid JSON, the raw string otherwise.
//
// Returns: (nil, nil) when the key is absent; (nil, error) only when the backing store fails.
func (s *Storage) Get(ctx context.Context, key string) (any, error) {
	raw, ok, err := s.GetText(ctx, key)
	if err != nil || !ok {
		return nil, err
	}

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return raw, nil
	}
	return value, nil
}

// GetText returns the raw stored text under key without decoding.
func (s *Storage) GetText(ctx context.Context, key string) (string, bool, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("storage get %q: %w", key, err)
	}
	return raw, ok, nil
}

// Decode reads key and JSON-decodes it into dst.
//
// Returns: (true, nil) when dst was filled; (false, nil) when the key is absent or the stored text does not decode
// into dst; (false, error) when the backing store fails.
func (s *Storage) Decode(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok, err := s.GetText(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		level.Debug(s.logger).Log("msg", "stored value is not decodable", "key", key, "err", err)
		return false, nil
	}
	return true, nil
}

// Set stores value under key. string and []byte values are written as-is, json.RawMessage as its text,
// anything else JSON-encoded.
func (s *Storage) Set(ctx context.Context, key string, value any) error {
	var text string
	switch v := value.(type) {
	case string:
		text = v
	case json.RawMessage:
		text = string(v)
	case []byte:
		text = string(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return NewBadParameterError(fmt.Sprintf("value for %q is not serializable", key), err)
		}
		text = string(b)
	}

	if err := s.kv.Set(ctx, key, text); err != nil {
		return fmt.Errorf("storage set %q: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func (s *Storage) Remove(ctx context.Context, key string) error {
	if err := s.kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("storage remove %q: %w", key, err)
	}
	return nil
}
