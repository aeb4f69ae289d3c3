package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	hclog "github.com/hashicorp/go-hclog"

	"studyhub/internal/modules/notification/domain"
	"studyhub/internal/platform/kv"
)

type KVStore struct {
	store  kv.Store
	logger hclog.Logger
}

func NewKVStore(store kv.Store, logger hclog.Logger) *KVStore {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &KVStore{store: store, logger: logger}
}

func (s *KVStore) LoadNotifications(ctx context.Context) ([]domain.Notification, error) {
	return loadJSON[[]domain.Notification](ctx, s, domain.NotificationsKey)
}

func (s *KVStore) SaveNotifications(ctx context.Context, list []domain.Notification) error {
	if list == nil {
		list = []domain.Notification{}
	}
	return s.save(ctx, domain.NotificationsKey, list)
}

func (s *KVStore) LoadCounts(ctx context.Context) (map[string]int, error) {
	counts, err := loadJSON[map[string]int](ctx, s, domain.ContentCountsKey)
	if err != nil {
		return nil, err
	}
	if counts == nil {
		counts = map[string]int{}
	}
	return counts, nil
}

func (s *KVStore) SaveCounts(ctx context.Context, counts map[string]int) error {
	return s.save(ctx, domain.ContentCountsKey, counts)
}

// loadJSON returns the zero value when the key is missing or the record does
// not decode cleanly. json.Unmarshal keeps filling its target after a type
// mismatch, so the result is only taken from a fully successful decode.
func loadJSON[T any](ctx context.Context, s *KVStore, key string) (T, error) {
	var zero T
	raw, err := s.store.Get(ctx, key)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return zero, nil
	}
	if err != nil {
		return zero, fmt.Errorf("load %s: %w", key, err)
	}
	var decoded T
	if err := json.Unmarshal(raw, &decoded); err != nil {
		s.logger.Warn("ignoring unreadable record", "key", key, "error", err)
		return zero, nil
	}
	return decoded, nil
}

func (s *KVStore) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
