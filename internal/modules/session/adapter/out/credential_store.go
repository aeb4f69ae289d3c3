package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"studyhub/internal/modules/session/domain"
	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/platform/kv"
)

// KVCredentialStore keeps the token under jwtToken and the user record under
// user. The user record carries the token as well; jwtToken wins on load.
type KVCredentialStore struct {
	store kv.Store
}

func NewKVCredentialStore(store kv.Store) *KVCredentialStore {
	return &KVCredentialStore{store: store}
}

func (s *KVCredentialStore) Save(ctx context.Context, session domain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	if err := s.store.Set(ctx, domain.TokenKey, []byte(session.Token)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if err := s.store.Set(ctx, domain.UserKey, raw); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *KVCredentialStore) Load(ctx context.Context) (domain.Session, error) {
	token, err := s.store.Get(ctx, domain.TokenKey)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return domain.Session{}, apperrors.ErrNoActiveSession
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("load token: %w", err)
	}
	raw, err := s.store.Get(ctx, domain.UserKey)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return domain.Session{}, apperrors.ErrNoActiveSession
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("load user: %w", err)
	}
	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return domain.Session{}, fmt.Errorf("%w: user record: %v", apperrors.ErrLocalStorageCorrupt, err)
	}
	session.Token = string(token)
	if !session.Valid() {
		return domain.Session{}, fmt.Errorf("%w: stored session lacks token or id", apperrors.ErrLocalStorageCorrupt)
	}
	return session, nil
}

func (s *KVCredentialStore) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, domain.TokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	if err := s.store.Delete(ctx, domain.UserKey); err != nil {
		return fmt.Errorf("clear user: %w", err)
	}
	return nil
}
