package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sarkaridakiya/dakiya/internal/domain"
)

// SaveSession persists the session record. Sessions carry no TTL; they
// live until logout clears them.
func (s *Store) SaveSession(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, KeySession, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// LoadSession restores the persisted session. A nil session with a nil
// error means no session is stored.
func (s *Store) LoadSession(ctx context.Context) (*domain.Session, error) {
	data, err := s.client.Get(ctx, KeySession).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// SaveTokens persists both bearer tokens in one round trip.
func (s *Store) SaveTokens(ctx context.Context, access, refresh string) error {
	pipe := s.client.Pipeline()
	pipe.Set(ctx, KeyAccessToken, access, 0)
	if refresh != "" {
		pipe.Set(ctx, KeyRefreshToken, refresh, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save tokens: %w", err)
	}
	return nil
}

// LoadTokens restores the persisted tokens. Missing keys come back as
// empty strings, not errors.
func (s *Store) LoadTokens(ctx context.Context) (access, refresh string, err error) {
	access, err = s.getString(ctx, KeyAccessToken)
	if err != nil {
		return "", "", err
	}
	refresh, err = s.getString(ctx, KeyRefreshToken)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// ClearSession removes the session record and both tokens. Called on
// logout and when a restored token turns out to be expired.
func (s *Store) ClearSession(ctx context.Context) error {
	if err := s.client.Del(ctx, KeySession, KeyAccessToken, KeyRefreshToken).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *Store) getString(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return val, nil
}
