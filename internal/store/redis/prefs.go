package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// SaveSidebarCollapsed persists the sidebar-collapse preference.
func (s *Store) SaveSidebarCollapsed(ctx context.Context, collapsed bool) error {
	if err := s.client.Set(ctx, KeySidebarCollapsed, strconv.FormatBool(collapsed), 0).Err(); err != nil {
		return fmt.Errorf("failed to save sidebar preference: %w", err)
	}
	return nil
}

// LoadSidebarCollapsed restores the sidebar-collapse preference,
// defaulting to expanded.
func (s *Store) LoadSidebarCollapsed(ctx context.Context) (bool, error) {
	val, err := s.client.Get(ctx, KeySidebarCollapsed).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load sidebar preference: %w", err)
	}

	collapsed, err := strconv.ParseBool(val)
	if err != nil {
		return false, nil
	}
	return collapsed, nil
}
