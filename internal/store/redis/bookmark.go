package redis

import (
	"context"
	"fmt"
)

// SaveBookmarkSet replaces the whole persisted bookmark set in one
// pipeline. Replacing instead of patching keeps the durable copy an
// exact mirror of the in-memory set, including after a revert.
func (s *Store) SaveBookmarkSet(ctx context.Context, ids map[string]struct{}) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, KeyBookmarks)
	if len(ids) > 0 {
		members := make([]interface{}, 0, len(ids))
		for id := range ids {
			members = append(members, id)
		}
		pipe.SAdd(ctx, KeyBookmarks, members...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save bookmark set: %w", err)
	}
	return nil
}

// LoadBookmarkSet restores the persisted bookmark set. An absent key
// yields an empty set.
func (s *Store) LoadBookmarkSet(ctx context.Context) (map[string]struct{}, error) {
	members, err := s.client.SMembers(ctx, KeyBookmarks).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load bookmark set: %w", err)
	}

	ids := make(map[string]struct{}, len(members))
	for _, id := range members {
		ids[id] = struct{}{}
	}
	return ids, nil
}
