// Package redis is the durable client storage: the session record,
// bearer tokens, the bookmarked-id set and UI preferences survive
// restarts here. Everything else the board holds is transient.
package redis

import (
	"github.com/redis/go-redis/v9"
)

// Store handles all durable client-state operations.
type Store struct {
	client *redis.Client
}

// NewStore creates a durable state store on an established client.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}
