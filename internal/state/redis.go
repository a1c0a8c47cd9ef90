package state

import (
	"context"
	"fmt"

	"github.com/mickytroxxy/bluegrass/pkg/redis"
)

// RedisStore persists the snapshot under a single namespaced Redis key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore builds a Redis-backed persister keyed by the root key.
func NewRedisStore(client *redis.Client, rootKey string) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if rootKey == "" {
		return nil, fmt.Errorf("root key required")
	}
	return &RedisStore{client: client, key: client.StateKey(rootKey)}, nil
}

// Save writes the blob with no expiry.
func (r *RedisStore) Save(ctx context.Context, blob []byte) error {
	return r.client.Set(ctx, r.key, blob, 0)
}

// Load reads the persisted blob, or ErrNotFound when the key is absent.
func (r *RedisStore) Load(ctx context.Context) ([]byte, error) {
	value, err := r.client.Get(ctx, r.key)
	if err != nil {
		if redis.IsNil(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(value), nil
}
