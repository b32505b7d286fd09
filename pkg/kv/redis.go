package kv

import (
	"context"
	"errors"

	"github.com/merendaflow/merenda-backend/pkg/redis"
)

// RedisStore persists blobs through the shared Redis client. Blobs are
// stored without TTL: the persisted state has no natural expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps the client as a persistence adapter.
func NewRedisStore(client *redis.Client) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Load(ctx context.Context, key string) ([]byte, error) {
	blob, err := r.client.GetBytes(ctx, r.client.BlobKey(key))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return blob, nil
}

func (r *RedisStore) Save(ctx context.Context, key string, blob []byte) error {
	return r.client.Set(ctx, r.client.BlobKey(key), blob, 0)
}

// Ping verifies the backend connection.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}
