package persist

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisRepository stores records in redis under a shared key prefix.
type RedisRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisRepository wraps an existing redis client. An empty prefix
// defaults to "gardensim".
func NewRedisRepository(client *redis.Client, prefix string) *RedisRepository {
	if prefix == "" {
		prefix = "gardensim"
	}
	return &RedisRepository{client: client, prefix: prefix}
}

func (r *RedisRepository) key(kind, id string) string {
	return fmt.Sprintf("%s:%s:%s", r.prefix, kind, id)
}

// Load implements Repository.
func (r *RedisRepository) Load(ctx context.Context, kind, id string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(kind, id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s/%s: %w", kind, id, err)
	}
	return data, nil
}

// Save implements Repository.
func (r *RedisRepository) Save(ctx context.Context, kind, id string, data []byte) error {
	if err := r.client.Set(ctx, r.key(kind, id), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s/%s: %w", kind, id, err)
	}
	return nil
}

// Delete implements Repository.
func (r *RedisRepository) Delete(ctx context.Context, kind, id string) error {
	if err := r.client.Del(ctx, r.key(kind, id)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", kind, id, err)
	}
	return nil
}
