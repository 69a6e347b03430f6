package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a PersistentStore backend that persists entries to
// Redis (or a Redis-protocol-compatible store) instead of the local
// filesystem. It plays the same durability-tier role as FileStore; it
// is not a shared cache tier, each Engine still owns its own in-memory
// entry table and index.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore constructs a RedisStore from an existing client. keys
// are namespaced under prefix (default "toolguard:cache:") to avoid
// collisions with other Redis users.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "toolguard:cache:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (rs *RedisStore) redisKey(namespace, key string) string {
	return rs.prefix + namespace + ":" + key
}

func (rs *RedisStore) SaveAsync(namespace, key string, e persistedEntry) {
	go func() {
		data, err := json.Marshal(e.toEnvelope(namespace, key))
		if err != nil {
			return
		}
		ctx := context.Background()
		_ = rs.client.Set(ctx, rs.redisKey(namespace, key), data, e.TTL).Err()
	}()
}

func (rs *RedisStore) DeleteAsync(namespace, key string) {
	go func() {
		ctx := context.Background()
		_ = rs.client.Del(ctx, rs.redisKey(namespace, key)).Err()
	}()
}

func (rs *RedisStore) LoadAll(ctx context.Context) ([]StoreRecord, error) {
	var out []StoreRecord
	iter := rs.client.Scan(ctx, 0, rs.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := rs.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			continue
		}
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			continue
		}
		if env.Namespace == "" || env.Key == "" {
			continue
		}
		out = append(out, StoreRecord{Namespace: env.Namespace, Key: env.Key, Entry: env.toPersistedEntry()})
	}
	if err := iter.Err(); err != nil {
		return out, fmt.Errorf("redisstore: scan: %w", err)
	}
	return out, nil
}
