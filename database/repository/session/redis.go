package sessionRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"doclink/utils"

	"github.com/go-redis/redis/v8"
)

type redisTier struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisTier constructs a long-lived tier whose keys live under
// doclink:session:<namespace>: and expire after ttl.
func NewRedisTier(client *redis.Client, namespace string, ttl time.Duration) Tier {
	return &redisTier{
		client: client,
		prefix: utils.SessionKeyPrefix + namespace + ":",
		ttl:    ttl,
	}
}

func (r *redisTier) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read session key %s: %w", key, err)
	}
	return v, true, nil
}

func (r *redisTier) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.prefix+key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session key %s: %w", key, err)
	}
	return nil
}

func (r *redisTier) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.prefix + k
	}
	if err := r.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to delete session keys: %w", err)
	}
	return nil
}

func (r *redisTier) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan session keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to clear session keys: %w", err)
	}
	return nil
}
