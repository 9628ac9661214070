package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"damai-site/pkg/config"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// Snapshot stores whole JSON-encoded listings under a single key. A nil
// client turns every call into a miss so callers never need to branch.
//
// Each key has a generation counter. Invalidate bumps it, and Store only
// writes when the counter still matches the value the reader saw before it
// queried the database, so a slow reader cannot put back a listing that a
// concurrent write already invalidated.
type Snapshot struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSnapshot(client *redis.Client, ttl time.Duration) *Snapshot {
	return &Snapshot{client: client, ttl: ttl}
}

func generationKey(key string) string { return key + ":gen" }

// Get reports whether key was present and decoded into dst.
func (s *Snapshot) Get(ctx context.Context, key string, dst interface{}) (bool, error) {
	if s == nil || s.client == nil {
		return false, nil
	}
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Generation returns the current generation of key. Read it before loading
// the data that will be passed to Store.
func (s *Snapshot) Generation(ctx context.Context, key string) (int64, error) {
	if s == nil || s.client == nil {
		return 0, nil
	}
	return readGeneration(ctx, s.client, key)
}

// Store writes value under key if the generation is still generation. It
// reports whether the value was written; a lost race is not an error.
func (s *Snapshot) Store(ctx context.Context, key string, generation int64, value interface{}) (bool, error) {
	if s == nil || s.client == nil {
		return false, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return false, err
	}

	stored := false
	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, key)
		if err != nil {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, s.ttl)
			return nil
		})
		stored = err == nil
		return err
	}, generationKey(key))
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	return stored, err
}

// Invalidate drops the cached values and bumps their generations in one
// transaction.
func (s *Snapshot) Invalidate(ctx context.Context, keys ...string) error {
	if s == nil || s.client == nil || len(keys) == 0 {
		return nil
	}
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.Incr(ctx, generationKey(key))
		}
		pipe.Del(ctx, keys...)
		return nil
	})
	return err
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, c getter, key string) (int64, error) {
	n, err := c.Get(ctx, generationKey(key)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}
