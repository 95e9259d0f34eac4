package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cardexhq/cardex/internal/common"
)

const redisKeyPrefix = "cardex:preview:"

// RedisStore keeps pending previews in Redis so confirm-upload can land on a
// different instance than the one that ran extraction.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(addr, password string, db int, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, p *Preview) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal preview: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+p.Token, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("store preview: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Preview, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("preview %q: %w", token, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load preview: %w", err)
	}
	var p Preview
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("unmarshal preview: %w", err)
	}
	return &p, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("delete preview: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
