package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionPrefix = "chat:session:"
	sessionTTL    = 24 * time.Hour
)

// RedisStore persists logs in Redis so sessions survive process restarts
// and can be shared across workers.
type RedisStore struct {
	rdb *redis.Client
}

var _ Store = &RedisStore{}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (*Log, error) {
	key := sessionPrefix + sessionID
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return NewLog(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var log Log
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if log.Cap <= 0 {
		log.Cap = DefaultCap
	}
	return &log, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, log *Log) error {
	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	key := sessionPrefix + sessionID
	if err := s.rdb.Set(ctx, key, data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, sessionPrefix+sessionID).Err()
}
