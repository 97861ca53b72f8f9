package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	codeKeyPrefix  = "otp:code:"
	triesKeyPrefix = "otp:tries:"
)

// RedisCodeStore keeps pending codes in redis so any auth replica can verify
// a code that another replica issued. TTL handling is delegated to redis.
type RedisCodeStore struct {
	rdb *redis.Client
}

func NewRedisCodeStore(rdb *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{rdb: rdb}
}

func (s *RedisCodeStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisCodeStore) Save(ctx context.Context, channel string, hash []byte, ttl time.Duration) error {
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, codeKeyPrefix+channel, hash, ttl)
	pipe.Del(ctx, triesKeyPrefix+channel)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisCodeStore) Get(ctx context.Context, channel string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, codeKeyPrefix+channel).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *RedisCodeStore) Delete(ctx context.Context, channel string) error {
	return s.rdb.Del(ctx, codeKeyPrefix+channel, triesKeyPrefix+channel).Err()
}

func (s *RedisCodeStore) Bump(ctx context.Context, channel string) (int, error) {
	key := triesKeyPrefix + channel

	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		// First attempt sets the counter's lifetime; it should not
		// outlive the code it guards.
		_ = s.rdb.Expire(ctx, key, 10*time.Minute).Err()
	}
	return int(n), nil
}
