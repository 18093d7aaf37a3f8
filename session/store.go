package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable is an exported constant or variable used by the session core.
var ErrRedisUnavailable = errors.New("redis unavailable")

// Store is a Redis-backed single-identity session store. One key holds the
// current session; writing a new record fully replaces the old one.
type Store struct {
	redis  redis.UniversalClient
	prefix string
	key    []byte
	ttl    time.Duration
}

// NewStore creates a [Store] backed by the given Redis client. prefix
// namespaces the session key, signingKey authenticates the stored blob, and
// ttl expires it (zero means no expiry).
func NewStore(rdb redis.UniversalClient, prefix string, signingKey []byte, ttl time.Duration) *Store {
	return &Store{
		redis:  rdb,
		prefix: prefix,
		key:    signingKey,
		ttl:    ttl,
	}
}

func (s *Store) sessionKey() string {
	return s.prefix + ":current"
}

// Save persists the record, overwriting any stored session unconditionally.
//
//	Performance: 1 Redis SET.
func (s *Store) Save(ctx context.Context, rec *Record) error {
	blob, err := Encode(rec, s.key)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, s.sessionKey(), blob, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Load returns the stored record, or (nil, nil) when no session exists. A
// blob that fails verification or decoding is removed and reported as absent,
// never returned as an error.
//
//	Performance: 1 Redis GET (plus a DEL when discarding a bad blob).
func (s *Store) Load(ctx context.Context) (*Record, error) {
	blob, err := s.redis.Get(ctx, s.sessionKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	rec, err := Decode(blob, s.key)
	if err != nil {
		_ = s.redis.Del(ctx, s.sessionKey()).Err()
		return nil, nil
	}
	return rec, nil
}

// Clear removes the stored session. Clearing an absent session is not an
// error.
//
//	Performance: 1 Redis DEL.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.redis.Del(ctx, s.sessionKey()).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *Store) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Since(start), nil
}
