// Package store implements the persistent key-value store backing all
// FitPulse state. Values are domain records serialized to JSON under logical
// keys. There is no cross-key transaction and no locking: a single logical
// writer is assumed, and concurrent sessions are last-write-wins per key.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	redis "github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Logical keys used by the services.
const (
	KeyCurrentUser = "current-user"
	KeyWorkouts    = "workouts"
	KeyFeed        = "shared-feed"
	KeyProfiles    = "profiles"
)

// Store is a get/set view over the host's durable key-value storage.
//
// Read unmarshals the value stored under key into value, which must be a
// non-nil pointer. If the key is absent or its contents are unparsable, even
// partway through decoding, value is left exactly as the caller initialized
// it; the caller's default stands and no error is returned.
// Write serializes value and stores it under key, replacing any prior value.
type Store interface {
	Read(ctx context.Context, key string, value any) error
	Write(ctx context.Context, key string, value any) error
}

type RedisStore struct {
	conn *redis.Client
	log  logrus.FieldLogger
}

// New connects to the Redis instance at addr and returns a store backed by it.
func New(ctx context.Context, addr string, log logrus.FieldLogger) (*RedisStore, error) {
	opt, err := redis.ParseURL(addr)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &RedisStore{conn: client, log: log}, nil
}

// Read loads the JSON value stored under key into value. A missing key or a
// corrupt stored value leaves value untouched so the caller's default stands.
func (s *RedisStore) Read(ctx context.Context, key string, value any) error {
	raw, err := s.conn.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %q: %w", key, err)
	}

	// Decode into a scratch value first: a stored value that fails mid-decode
	// must not leave value half-populated.
	scratch := reflect.New(reflect.TypeOf(value).Elem())
	if err := json.Unmarshal([]byte(raw), scratch.Interface()); err != nil {
		s.log.WithField("key", key).Warnf("discarding unparsable stored value: %v", err)
		return nil
	}
	reflect.ValueOf(value).Elem().Set(scratch.Elem())

	return nil
}

// Write stores value as a JSON string under key, replacing any prior value.
func (s *RedisStore) Write(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling value for %q: %w", key, err)
	}
	if err := s.conn.Set(ctx, key, string(raw), 0).Err(); err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}
