// Package redisstore keeps the console credentials in Redis, so that several console processes
// for the same operator profile share one login.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrsteele09/billing-console/storage"
	"github.com/redis/go-redis/v9"
)

type Store struct {
	cli       *redis.Client
	namespace string
}

var _ storage.Store = (*Store)(nil)

// New connects to url and pings the server before returning.
func New(ctx context.Context, url, namespace string) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("[redisstore New] parse url: %w", err)
	}
	cli := redis.NewClient(opts)
	if err := cli.Ping(ctx).Err(); err != nil {
		if closeErr := cli.Close(); closeErr != nil {
			return nil, fmt.Errorf("[redisstore New] ping: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("[redisstore New] ping: %w", err)
	}
	return NewFromClient(cli, namespace), nil
}

// NewFromClient wraps an existing client. Keys are stored as "<namespace>:<key>".
func NewFromClient(cli *redis.Client, namespace string) *Store {
	return &Store{cli: cli, namespace: namespace}
}

func (s *Store) Close() error {
	return s.cli.Close()
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.cli.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("[redisstore Get] %s: %w", key, err)
	}
	return val, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.cli.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("[redisstore Set] %s: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	if err := s.cli.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("[redisstore Remove] %w", err)
	}
	return nil
}

func (s *Store) key(k string) string {
	if s.namespace == "" {
		return k
	}
	return s.namespace + ":" + k
}
