// Package pgstore keeps the console credentials in a Postgres table, one row per namespaced key.
package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jrsteele09/billing-console/storage"
)

const schema = `CREATE TABLE IF NOT EXISTS console_storage (
	namespace  TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	value      TEXT        NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (namespace, key)
)`

type Store struct {
	pool      *pgxpool.Pool
	namespace string
}

var _ storage.Store = (*Store)(nil)

// New connects to databaseURL, pings it and creates the table when missing.
func New(ctx context.Context, databaseURL, namespace string) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("[pgstore New] parse url: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("[pgstore New] connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("[pgstore New] ping: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("[pgstore New] migrate: %w", err)
	}
	return &Store{pool: pool, namespace: namespace}, nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM console_storage WHERE namespace = $1 AND key = $2`,
		s.namespace, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("[pgstore Get] %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO console_storage (namespace, key, value, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		s.namespace, key, value,
	)
	if err != nil {
		return fmt.Errorf("[pgstore Set] %s: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.pool.Exec(ctx,
		`DELETE FROM console_storage WHERE namespace = $1 AND key = ANY($2)`,
		s.namespace, keys,
	)
	if err != nil {
		return fmt.Errorf("[pgstore Remove] %w", err)
	}
	return nil
}
