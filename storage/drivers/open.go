// Package drivers opens the credential store selected by configuration.
package drivers

import (
	"context"
	"fmt"
	"strings"

	"github.com/jrsteele09/billing-console/internal/config"
	"github.com/jrsteele09/billing-console/storage"
	"github.com/jrsteele09/billing-console/storage/pgstore"
	"github.com/jrsteele09/billing-console/storage/redisstore"
	"github.com/rs/zerolog/log"
)

const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Open returns the store named by cfg.GetStorageDriver and a function releasing it.
func Open(ctx context.Context, cfg config.StorageConfig) (storage.Store, func() error, error) {
	noop := func() error { return nil }
	driver := strings.ToLower(cfg.GetStorageDriver())

	var (
		store   storage.Store
		closeFn = noop
	)
	switch driver {
	case DriverFile:
		f, err := storage.NewFile(cfg.GetStorageFile())
		if err != nil {
			return nil, nil, err
		}
		store = f
	case DriverMemory:
		store = storage.NewMemory()
	case DriverRedis:
		r, err := redisstore.New(ctx, cfg.GetRedisURL(), cfg.GetStorageNamespace())
		if err != nil {
			return nil, nil, err
		}
		store, closeFn = r, r.Close
	case DriverPostgres, "pg":
		p, err := pgstore.New(ctx, cfg.GetDatabaseURL(), cfg.GetStorageNamespace())
		if err != nil {
			return nil, nil, err
		}
		store, closeFn = p, p.Close
	default:
		return nil, nil, fmt.Errorf("[drivers Open] unknown storage driver %q", driver)
	}

	log.Info().Str("driver", driver).Msg("credential store opened")
	return store, closeFn, nil
}
