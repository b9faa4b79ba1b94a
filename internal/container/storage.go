package container

import (
	"context"
	"fmt"

	"github.com/oksasatya/go-ddd-user-accounts/config"
	"github.com/oksasatya/go-ddd-user-accounts/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-ddd-user-accounts/internal/infrastructure/postgres"
)

// InitStorage opens the storage selected by STORAGE_DRIVER and installs its
// repository and unit of work. The returned func releases it.
func InitStorage(ctx context.Context, c *config.Config) (func(), error) {
	switch c.StorageDriver {
	case config.StorageMemory:
		store := memory.NewStore()
		SetStorage(store.Users(), store)
		return func() {}, nil
	case config.StoragePostgres:
		pool, err := pginfra.NewPool(ctx, c.PostgresDSN(), pginfra.PoolOptions{
			MaxConns:    c.DBMaxConns,
			MinConns:    c.DBMinConns,
			MaxConnLife: c.DBMaxConnLife,
		})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		SetPGPool(pool)
		SetStorage(pginfra.NewUserRepository(pool), pginfra.NewUnitOfWork(pool, logger))
		return pool.Close, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
}
