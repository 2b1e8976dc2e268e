// Package db selects and opens the credential store named by STORE_DRIVER.
package db

import (
	"context"
	"fmt"

	"github.com/lupashe/backoffice/internal/core/ports"
	mongodb "github.com/lupashe/backoffice/internal/infrastructure/db/mongo"
	"github.com/lupashe/backoffice/internal/infrastructure/db/postgres"
	"github.com/lupashe/backoffice/internal/pkg/config"
)

// Store is a user repository that can report its own health.
type Store interface {
	ports.UserRepository
	PingContext(ctx context.Context) error
}

// OpenStore connects to the configured backend. The returned close function
// releases the underlying pool or client.
func OpenStore(ctx context.Context, cfg *config.Config) (Store, func(context.Context) error, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL})
		if err != nil {
			return nil, nil, err
		}
		closeFn := func(context.Context) error { return pool.Close() }
		return postgres.NewUserRepository(pool), closeFn, nil

	case config.StoreMongo:
		client, database, err := mongodb.Connect(ctx, mongodb.Config{
			URI:         cfg.Mongo.URI,
			Database:    cfg.Mongo.Database,
			MaxPoolSize: cfg.Mongo.MaxPoolSize,
		})
		if err != nil {
			return nil, nil, err
		}
		repo := mongodb.NewUserRepository(database)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, fmt.Errorf("mongo indexes: %w", err)
		}
		return repo, client.Disconnect, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
