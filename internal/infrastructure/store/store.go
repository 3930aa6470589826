// Package store elige el adaptador de persistencia (PostgreSQL o SQLite) según DB_DRIVER.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/domain/catalog"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/tienda-api/pkg/config"
)

// Store repositorios listos para inyectar más el ciclo de vida de la conexión.
type Store struct {
	Driver   string
	Products repository.ProductRepository
	Users    repository.UserRepository

	migrate func(context.Context) ([]string, error)
	ping    func(context.Context) error
	close   func()
}

// Open abre la conexión del driver configurado y construye los repositorios.
func Open(ctx context.Context, cfg config.DBConfig, codec catalog.Codec) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:   cfg.Driver,
			Products: postgres.NewProductRepository(pool, codec),
			Users:    postgres.NewUserRepository(pool),
			migrate:  func(ctx context.Context) ([]string, error) { return postgres.Migrate(ctx, pool) },
			ping:     pool.Ping,
			close:    pool.Close,
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:   cfg.Driver,
			Products: sqlite.NewProductRepository(db, codec),
			Users:    sqlite.NewUserRepository(db),
			migrate:  func(ctx context.Context) ([]string, error) { return sqlite.Migrate(ctx, db) },
			ping:     db.PingContext,
			close:    func() { _ = db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("driver de base de datos no soportado: %q", cfg.Driver)
	}
}

// Migrate aplica las migraciones embebidas pendientes.
func (s *Store) Migrate(ctx context.Context) ([]string, error) {
	return s.migrate(ctx)
}

// Ping verifica la conexión (usado por /health).
func (s *Store) Ping(ctx context.Context) error {
	return s.ping(ctx)
}

// Close libera la conexión.
func (s *Store) Close() {
	s.close()
}
