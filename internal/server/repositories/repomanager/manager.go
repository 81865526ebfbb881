// Package repomanager vends the repositories of one storage backend and
// owns its connection, transactions and schema migrations.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/recipehub/internal/dbx"
	"github.com/dmitrijs2005/recipehub/internal/server/config"
	"github.com/dmitrijs2005/recipehub/internal/server/repositories/recipes"
	"github.com/dmitrijs2005/recipehub/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/recipehub/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error

	Users(db dbx.DBTX) users.Repository
	Recipes(db dbx.DBTX) recipes.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository

	// Conn is the non-transactional handle to pass to the factories above.
	Conn() dbx.DBTX
	// WithTx runs fn atomically; repositories built from tx join the transaction.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error

	Ping(ctx context.Context) error
	Close() error
}

// New opens the backend selected by cfg.StorageBackend.
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch cfg.StorageBackend {
	case config.StorageMemory:
		return NewMemoryRepositoryManager(), nil
	case config.StoragePostgres:
		db, err := openPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return NewPostgresRepositoryManager(db), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
