package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/recipehub/internal/dbx"
	"github.com/dmitrijs2005/recipehub/internal/server/repositories/recipes"
	"github.com/dmitrijs2005/recipehub/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/recipehub/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps all data in process memory. The db handle
// passed to the factories is ignored; every call returns the same stores.
type MemoryRepositoryManager struct {
	users         *users.MemoryRepository
	recipes       *recipes.MemoryRepository
	refreshTokens *refreshtokens.MemoryRepository

	// txMu serializes WithTx callbacks against each other.
	txMu sync.Mutex
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:         users.NewMemoryRepository(),
		recipes:       recipes.NewMemoryRepository(),
		refreshTokens: refreshtokens.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *MemoryRepositoryManager) Recipes(dbx.DBTX) recipes.Repository { return m.recipes }

func (m *MemoryRepositoryManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return m.refreshTokens
}

func (m *MemoryRepositoryManager) Conn() dbx.DBTX { return nil }

// WithTx runs fn under a lock. There is no rollback: writes made before an
// error stay applied.
func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, nil)
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Ping(ctx context.Context) error { return ctx.Err() }

func (m *MemoryRepositoryManager) Close() error { return nil }
