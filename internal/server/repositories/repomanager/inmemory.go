package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/recordkeeper/internal/dbx"
	"github.com/dmitrijs2005/recordkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/recordkeeper/internal/server/repositories/records"
	"github.com/dmitrijs2005/recordkeeper/internal/server/repositories/refreshtokens"
)

// InMemoryRepositoryManager serves the standalone deployment: all state
// lives in process memory and is gone at shutdown. Every accessor returns
// the same store instance regardless of the DBTX argument; the stores
// guard their own state with a mutex.
type InMemoryRepositoryManager struct {
	accounts      accounts.Repository
	records       records.Repository
	refreshTokens refreshtokens.Repository
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{
		accounts:      accounts.NewInMemoryRepository(),
		records:       records.NewInMemoryRepository(),
		refreshTokens: refreshtokens.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Conn() *sql.DB { return nil }

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error { return nil }

func (m *InMemoryRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository { return m.accounts }

func (m *InMemoryRepositoryManager) Records(db dbx.DBTX) records.Repository { return m.records }

func (m *InMemoryRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return m.refreshTokens
}

func (m *InMemoryRepositoryManager) Close() error { return nil }
