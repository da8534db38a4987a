// Package repomanager selects and wires a persistence backend: the whole
// repository set comes from one manager so a deployment never mixes
// in-memory and Postgres stores. Accessors take a dbx.DBTX so callers can
// bind a repository to a transaction handle; the in-memory backend ignores
// it and hands out its singleton stores.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/recordkeeper/internal/dbx"
	"github.com/dmitrijs2005/recordkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/recordkeeper/internal/server/repositories/records"
	"github.com/dmitrijs2005/recordkeeper/internal/server/repositories/refreshtokens"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Conn() *sql.DB
	Accounts(db dbx.DBTX) accounts.Repository
	Records(db dbx.DBTX) records.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Close() error
}
