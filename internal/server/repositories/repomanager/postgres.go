package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/recordkeeper/internal/dbx"
	"github.com/dmitrijs2005/recordkeeper/internal/server/migrations"
	"github.com/dmitrijs2005/recordkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/recordkeeper/internal/server/repositories/records"
	"github.com/dmitrijs2005/recordkeeper/internal/server/repositories/refreshtokens"
)

// PostgresRepositoryManager owns the database handle. Accessors return a
// repository bound to the given DBTX, so services can rebind the same
// repository to a transaction. Migrations run once at construction.
type PostgresRepositoryManager struct {
	db *sql.DB
}

func NewPostgresRepositoryManager(ctx context.Context, dsn string) (RepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{db: db}

	if err := m.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}

func (m *PostgresRepositoryManager) Conn() *sql.DB { return m.db }

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, m.db, ".")
}

func (m *PostgresRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Records(db dbx.DBTX) records.Repository {
	return records.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Close() error { return m.db.Close() }
