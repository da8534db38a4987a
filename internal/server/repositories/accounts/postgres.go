package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/dbx"
	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx). The unique constraints on username and email are the
// correctness guarantee; violations are mapped to the Duplicate errors.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// mapUniqueViolation translates a 23505 unique violation into the matching
// sentinel error, or returns nil when err is not a unique violation.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	switch pgErr.ConstraintName {
	case "accounts_username_key":
		return common.ErrorDuplicateUsername
	case "accounts_email_key":
		return common.ErrorDuplicateEmail
	}
	return nil
}

func (r *PostgresRepository) Create(ctx context.Context, acc *models.Account) (*models.Account, error) {
	query := `
		INSERT INTO accounts (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	stored := *acc
	err := r.db.QueryRowContext(ctx, query, acc.Username, acc.Email, acc.PasswordHash).
		Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return &stored, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM accounts
		WHERE username = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM accounts
		WHERE email = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) (*models.Account, error) {
	query := `
		UPDATE accounts
		SET password_hash = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, username, email, password_hash, created_at, updated_at
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id, hash))
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (*models.Account, error) {
	query := `
		DELETE FROM accounts
		WHERE id = $1
		RETURNING id, username, email, password_hash, created_at, updated_at
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Account, error) {
	acc := &models.Account{}
	err := row.Scan(&acc.ID, &acc.Username, &acc.Email, &acc.PasswordHash, &acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return acc, nil
}
