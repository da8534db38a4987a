package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/dbx"
	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
)

const recordColumns = "id, name, email, age, owner_id, created_at, updated_at"

// PostgresRepository implements Repository over dbx.DBTX. All statements
// are parameterized; caller-supplied values never reach the SQL text.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, rec *models.Record) (*models.Record, error) {
	query := `
		INSERT INTO records (name, email, age, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	stored := *rec
	err := r.db.QueryRowContext(ctx, query, rec.Name, rec.Email, rec.Age, rec.OwnerID).
		Scan(&stored.ID, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return &stored, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM records
		WHERE owner_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return scanAll(rows)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id, ownerID int64) (*models.Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM records
		WHERE id = $1 AND owner_id = $2
	`
	return scanOne(r.db.QueryRowContext(ctx, query, id, ownerID))
}

func (r *PostgresRepository) Update(ctx context.Context, rec *models.Record) (*models.Record, error) {
	query := `
		UPDATE records
		SET name = $3, email = $4, age = $5, updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + recordColumns + `
	`
	return scanOne(r.db.QueryRowContext(ctx, query, rec.ID, rec.OwnerID, rec.Name, rec.Email, rec.Age))
}

func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID int64) (*models.Record, error) {
	query := `
		DELETE FROM records
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + recordColumns + `
	`
	return scanOne(r.db.QueryRowContext(ctx, query, id, ownerID))
}

// escapeLike neutralizes LIKE metacharacters in a user-supplied substring
// so they match literally.
func escapeLike(s string) string {
	rep := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return rep.Replace(s)
}

func (r *PostgresRepository) SearchByName(ctx context.Context, ownerID int64, substring string) ([]*models.Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM records
		WHERE owner_id = $1 AND name ILIKE '%' || $2 || '%'
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID, escapeLike(substring))
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return scanAll(rows)
}

func (r *PostgresRepository) Stats(ctx context.Context, ownerID int64) (*models.Stats, error) {
	query := `
		SELECT COUNT(*), COALESCE(AVG(age), 0)
		FROM records
		WHERE owner_id = $1
	`
	stats := &models.Stats{}
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&stats.Count, &stats.AverageAge)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return stats, nil
}

func (r *PostgresRepository) DeleteByOwner(ctx context.Context, ownerID int64) error {
	query := `
		DELETE FROM records
		WHERE owner_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, ownerID); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func scanOne(row *sql.Row) (*models.Record, error) {
	rec := &models.Record{}
	err := row.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.Age, &rec.OwnerID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return rec, nil
}

func scanAll(rows *sql.Rows) ([]*models.Record, error) {
	defer rows.Close()

	out := make([]*models.Record, 0)
	for rows.Next() {
		rec := &models.Record{}
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Email, &rec.Age, &rec.OwnerID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return out, nil
}
