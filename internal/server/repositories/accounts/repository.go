// Package accounts persists Account entities. Two implementations exist:
// an in-memory store for the standalone deployment and a PostgreSQL store.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
)

// Repository is the persistence contract for accounts.
//
// Create must reject duplicates atomically, returning
// common.ErrorDuplicateUsername or common.ErrorDuplicateEmail (username
// checked first). Lookups return common.ErrorNotFound on miss.
type Repository interface {
	Create(ctx context.Context, acc *models.Account) (*models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) (*models.Account, error)
	Delete(ctx context.Context, id int64) (*models.Account, error)
}
