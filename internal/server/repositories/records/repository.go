// Package records persists managed records. Every operation is scoped to an
// owner account id: a record under a different owner is indistinguishable
// from a record that does not exist.
package records

import (
	"context"

	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
)

// Repository is the persistence contract for managed records.
//
// ListByOwner and SearchByName return records in creation order. Lookups
// and mutations return common.ErrorNotFound when no record with that id
// exists under that owner. Update replaces the mutable fields of an
// existing record wholesale; merging patches onto the current state is the
// service's job.
type Repository interface {
	Create(ctx context.Context, rec *models.Record) (*models.Record, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Record, error)
	GetByID(ctx context.Context, id, ownerID int64) (*models.Record, error)
	Update(ctx context.Context, rec *models.Record) (*models.Record, error)
	Delete(ctx context.Context, id, ownerID int64) (*models.Record, error)
	SearchByName(ctx context.Context, ownerID int64, substring string) ([]*models.Record, error)
	Stats(ctx context.Context, ownerID int64) (*models.Stats, error)
	DeleteByOwner(ctx context.Context, ownerID int64) error
}
