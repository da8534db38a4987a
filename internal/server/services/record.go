package services

import (
	"context"
	"math"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
	"github.com/dmitrijs2005/recordkeeper/internal/server/repositories/records"
	"github.com/dmitrijs2005/recordkeeper/internal/validate"
)

// RecordService owns the managed-record rules. Every operation takes the
// caller's account id and only ever touches that owner's records; a record
// under another owner behaves exactly like a missing one.
type RecordService struct {
	records records.Repository
}

func NewRecordService(rr records.Repository) *RecordService {
	return &RecordService{records: rr}
}

// Create validates the fields and appends a new record for ownerID.
func (s *RecordService) Create(ctx context.Context, ownerID int64, name, email string, age int) (*models.Record, error) {
	if !validate.Record(name, email, age, ownerID) {
		return nil, common.ErrorInvalidInput
	}

	return s.records.Create(ctx, &models.Record{
		Name:    name,
		Email:   email,
		Age:     age,
		OwnerID: ownerID,
	})
}

// List returns the owner's records in creation order.
func (s *RecordService) List(ctx context.Context, ownerID int64) ([]*models.Record, error) {
	return s.records.ListByOwner(ctx, ownerID)
}

// Get returns the record with the given id under ownerID, or ErrorNotFound.
func (s *RecordService) Get(ctx context.Context, id, ownerID int64) (*models.Record, error) {
	return s.records.GetByID(ctx, id, ownerID)
}

// Update overlays the non-nil patch fields onto the stored record and
// re-validates the merged result as a whole. On validation failure nothing
// is written and the stored record stays as it was. An empty patch is a
// valid no-op that still bumps updated_at.
func (s *RecordService) Update(ctx context.Context, id, ownerID int64, patch models.RecordPatch) (*models.Record, error) {
	current, err := s.records.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	merged := *current
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Email != nil {
		merged.Email = *patch.Email
	}
	if patch.Age != nil {
		merged.Age = *patch.Age
	}

	if !validate.Record(merged.Name, merged.Email, merged.Age, merged.OwnerID) {
		return nil, common.ErrorInvalidInput
	}

	return s.records.Update(ctx, &merged)
}

// Delete removes and returns the record. A repeated delete returns
// ErrorNotFound, same as a delete of an id that never existed.
func (s *RecordService) Delete(ctx context.Context, id, ownerID int64) (*models.Record, error) {
	return s.records.Delete(ctx, id, ownerID)
}

// SearchByName matches the owner's records whose name contains substring,
// case-insensitively, in store order.
func (s *RecordService) SearchByName(ctx context.Context, ownerID int64, substring string) ([]*models.Record, error) {
	return s.records.SearchByName(ctx, ownerID, substring)
}

// Stats aggregates the owner's records. AverageAge is 0 with no records,
// otherwise the mean age rounded to one decimal digit.
func (s *RecordService) Stats(ctx context.Context, ownerID int64) (*models.Stats, error) {
	stats, err := s.records.Stats(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	stats.AverageAge = math.Round(stats.AverageAge*10) / 10
	return stats, nil
}
