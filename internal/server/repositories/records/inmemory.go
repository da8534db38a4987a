package records

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
)

// InMemoryRepository keeps records in insertion order behind a mutex.
// The id counter starts at 1 and keeps climbing across deletions, so an id
// is never handed out twice while the store is alive.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records []*models.Record
	nextID  int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Create(ctx context.Context, rec *models.Record) (*models.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	stored := &models.Record{
		ID:        r.nextID,
		Name:      rec.Name,
		Email:     rec.Email,
		Age:       rec.Age,
		OwnerID:   rec.OwnerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.records = append(r.records, stored)
	r.nextID++

	out := *stored
	return &out, nil
}

func (r *InMemoryRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Record, 0)
	for _, rec := range r.records {
		if rec.OwnerID == ownerID {
			c := *rec
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id, ownerID int64) (*models.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records {
		if rec.ID == id && rec.OwnerID == ownerID {
			c := *rec
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) Update(ctx context.Context, rec *models.Record) (*models.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, stored := range r.records {
		if stored.ID == rec.ID && stored.OwnerID == rec.OwnerID {
			stored.Name = rec.Name
			stored.Email = rec.Email
			stored.Age = rec.Age
			stored.UpdatedAt = time.Now()
			c := *stored
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) Delete(ctx context.Context, id, ownerID int64) (*models.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rec := range r.records {
		if rec.ID == id && rec.OwnerID == ownerID {
			r.records = append(r.records[:i], r.records[i+1:]...)
			c := *rec
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) SearchByName(ctx context.Context, ownerID int64, substring string) ([]*models.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(substring)
	out := make([]*models.Record, 0)
	for _, rec := range r.records {
		if rec.OwnerID == ownerID && strings.Contains(strings.ToLower(rec.Name), needle) {
			c := *rec
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Stats(ctx context.Context, ownerID int64) (*models.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count, sum int
	for _, rec := range r.records {
		if rec.OwnerID == ownerID {
			count++
			sum += rec.Age
		}
	}

	stats := &models.Stats{Count: count}
	if count > 0 {
		stats.AverageAge = float64(sum) / float64(count)
	}
	return stats, nil
}

func (r *InMemoryRepository) DeleteByOwner(ctx context.Context, ownerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.records[:0]
	for _, rec := range r.records {
		if rec.OwnerID != ownerID {
			kept = append(kept, rec)
		}
	}
	r.records = kept
	return nil
}
