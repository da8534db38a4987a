package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
)

// InMemoryRepository keeps accounts in insertion order behind a mutex.
// Ids start at 1 and are never reused. Uniqueness checks and id assignment
// are check-then-act sequences, so every mutation holds the write lock.
type InMemoryRepository struct {
	mu       sync.RWMutex
	accounts []*models.Account
	nextID   int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Create(ctx context.Context, acc *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if a.Username == acc.Username {
			return nil, common.ErrorDuplicateUsername
		}
	}
	for _, a := range r.accounts {
		if a.Email == acc.Email {
			return nil, common.ErrorDuplicateEmail
		}
	}

	now := time.Now()
	stored := &models.Account{
		ID:           r.nextID,
		Username:     acc.Username,
		Email:        acc.Email,
		PasswordHash: acc.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.accounts = append(r.accounts, stored)
	r.nextID++

	out := *stored
	return &out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.ID == id {
			out := *a
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.Username == username {
			out := *a
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.Email == email {
			out := *a
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if a.ID == id {
			a.PasswordHash = hash
			a.UpdatedAt = time.Now()
			out := *a
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) Delete(ctx context.Context, id int64) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.accounts {
		if a.ID == id {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			out := *a
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}
