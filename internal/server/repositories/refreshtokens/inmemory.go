package refreshtokens

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
)

// InMemoryRepository keeps refresh tokens in a map keyed by token string.
type InMemoryRepository struct {
	mu     sync.RWMutex
	tokens map[string]*models.RefreshToken
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{tokens: make(map[string]*models.RefreshToken)}
}

// Create stores a token. Tokens already past their expiry are purged on
// the way, so the map stays bounded by the number of live sessions.
func (r *InMemoryRepository) Create(ctx context.Context, accountID int64, token string, validity time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for k, t := range r.tokens {
		if t.Expires.Before(now) {
			delete(r.tokens, k)
		}
	}

	r.tokens[token] = &models.RefreshToken{
		AccountID: accountID,
		Token:     token,
		Expires:   now.Add(validity),
		CreatedAt: now,
	}
	return nil
}

func (r *InMemoryRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *t
	return &out, nil
}

// Delete consumes a token. The presence check and the removal happen under
// one lock acquisition, so of two concurrent deletes of the same token
// exactly one succeeds; the other gets ErrorNotFound.
func (r *InMemoryRepository) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[token]; !ok {
		return common.ErrorNotFound
	}
	delete(r.tokens, token)
	return nil
}

func (r *InMemoryRepository) DeleteByAccount(ctx context.Context, accountID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for token, t := range r.tokens {
		if t.AccountID == accountID {
			delete(r.tokens, token)
		}
	}
	return nil
}
