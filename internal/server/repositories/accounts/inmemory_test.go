package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
)

func newAccount(username, email string) *models.Account {
	return &models.Account{Username: username, Email: email, PasswordHash: "$2a$10$hash"}
}

func TestInMemoryCreate_AssignsMonotonicIDs(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	a1, err := repo.Create(ctx, newAccount("alice", "alice@example.com"))
	require.NoError(t, err)
	a2, err := repo.Create(ctx, newAccount("bob", "bob@example.com"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), a1.ID)
	assert.Equal(t, int64(2), a2.ID)
	assert.False(t, a1.CreatedAt.IsZero())
	assert.Equal(t, a1.CreatedAt, a1.UpdatedAt)
}

func TestInMemoryCreate_DuplicateChecksOrdered(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, newAccount("alice", "alice@example.com"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newAccount("alice", "other@example.com"))
	assert.ErrorIs(t, err, common.ErrorDuplicateUsername)

	_, err = repo.Create(ctx, newAccount("other", "alice@example.com"))
	assert.ErrorIs(t, err, common.ErrorDuplicateEmail)

	// both taken: username wins
	_, err = repo.Create(ctx, newAccount("alice", "alice@example.com"))
	assert.ErrorIs(t, err, common.ErrorDuplicateUsername)
}

func TestInMemoryLookups(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, newAccount("alice", "alice@example.com"))
	require.NoError(t, err)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, byID)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	byEmail, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = repo.GetByUsername(ctx, "Alice") // case-sensitive
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestInMemoryUpdatePasswordHash(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, newAccount("alice", "alice@example.com"))
	require.NoError(t, err)

	updated, err := repo.UpdatePasswordHash(ctx, created.ID, "$2a$10$newhash")
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$newhash", updated.PasswordHash)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	_, err = repo.UpdatePasswordHash(ctx, 99, "x")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestInMemoryDelete(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, newAccount("alice", "alice@example.com"))
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = repo.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	// the freed username is usable again, but the id is not reused
	again, err := repo.Create(ctx, newAccount("alice", "alice@example.com"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), again.ID)
}
